// Package view renders the application's HTML pages from embedded
// templates. The Engine satisfies fiber's Views interface so handlers can
// call c.Render with a page name and a data map.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

type Engine struct {
	templates *template.Template
}

// New parses the embedded templates. Parsing happens once at startup so a
// broken template fails the boot instead of the first request.
func New() (*Engine, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"datefmt": func(ts time.Time) string {
			return ts.Format("02 January 2006")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Engine{templates: t}, nil
}

// Load implements fiber.Views. Templates are already parsed in New.
func (e *Engine) Load() error {
	return nil
}

// Render implements fiber.Views.
func (e *Engine) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	tmpl := e.templates.Lookup(name + ".html")
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.Execute(w, data)
}
