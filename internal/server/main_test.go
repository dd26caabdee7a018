package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

type testServer struct {
	t   *testing.T
	srv *Server
	app *fiber.App
	db  *gorm.DB
}

// newTestServer wires the full app against an isolated in-memory sqlite
// database with foreign keys enforced.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:          "5000",
		SessionSecret: "test-session-secret",
		Env:           "test",
	}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	return &testServer{t: t, srv: srv, app: srv.NewApp(), db: db}
}

// signupUser creates an account directly through the service layer so
// tests do not depend on the signup route they are not exercising.
func (ts *testServer) signupUser(username string) *models.User {
	ts.t.Helper()
	user, err := ts.srv.userService.Signup(context.Background(), service.SignupInput{
		Username: username,
		Email:    username + "@test.com",
		Password: "password123",
	})
	require.NoError(ts.t, err)
	return user
}

// client is a minimal browser stand-in that carries cookies between
// requests so sessions and flash messages behave as they would live.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func (ts *testServer) client() *client {
	return &client{t: ts.t, app: ts.app, cookies: map[string]string{}}
}

func (cl *client) do(method, path string, form url.Values) *http.Response {
	cl.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for name, value := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)

	for _, c := range resp.Cookies() {
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c.Value
	}
	return resp
}

func (cl *client) get(path string) *http.Response {
	return cl.do(http.MethodGet, path, nil)
}

func (cl *client) postForm(path string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	return cl.do(http.MethodPost, path, form)
}

// login signs the client in through the login route.
func (cl *client) login(username, password string) *http.Response {
	cl.t.Helper()
	return cl.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func requireRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, location, resp.Header.Get("Location"))
}
