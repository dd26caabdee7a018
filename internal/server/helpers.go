package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a route parameter as a positive uint. A malformed or
// non-positive ID renders the 404 page, matching how an unknown ID
// behaves.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderNotFound(c)
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the logged-in user's ID, if any.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// currentUser loads the logged-in user for page chrome. A session
// pointing at a deleted user is treated as anonymous.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	userID, ok := currentUserID(c)
	if !ok {
		return nil
	}
	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

// render executes a page template, filling in the chrome every template
// expects: the current user and any pending flash message.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["CurrentUser"]; !ok {
		data["CurrentUser"] = s.currentUser(c)
	}
	if _, ok := data["Flash"]; !ok {
		flash, category := s.popFlash(c)
		data["Flash"] = flash
		data["FlashCategory"] = category
	}
	return c.Render(name, data)
}

func (s *Server) renderNotFound(c *fiber.Ctx) error {
	return s.renderError(c, fiber.StatusNotFound, "Page not found.")
}

func (s *Server) renderError(c *fiber.Ctx, status int, detail string) error {
	c.Status(status)
	return s.render(c, "error", fiber.Map{
		"Status": status,
		"Detail": detail,
	})
}

// renderAppError maps an application error onto the HTML surface: not
// found gets the 404 page, unauthorized flashes and bounces home, and
// anything else becomes a 500 page.
func (s *Server) renderAppError(c *fiber.Ctx, err error) error {
	switch models.CodeOf(err) {
	case models.CodeNotFound:
		return s.renderNotFound(c)
	case models.CodeUnauthorized:
		s.setFlash(c, accessUnauthorized, "danger")
		return c.Redirect("/", fiber.StatusFound)
	default:
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong.")
	}
}
