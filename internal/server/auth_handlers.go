package server

import (
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SignupPage renders the signup form.
func (s *Server) SignupPage(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return s.render(c, "signup", fiber.Map{
		"Username": "",
		"Email":    "",
	})
}

// Signup creates the account and logs the new user in. Validation and
// conflict failures re-render the form with the submitted values kept.
func (s *Server) Signup(c *fiber.Ctx) error {
	input := service.SignupInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		ImageURL: c.FormValue("image_url"),
	}

	user, err := s.userService.Signup(c.Context(), input)
	if err != nil {
		var message string
		switch models.CodeOf(err) {
		case models.CodeValidation:
			message = err.Error()
		case models.CodeConflict:
			message = "Username already taken"
		default:
			return s.renderAppError(c, err)
		}
		return s.render(c, "signup", fiber.Map{
			"Username":      input.Username,
			"Email":         input.Email,
			"Flash":         message,
			"FlashCategory": "danger",
		})
	}

	if err := s.loginSession(c, user.ID, fmt.Sprintf("Welcome, %s!", user.Username), "success"); err != nil {
		return s.renderAppError(c, models.NewInternalError(err))
	}
	return c.Redirect("/", fiber.StatusFound)
}

// LoginPage renders the login form.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return s.render(c, "login", fiber.Map{
		"Username": "",
	})
}

// Login verifies credentials and opens a session. A wrong password and an
// unknown username produce the same message.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.userService.Authenticate(c.Context(), username, password)
	if err != nil {
		return s.renderAppError(c, err)
	}
	if user == nil {
		return s.render(c, "login", fiber.Map{
			"Username":      username,
			"Flash":         "Invalid credentials.",
			"FlashCategory": "danger",
		})
	}

	if err := s.loginSession(c, user.ID, fmt.Sprintf("Hello, %s!", user.Username), "success"); err != nil {
		return s.renderAppError(c, models.NewInternalError(err))
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Logout ends the session and sends the visitor back to the login page.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.logoutSession(c)
	s.setFlash(c, "You have successfully logged out.", "success")
	return c.Redirect("/login", fiber.StatusFound)
}
