package server

import (
	"fmt"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// NewMessagePage renders the compose form.
func (s *Server) NewMessagePage(c *fiber.Ctx) error {
	return s.render(c, "message_new", nil)
}

// CreateMessage posts a new message for the logged-in user.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	text := c.FormValue("text")

	_, err := s.messageService.CreateMessage(c.Context(), userID, text)
	if err != nil {
		if models.CodeOf(err) == models.CodeValidation {
			return s.render(c, "message_new", fiber.Map{
				"Flash":         err.Error(),
				"FlashCategory": "danger",
			})
		}
		return s.renderAppError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusFound)
}

// ShowMessage renders a single message. Anyone may view it.
func (s *Server) ShowMessage(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	message, err := s.messageService.GetMessage(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}

	isOwner := false
	if viewerID, ok := currentUserID(c); ok {
		isOwner = viewerID == message.UserID
	}

	return s.render(c, "message_show", fiber.Map{
		"Message": message,
		"IsOwner": isOwner,
	})
}

// DeleteMessage removes a message. Only the owner may delete it; anyone
// else is bounced home with an unauthorized flash and the message stays.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID, _ := currentUserID(c)

	if err := s.messageService.DeleteMessage(c.Context(), id, userID); err != nil {
		return s.renderAppError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusFound)
}
