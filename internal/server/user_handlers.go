package server

import (
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers shows all users, or those matching the ?q= username search.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	users, err := s.userService.ListUsers(c.Context(), query, 100, 0)
	if err != nil {
		return s.renderAppError(c, err)
	}
	return s.render(c, "users_index", fiber.Map{
		"Users": users,
		"Query": query,
	})
}

// ShowUser renders a user's profile with their messages, newest first.
// Anyone may view a profile; an unknown ID renders the 404 page.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}
	messages, err := s.messageService.MessagesByUser(c.Context(), id, 100)
	if err != nil {
		return s.renderAppError(c, err)
	}
	following, followers, err := s.followService.Counts(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}

	isSelf := false
	isFollowing := false
	if viewerID, ok := currentUserID(c); ok {
		isSelf = viewerID == id
		if !isSelf {
			isFollowing, err = s.followService.IsFollowing(c.Context(), viewerID, id)
			if err != nil {
				return s.renderAppError(c, err)
			}
		}
	}

	return s.render(c, "user_show", fiber.Map{
		"User":           user,
		"Messages":       messages,
		"FollowingCount": following,
		"FollowersCount": followers,
		"IsSelf":         isSelf,
		"IsFollowing":    isFollowing,
	})
}

// ShowFollowing lists the users this user follows.
func (s *Server) ShowFollowing(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}
	users, err := s.followService.Following(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}

	viewerID, _ := currentUserID(c)
	return s.render(c, "following", fiber.Map{
		"User":   user,
		"Users":  users,
		"IsSelf": viewerID == id,
	})
}

// ShowFollowers lists the users following this user.
func (s *Server) ShowFollowers(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}
	users, err := s.followService.Followers(c.Context(), id)
	if err != nil {
		return s.renderAppError(c, err)
	}

	viewerID, _ := currentUserID(c)
	return s.render(c, "followers", fiber.Map{
		"User":   user,
		"Users":  users,
		"IsSelf": viewerID == id,
	})
}

// FollowUser adds a directed follow edge from the logged-in user.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID, _ := currentUserID(c)

	if err := s.followService.Follow(c.Context(), userID, id); err != nil {
		return s.renderAppError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", userID), fiber.StatusFound)
}

// StopFollowing removes the logged-in user's follow edge.
func (s *Server) StopFollowing(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	userID, _ := currentUserID(c)

	if err := s.followService.Unfollow(c.Context(), userID, id); err != nil {
		return s.renderAppError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", userID), fiber.StatusFound)
}

// ProfileEditPage renders the edit form for the logged-in user.
func (s *Server) ProfileEditPage(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)
	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return s.renderAppError(c, err)
	}
	return s.render(c, "profile_edit", fiber.Map{
		"User": user,
	})
}

// UpdateProfile applies profile edits after the user re-enters their
// password. A wrong password leaves the profile untouched.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	input := service.UpdateProfileInput{
		UserID:         userID,
		Username:       c.FormValue("username"),
		Email:          c.FormValue("email"),
		ImageURL:       c.FormValue("image_url"),
		HeaderImageURL: c.FormValue("header_image_url"),
		Bio:            c.FormValue("bio"),
		Location:       c.FormValue("location"),
		Password:       c.FormValue("password"),
	}

	user, err := s.userService.UpdateProfile(c.Context(), input)
	if err != nil {
		switch models.CodeOf(err) {
		case models.CodeUnauthorized:
			s.setFlash(c, "Wrong password, please try again.", "danger")
			return c.Redirect("/users/profile", fiber.StatusFound)
		case models.CodeValidation, models.CodeConflict:
			s.setFlash(c, err.Error(), "danger")
			return c.Redirect("/users/profile", fiber.StatusFound)
		default:
			return s.renderAppError(c, err)
		}
	}

	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}

// DeleteUser removes the account with its messages and follow edges,
// ends the session, and sends the visitor to the signup page.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return s.renderAppError(c, err)
	}
	s.logoutSession(c)
	return c.Redirect("/signup", fiber.StatusFound)
}
