package server

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Session keys. The logged-in user's ID lives under currUserKey; flash
// messages are stored until the next rendered page pops them.
const (
	currUserKey      = "curr_user"
	flashKey         = "flash"
	flashCategoryKey = "flash_category"
)

const accessUnauthorized = "Access unauthorized."

// cookieKey derives the base64 32-byte key the cookie encryption
// middleware requires from the configured session secret, which has no
// length or encoding constraints of its own.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func newSessionStore() *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:warbler_session",
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}

// SessionLoader resolves the session once per request and exposes the
// logged-in user's ID as Locals("userID"). Handlers never touch the
// session cookie directly.
func (s *Server) SessionLoader() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.store.Get(c)
		if err != nil {
			return c.Next()
		}
		if v := sess.Get(currUserKey); v != nil {
			if userID, ok := v.(uint); ok {
				c.Locals("userID", userID)
				ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
				c.SetUserContext(ctx)
			}
		}
		return c.Next()
	}
}

// LoginRequired redirects anonymous visitors to the home page with an
// unauthorized flash instead of serving the protected page.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); !ok {
			s.setFlash(c, accessUnauthorized, "danger")
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// loginSession records the user in the session, optionally with a flash
// message for the next page. Both writes happen in one save so a fresh
// visitor gets exactly one session cookie.
func (s *Server) loginSession(c *fiber.Ctx, userID uint, flash, category string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(currUserKey, userID)
	if flash != "" {
		sess.Set(flashKey, flash)
		sess.Set(flashCategoryKey, category)
	}
	return sess.Save()
}

// logoutSession destroys the session, dropping both the login and any
// pending flash.
func (s *Server) logoutSession(c *fiber.Ctx) {
	sess, err := s.store.Get(c)
	if err != nil {
		return
	}
	_ = sess.Destroy()
}

func (s *Server) setFlash(c *fiber.Ctx, message, category string) {
	sess, err := s.store.Get(c)
	if err != nil {
		return
	}
	sess.Set(flashKey, message)
	sess.Set(flashCategoryKey, category)
	_ = sess.Save()
}

// popFlash returns and clears the pending flash message, if any.
func (s *Server) popFlash(c *fiber.Ctx) (message, category string) {
	sess, err := s.store.Get(c)
	if err != nil {
		return "", ""
	}
	if v, ok := sess.Get(flashKey).(string); ok {
		message = v
	}
	if v, ok := sess.Get(flashCategoryKey).(string); ok {
		category = v
	}
	if message != "" {
		sess.Delete(flashKey)
		sess.Delete(flashCategoryKey)
		_ = sess.Save()
	}
	return message, category
}
