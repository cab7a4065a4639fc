package middleware

import (
	"errors"
	"time"

	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	SessionCookie = "session"
	identityKey   = "identity"
	LoginPath     = "/"
)

// Identity returns the caller set by LoadSession, or nil for anonymous requests
func Identity(c *fiber.Ctx) *service.Identity {
	identity, _ := c.Locals(identityKey).(*service.Identity)
	return identity
}

func SetIdentity(c *fiber.Ctx, identity *service.Identity) {
	c.Locals(identityKey, identity)
}

// LoadSession resolves the session cookie into a request-scoped identity.
// Anonymous and stale sessions pass through without one.
func LoadSession(authService service.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		identity, err := authService.Authenticate(token)
		if err != nil {
			if !errors.Is(err, service.ErrAuth) {
				log.Error("session lookup failed", zap.Error(err))
			}
			ClearSessionCookie(c)
			return c.Next()
		}

		SetIdentity(c, identity)
		return c.Next()
	}
}

// RequireAuth redirects anonymous callers to the login page
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Identity(c) == nil {
			return c.Redirect(LoginPath)
		}
		return c.Next()
	}
}

func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.ClearCookie(SessionCookie)
}
