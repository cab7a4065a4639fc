package handler

import (
	"errors"
	"time"

	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  service.AuthService
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(authService service.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

// LoginRequest represents the login form
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginPage renders the login view model
// GET /
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if middleware.Identity(c) != nil {
		return c.Redirect("/dashboard")
	}
	return c.JSON(fiber.Map{"page": "login", "flashes": popFlashes(c)})
}

// Login handles user authentication
// POST /
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		flash(c, service.ErrInvalidCredentials.Message)
		return c.Redirect("/")
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuth) {
			flash(c, service.Message(err))
			return c.Redirect("/")
		}
		return err
	}

	middleware.SetSessionCookie(c, result.Token, h.sessionTTL, h.secureCookie)
	if result.Identity.IsAdmin {
		return c.Redirect("/admin")
	}
	return c.Redirect("/dashboard")
}

// SignupPage renders the signup view model
// GET /signup
func (h *AuthHandler) SignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "signup", "flashes": popFlashes(c)})
}

// Signup creates an account and sends the visitor to the login page
// POST /signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req service.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		flash(c, "Invalid form")
		return c.Redirect("/signup")
	}

	if _, err := h.authService.Signup(&req); err != nil {
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrConflict) {
			flash(c, service.Message(err))
			return c.Redirect("/signup")
		}
		return err
	}

	flash(c, "Signup successful! Please login.")
	return c.Redirect("/")
}

// Logout ends every session of the caller
// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	if err := h.authService.Logout(*identity); err != nil {
		return err
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect("/")
}
