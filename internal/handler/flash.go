package handler

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// flash queues a one-shot message for the next page view
func flash(c *fiber.Ctx, message string) {
	messages := append(peekFlashes(c), message)
	raw, err := json.Marshal(messages)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlashes returns the queued messages and clears them
func popFlashes(c *fiber.Ctx) []string {
	messages := peekFlashes(c)
	if c.Cookies(flashCookie) != "" {
		c.ClearCookie(flashCookie)
	}
	return messages
}

func peekFlashes(c *fiber.Ctx) []string {
	messages := []string{}
	value := c.Cookies(flashCookie)
	if value == "" {
		return messages
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return messages
	}
	_ = json.Unmarshal(raw, &messages)
	return messages
}
