// Package admin is a small table browser for administrators. Each table is
// described by a Resource value and mounted under one Console.
package admin

import (
	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
)

type Link struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Console mounts a set of views behind one access predicate
type Console struct {
	prefix string
	views  []View
	access func(identity *service.Identity) bool
}

// IsAdmin is the default access predicate
func IsAdmin(identity *service.Identity) bool {
	return identity != nil && identity.IsAdmin
}

func NewConsole(prefix string, access func(identity *service.Identity) bool, views ...View) *Console {
	return &Console{prefix: prefix, views: views, access: access}
}

func (c *Console) Register(app fiber.Router) {
	g := app.Group(c.prefix, c.guard)
	g.Get("/", c.index)
	for _, v := range c.views {
		v.Register(g)
	}
}

func (c *Console) guard(ctx *fiber.Ctx) error {
	if c.access == nil || !c.access(middleware.Identity(ctx)) {
		return fiber.ErrNotFound
	}
	return ctx.Next()
}

func (c *Console) index(ctx *fiber.Ctx) error {
	links := make([]Link, 0, len(c.views)+2)
	for _, v := range c.views {
		links = append(links, Link{Name: v.Name(), Label: v.Label(), URL: c.prefix + "/" + v.Name()})
	}
	links = append(links,
		Link{Name: "dashboard", Label: "Dashboard", URL: "/dashboard"},
		Link{Name: "logout", Label: "Logout", URL: "/logout"},
	)

	return ctx.JSON(fiber.Map{
		"page":  "admin",
		"user":  middleware.Identity(ctx).Email,
		"views": links,
	})
}
