package handler

import (
	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.CatalogService
}

func NewDashboardHandler(s service.CatalogService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboard returns the caller's account and catalog
// GET /dashboard
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	view, err := h.service.Dashboard(middleware.Identity(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}
