package handler

import (
	"errors"
	"fmt"

	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	barcode service.BarcodeService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, barcode service.BarcodeService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, barcode: barcode, log: log}
}

// UploadCSV replaces the caller's catalog with the uploaded spreadsheet
// POST /upload_csv
func (h *CatalogHandler) UploadCSV(c *fiber.Ctx) error {
	file, err := formFile(c, "csvfile")
	if err != nil {
		if errors.Is(err, errNoFilename) {
			return c.Status(400).JSON(fiber.Map{"error": "No selected file"})
		}
		return c.Status(400).JSON(fiber.Map{"error": "No CSV part in the request"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": fmt.Sprintf("An error occurred: %v", err)})
	}
	defer f.Close()

	identity := middleware.Identity(c)
	n, err := h.catalog.ImportCSV(identity.UserID, f)
	if err != nil {
		h.log.Error("csv import failed", zap.String("user_id", identity.UserID.String()), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": fmt.Sprintf("An error occurred: %s", service.Message(err))})
	}

	h.log.Info("csv imported", zap.String("user_id", identity.UserID.String()), zap.Int("rows", n))
	return c.JSON(fiber.Map{"message": "CSV file uploaded and data stored successfully"})
}

type FetchRowRequest struct {
	Barcode string `json:"barcode"`
}

// FetchRow looks a barcode up in the caller's catalog
// POST /fetch_row
func (h *CatalogHandler) FetchRow(c *fiber.Ctx) error {
	var req FetchRowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.barcode.Lookup(middleware.Identity(c).UserID, req.Barcode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.Status(400).JSON(fiber.Map{"error": service.Message(err)})
		case errors.Is(err, service.ErrNotFound):
			return c.Status(404).JSON(fiber.Map{"error": service.Message(err)})
		}
		return err
	}
	return c.JSON(product)
}
