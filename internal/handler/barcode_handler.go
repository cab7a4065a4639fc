package handler

import (
	"errors"
	"io"

	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BarcodeHandler struct {
	service service.BarcodeService
}

func NewBarcodeHandler(s service.BarcodeService) *BarcodeHandler {
	return &BarcodeHandler{service: s}
}

// Upload decodes the barcode in an uploaded picture
// POST /upload
func (h *BarcodeHandler) Upload(c *fiber.Ctx) error {
	file, err := formFile(c, "image")
	if err != nil {
		if errors.Is(err, errNoFilename) {
			return c.Status(400).JSON(fiber.Map{"error": "No selected file"})
		}
		return c.Status(400).JSON(fiber.Map{"error": "No image part in the request"})
	}

	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	code, err := h.service.DecodeImage(data)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrImageDecode) {
			return c.Status(400).JSON(fiber.Map{"error": service.Message(err)})
		}
		return err
	}
	return c.JSON(fiber.Map{"barcode": code})
}
