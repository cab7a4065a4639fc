package handler

import (
	"errors"

	"go-price-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a handler as {"error": ...}.
// Unknown routes and hidden admin pages share the same 404 body.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrImageDecode):
			code = fiber.StatusBadRequest
			message = service.Message(err)
		case errors.Is(err, service.ErrNotFound):
			code = fiber.StatusNotFound
			message = service.Message(err)
		case errors.Is(err, service.ErrConflict):
			code = fiber.StatusConflict
			message = service.Message(err)
		case errors.Is(err, service.ErrAuth):
			code = fiber.StatusUnauthorized
			message = service.Message(err)
		}

		if code == fiber.StatusNotFound && fe != nil {
			message = "Not Found"
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
