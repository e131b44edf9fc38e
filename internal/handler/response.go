package handler

import (
	"errors"
	"log"

	"go-gudang-tekstil/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// success wraps data in the uniform response envelope.
func success(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

// NewErrorHandler returns the centralized fiber error handler. Operational
// errors keep their status and message; anything unclassified becomes a 500
// with the detail suppressed in production and logged internally.
func NewErrorHandler(isProduction bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr := apperr.As(err); appErr != nil {
			body := fiber.Map{"success": false, "message": appErr.Message}
			if appErr.Errors != nil {
				body["errors"] = appErr.Errors
			}
			return c.Status(appErr.Status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		log.Printf("Unexpected error on %s %s: %v", c.Method(), c.Path(), err)

		message := "Internal server error"
		if !isProduction {
			message = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}

// NotFoundHandler answers routes that matched nothing.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Route " + c.Method() + " " + c.Path() + " not found",
	})
}
