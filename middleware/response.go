package middleware

import "github.com/gofiber/fiber/v2"

// ErrorResponse writes the uniform error body. Every handler-level
// failure goes through here; no error reaches the transport layer raw.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// MessageResponse writes a plain confirmation body.
func MessageResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"message": message,
	})
}

// ValidationErrorResponse writes the field-level validation error map.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "Validation failed!",
		"fields": errors,
	})
}
