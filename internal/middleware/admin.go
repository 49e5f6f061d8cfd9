package middleware

import (
	"github.com/consultly/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects callers whose verified token does not carry the admin
// role. The role claim is trusted because JWTProtected already verified the
// signature.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := Caller(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if caller.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
