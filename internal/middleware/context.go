package middleware

import (
	"errors"

	"github.com/consultly/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Caller extracts the verified token claims from Fiber context locals. The
// claims were placed there by JWTProtected, so signature and expiry have
// already been checked.
func Caller(c *fiber.Ctx) (*services.Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}

	subjectID, err := uuid.Parse(sub)
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)
	return &services.Claims{SubjectID: subjectID, Role: role}, nil
}
