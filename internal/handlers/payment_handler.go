package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/middleware"
	"github.com/consultly/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	tokens         *services.TokenService
}

func NewPaymentHandler(paymentService *services.PaymentService, tokens *services.TokenService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, tokens: tokens}
}

// Create runs the two-step payment transaction for a booking: gateway order
// creation, then capture.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	caller, err := middleware.Caller(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	bookingUID, err := uuid.Parse(req.BookingUID)
	if err != nil || req.Amount <= 0 || req.PaymentMethod == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "booking_uid, a positive amount and payment_method are required",
		})
	}

	result, err := h.paymentService.Pay(c.UserContext(), bookingUID, &req)
	if err != nil {
		return h.paymentError(c, err)
	}

	token, err := h.tokens.Issue(caller.SubjectID, caller.Role)
	if err != nil {
		slog.Error("token rotation failed", "user_id", caller.SubjectID, "error", err)
	}

	return c.JSON(dto.PaymentResponse{
		Token:         token,
		Message:       "Payment created and captured successfully",
		AttemptID:     result.AttemptID,
		PaymentID:     result.PaymentID,
		PaymentStatus: result.PaymentStatus,
	})
}

func (h *PaymentHandler) paymentError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrBookingNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Booking not found",
		})
	}
	if errors.Is(err, services.ErrAttemptMismatch) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	var gwErr *services.GatewayError
	if errors.As(err, &gwErr) {
		status := fiber.StatusBadRequest
		if gwErr.StatusCode >= 500 {
			status = fiber.StatusBadGateway
		}
		slog.Error("payment gateway call failed",
			"operation", gwErr.Operation, "upstream_status", gwErr.StatusCode)
		return c.Status(status).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Payment " + gwErr.Operation + " failed",
			Details: json.RawMessage(gwErr.Body),
		})
	}

	slog.Error("payment processing failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Payment processing failed",
	})
}
