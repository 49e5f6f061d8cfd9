package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/consultly/backend/internal/config"
	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	paymentService *services.PaymentService
	webhookSecret  string
}

func NewWebhookHandler(paymentService *services.PaymentService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		webhookSecret:  cfg.RazorpayWebhookSecret,
	}
}

// HandleRazorpay reconciles booking payment state from gateway webhook events.
// The body signature is an HMAC-SHA256 over the raw payload.
func (h *WebhookHandler) HandleRazorpay(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	body := c.Body()
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	signature := c.Get("X-Razorpay-Signature")
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var webhook dto.RazorpayWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if err := h.paymentService.HandleGatewayEvent(webhook.Event, &webhook.Payload.Payment.Entity); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Booking not found",
			})
		}
		slog.Error("webhook processing failed", "event", webhook.Event, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("webhook processed", "event", webhook.Event)
	return c.JSON(fiber.Map{"received": true})
}
