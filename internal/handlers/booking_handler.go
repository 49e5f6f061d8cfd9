package handlers

import (
	"errors"
	"log/slog"

	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/middleware"
	"github.com/consultly/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingService *services.BookingService
	tokens         *services.TokenService
}

func NewBookingHandler(bookingService *services.BookingService, tokens *services.TokenService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, tokens: tokens}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	caller, err := middleware.Caller(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" || req.CalendarDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name, email and calendar_date are required",
		})
	}

	booking, err := h.bookingService.Create(caller.SubjectID, &req)
	if err != nil {
		slog.Error("booking creation failed", "user_id", caller.SubjectID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create booking",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.BookingResponse{
		Token:   h.rotate(caller),
		Booking: booking,
	})
}

func (h *BookingHandler) Update(c *fiber.Ctx) error {
	caller, err := middleware.Caller(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	uid, err := uuid.Parse(c.Params("uid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid booking uid",
		})
	}

	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	booking, err := h.bookingService.Update(uid, caller, &req)
	if err != nil {
		return h.bookingError(c, err)
	}

	return c.JSON(dto.BookingResponse{
		Token:   h.rotate(caller),
		Booking: booking,
	})
}

func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	caller, err := middleware.Caller(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	uid, err := uuid.Parse(c.Params("uid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid booking uid",
		})
	}

	if err := h.bookingService.Delete(uid, caller); err != nil {
		return h.bookingError(c, err)
	}

	return c.JSON(dto.BookingResponse{Token: h.rotate(caller)})
}

// ListAll is admin-only; the role gate runs in the route middleware.
func (h *BookingHandler) ListAll(c *fiber.Ctx) error {
	caller, err := middleware.Caller(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	bookings, err := h.bookingService.ListAll()
	if err != nil {
		slog.Error("booking listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list bookings",
		})
	}

	return c.JSON(dto.BookingListResponse{
		Token:    h.rotate(caller),
		Bookings: bookings,
	})
}

func (h *BookingHandler) ListByUser(c *fiber.Ctx) error {
	caller, err := middleware.Caller(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	bookings, err := h.bookingService.ListByUser(userID)
	if err != nil {
		slog.Error("booking listing failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list bookings",
		})
	}

	return c.JSON(dto.BookingListResponse{
		Token:    h.rotate(caller),
		Bookings: bookings,
	})
}

func (h *BookingHandler) bookingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrBookingNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Booking not found",
		})
	}
	if errors.Is(err, services.ErrNotOwner) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	slog.Error("booking operation failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// rotate issues a fresh token for the verified caller so each successful
// response supersedes the token that was presented.
func (h *BookingHandler) rotate(caller *services.Claims) string {
	token, err := h.tokens.Issue(caller.SubjectID, caller.Role)
	if err != nil {
		slog.Error("token rotation failed", "user_id", caller.SubjectID, "error", err)
		return ""
	}
	return token
}
