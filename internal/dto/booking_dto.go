package dto

import "github.com/consultly/backend/internal/models"

type CreateBookingRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	CalendarDate string `json:"calendar_date"`
	FileURL      string `json:"file_url,omitempty"`
}

// UpdateBookingRequest carries partial updates: nil fields are left unchanged.
type UpdateBookingRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

// BookingResponse wraps a single booking together with the rotated token
// returned on every successful protected operation.
type BookingResponse struct {
	Token   string          `json:"token"`
	Booking *models.Booking `json:"booking,omitempty"`
}

type BookingListResponse struct {
	Token    string           `json:"token"`
	Bookings []models.Booking `json:"bookings"`
}
