package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment attempt states. An attempt moves forward only; a capture failure is
// terminal for that attempt and a client retry reuses the recorded order.
const (
	AttemptStatusPending       = "pending"
	AttemptStatusOrderCreated  = "order_created"
	AttemptStatusCaptureFailed = "capture_failed"
)

// PaymentAttempt records one logical payment attempt for a booking. The
// (booking_uid, attempt_id) pair is the idempotency key: a retry carrying the
// same attempt id reuses the gateway order recorded here instead of creating
// a duplicate.
type PaymentAttempt struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingUID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempts_booking_attempt" json:"booking_uid"`
	AttemptID        string         `gorm:"size:64;not null;uniqueIndex:idx_attempts_booking_attempt" json:"attempt_id"`
	Amount           int64          `gorm:"not null" json:"amount"`
	Currency         string         `gorm:"size:8;not null" json:"currency"`
	Receipt          string         `gorm:"size:40;not null" json:"receipt"`
	GatewayOrderID   string         `gorm:"size:64;index" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string         `gorm:"size:64;index" json:"gateway_payment_id,omitempty"`
	Status           string         `gorm:"size:32;not null" json:"status"`
	GatewayResponse  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
