package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reservation record owned by a user. UID is assigned once at
// creation and never changes; UpdatedAt advances on every mutation.
type Booking struct {
	UID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;not null" json:"email"`
	CalendarDate  string    `gorm:"size:64;not null" json:"calendar_date"`
	FileURL       string    `gorm:"size:512" json:"file_url,omitempty"`
	Status        string    `gorm:"size:50" json:"status,omitempty"`
	PaymentStatus string    `gorm:"size:50" json:"payment_status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
