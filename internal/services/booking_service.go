package services

import (
	"errors"
	"fmt"

	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotOwner        = errors.New("you can only modify your own bookings")
)

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

func (s *BookingService) Create(ownerID uuid.UUID, req *dto.CreateBookingRequest) (*models.Booking, error) {
	booking := models.Booking{
		UID:          uuid.New(),
		UserID:       ownerID,
		Name:         req.Name,
		Email:        req.Email,
		CalendarDate: req.CalendarDate,
		FileURL:      req.FileURL,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &booking, nil
}

// Update merges only the supplied fields and advances UpdatedAt. Only the
// owner or an admin may update a booking.
func (s *BookingService) Update(uid uuid.UUID, caller *Claims, req *dto.UpdateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.UserID != caller.SubjectID && caller.Role != "admin" {
		return nil, ErrNotOwner
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		updates["payment_status"] = *req.PaymentStatus
	}
	if len(updates) == 0 {
		return &booking, nil
	}

	if err := s.db.Model(&booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if err := s.db.First(&booking, "uid = ?", uid).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	return &booking, nil
}

func (s *BookingService) Delete(uid uuid.UUID, caller *Claims) error {
	var booking models.Booking
	if err := s.db.First(&booking, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.UserID != caller.SubjectID && caller.Role != "admin" {
		return ErrNotOwner
	}

	if err := s.db.Delete(&booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (s *BookingService) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListByUser returns the user's bookings, empty when there are none.
func (s *BookingService) ListByUser(userID uuid.UUID) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
