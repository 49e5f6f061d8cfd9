package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/consultly/backend/internal/config"
	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// razorpayReceiptLimit is the gateway's maximum receipt length. The order
// reference sent as the receipt is truncated to this many characters.
const razorpayReceiptLimit = 40

const defaultContact = "9999999999"

var ErrAttemptMismatch = errors.New("attempt does not match the original payment request")

type PaymentResult struct {
	AttemptID     string
	PaymentID     string
	PaymentStatus string
}

// PaymentService drives the two-step gateway transaction: order creation,
// then capture. The gateway response is authoritative; the booking's payment
// status is written only after a successful capture.
type PaymentService struct {
	db       *gorm.DB
	gateway  Gateway
	currency string
}

func NewPaymentService(db *gorm.DB, gateway Gateway, cfg *config.Config) *PaymentService {
	return &PaymentService{db: db, gateway: gateway, currency: cfg.PaymentCurrency}
}

// Pay runs one payment attempt for a booking. The attempt id is the
// idempotency key: a retry with the same id reuses the recorded gateway order
// instead of creating a duplicate, and an attempt that already captured
// returns the recorded result without touching the gateway.
func (s *PaymentService) Pay(ctx context.Context, bookingUID uuid.UUID, req *dto.PaymentRequest) (*PaymentResult, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "uid = ?", bookingUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	attemptID := req.AttemptID
	if attemptID == "" {
		attemptID = uuid.New().String()
	}

	minorAmount := req.Amount * 100

	attempt, err := s.loadOrCreateAttempt(bookingUID, attemptID, minorAmount)
	if err != nil {
		return nil, err
	}

	// Replay of an already-settled attempt.
	if attempt.GatewayPaymentID != "" {
		return &PaymentResult{
			AttemptID:     attempt.AttemptID,
			PaymentID:     attempt.GatewayPaymentID,
			PaymentStatus: attempt.Status,
		}, nil
	}

	if attempt.Amount != minorAmount {
		return nil, ErrAttemptMismatch
	}

	if attempt.GatewayOrderID == "" {
		order, err := s.gateway.CreateOrder(ctx, &OrderRequest{
			Amount:   minorAmount,
			Currency: s.currency,
			Receipt:  attempt.Receipt,
			Notes: map[string]string{
				"bookingUid":    bookingUID.String(),
				"customerEmail": booking.Email,
			},
		})
		if err != nil {
			s.recordGatewayFailure(attempt, err)
			return nil, err
		}

		attempt.GatewayOrderID = order.ID
		attempt.Status = models.AttemptStatusOrderCreated
		if err := s.db.Model(attempt).Updates(map[string]interface{}{
			"gateway_order_id": attempt.GatewayOrderID,
			"status":           attempt.Status,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to record gateway order: %w", err)
		}
	}

	contact := req.Contact
	if contact == "" {
		contact = defaultContact
	}

	payment, err := s.gateway.CapturePayment(ctx, &CaptureRequest{
		Amount:   minorAmount,
		Currency: s.currency,
		OrderID:  attempt.GatewayOrderID,
		Method:   req.PaymentMethod,
		Email:    booking.Email,
		Contact:  contact,
		Notes:    map[string]string{"bookingUid": bookingUID.String()},
	})
	if err != nil {
		// The booking's payment status is deliberately left untouched here:
		// a failed capture must not write any partial state.
		s.db.Model(attempt).Update("status", models.AttemptStatusCaptureFailed)
		s.recordGatewayFailure(attempt, err)
		return nil, err
	}

	if err := s.settle(attempt, &booking, payment); err != nil {
		return nil, err
	}

	return &PaymentResult{
		AttemptID:     attempt.AttemptID,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
	}, nil
}

// HandleGatewayEvent reconciles booking payment state from a gateway webhook,
// covering clients that disconnect after capture.
func (s *PaymentService) HandleGatewayEvent(event string, payment *dto.RazorpayWebhookPayment) error {
	switch event {
	case "payment.captured", "payment.failed":
	default:
		return nil
	}

	bookingUID, err := uuid.Parse(payment.Notes["bookingUid"])
	if err != nil {
		return fmt.Errorf("webhook payment %s carries no booking reference", payment.ID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Booking{}).
			Where("uid = ?", bookingUID).
			Update("payment_status", payment.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingNotFound
		}

		if payment.OrderID != "" {
			tx.Model(&models.PaymentAttempt{}).
				Where("booking_uid = ? AND gateway_order_id = ?", bookingUID, payment.OrderID).
				Updates(map[string]interface{}{
					"gateway_payment_id": payment.ID,
					"status":             payment.Status,
				})
		}
		return nil
	})
}

func (s *PaymentService) loadOrCreateAttempt(bookingUID uuid.UUID, attemptID string, minorAmount int64) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	err := s.db.Where("booking_uid = ? AND attempt_id = ?", bookingUID, attemptID).First(&attempt).Error
	if err == nil {
		return &attempt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load payment attempt: %w", err)
	}

	attempt = models.PaymentAttempt{
		ID:         uuid.New(),
		BookingUID: bookingUID,
		AttemptID:  attemptID,
		Amount:     minorAmount,
		Currency:   s.currency,
		Receipt:    orderReference(bookingUID, attemptID),
		Status:     models.AttemptStatusPending,
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment attempt: %w", err)
	}
	return &attempt, nil
}

func (s *PaymentService) settle(attempt *models.PaymentAttempt, booking *models.Booking, payment *Payment) error {
	raw, _ := json.Marshal(payment)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(booking).Update("payment_status", payment.Status).Error; err != nil {
			return fmt.Errorf("failed to update booking payment status: %w", err)
		}
		return tx.Model(attempt).Updates(map[string]interface{}{
			"gateway_payment_id": payment.ID,
			"status":             payment.Status,
			"gateway_response":   datatypes.JSON(raw),
		}).Error
	})
}

func (s *PaymentService) recordGatewayFailure(attempt *models.PaymentAttempt, err error) {
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) || len(gwErr.Body) == 0 {
		return
	}
	if dbErr := s.db.Model(attempt).
		Update("gateway_response", datatypes.JSON(gwErr.Body)).Error; dbErr != nil {
		slog.Error("failed to record gateway diagnostic payload",
			"attempt_id", attempt.AttemptID, "error", dbErr)
	}
}

// orderReference derives the deterministic gateway receipt for one attempt:
// the booking uid without dashes plus an attempt component, truncated to the
// gateway's receipt limit. Retries of the same attempt produce the same
// reference.
func orderReference(bookingUID uuid.UUID, attemptID string) string {
	uidPart := strings.ReplaceAll(bookingUID.String(), "-", "")
	attemptPart := strings.ReplaceAll(attemptID, "-", "")
	if len(attemptPart) > 6 {
		attemptPart = attemptPart[:6]
	}
	// "order_" + uid + "_" + attempt must fit the gateway receipt limit; the
	// uid part gives way so the attempt component always survives whole.
	if max := razorpayReceiptLimit - len("order_") - 1 - len(attemptPart); len(uidPart) > max {
		uidPart = uidPart[:max]
	}
	return "order_" + uidPart + "_" + attemptPart
}
