package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/consultly/backend/internal/config"
	"github.com/consultly/backend/internal/database"
	"github.com/consultly/backend/internal/handlers"
	"github.com/consultly/backend/internal/models"
	"github.com/consultly/backend/internal/routes"
	"github.com/consultly/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGateway struct {
	order      *services.Order
	orderErr   error
	payment    *services.Payment
	captureErr error
}

func (s *stubGateway) CreateOrder(_ context.Context, _ *services.OrderRequest) (*services.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return s.order, nil
}

func (s *stubGateway) CapturePayment(_ context.Context, _ *services.CaptureRequest) (*services.Payment, error) {
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	return s.payment, nil
}

type testApp struct {
	app    *fiber.App
	db     *gorm.DB
	cfg    *config.Config
	tokens *services.TokenService
}

func newTestApp(t *testing.T, gw services.Gateway) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.PaymentAttempt{},
	))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:             "test-signing-secret",
		JWTExpiry:             time.Hour,
		PaymentCurrency:       "INR",
		ResetOTP:              "123456",
		RazorpayWebhookSecret: "whsec_test",
	}

	tokens := services.NewTokenService(cfg)
	authService := services.NewAuthService(db, cfg, tokens)
	bookingService := services.NewBookingService(db)
	paymentService := services.NewPaymentService(db, gw, cfg)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewBookingHandler(bookingService, tokens),
		handlers.NewPaymentHandler(paymentService, tokens),
		handlers.NewWebhookHandler(paymentService, cfg),
		handlers.NewHealthHandler(),
	)

	return &testApp{app: app, db: db, cfg: cfg, tokens: tokens}
}

func (ta *testApp) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// signup registers a user through the API and returns its id and token.
func (ta *testApp) signup(t *testing.T, name, email, password string) (uuid.UUID, string) {
	t.Helper()

	resp, body := ta.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token, _ := body["token"].(string)
	user, _ := body["user"].(map[string]interface{})
	id, err := uuid.Parse(user["id"].(string))
	require.NoError(t, err)
	return id, token
}

// adminToken seeds an admin user directly and mints its token.
func (ta *testApp) adminToken(t *testing.T) string {
	t.Helper()

	admin := models.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "unused",
		Role:     "admin",
	}
	require.NoError(t, ta.db.Create(&admin).Error)

	token, err := ta.tokens.Issue(admin.ID, "admin")
	require.NoError(t, err)
	return token
}
