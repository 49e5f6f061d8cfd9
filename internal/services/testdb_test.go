package services

import (
	"testing"
	"time"

	"github.com/consultly/backend/internal/config"
	"github.com/consultly/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.PaymentAttempt{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-signing-secret",
		JWTExpiry:       time.Hour,
		PaymentCurrency: "INR",
		ResetOTP:        "123456",
	}
}
