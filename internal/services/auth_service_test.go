package services

import (
	"testing"

	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := testConfig()
	return NewAuthService(newTestDB(t), cfg, NewTokenService(cfg))
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Signup(&dto.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)

	login, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := &dto.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"}
	_, err := svc.Signup(req)
	require.NoError(t, err)

	_, err = svc.Signup(req)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, svc.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_SignupStoresNoPlaintext(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, svc.db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	err := svc.ForgotPassword("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ResetPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Signup(&dto.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	err = svc.ResetPassword(&dto.ResetPasswordRequest{
		Email: "alice@example.com", OTP: "000000", NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)

	err = svc.ResetPassword(&dto.ResetPasswordRequest{
		Email: "nobody@example.com", OTP: "123456", NewPassword: "newsecret",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.ResetPassword(&dto.ResetPasswordRequest{
		Email: "alice@example.com", OTP: "123456", NewPassword: "newsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}
