package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/consultly/backend/internal/config"
	"github.com/consultly/backend/internal/dto"
	"github.com/consultly/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid OTP")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, tokens *TokenService) *AuthService {
	return &AuthService{db: db, cfg: cfg, tokens: tokens}
}

func (s *AuthService) Signup(req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if len(req.Name) < 2 || len(req.Email) == 0 || len(req.Password) < 6 {
		return nil, errors.New("name, email and a password of at least 6 characters are required")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     "user",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.respondWithToken(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken(&user)
}

// ForgotPassword issues a reset OTP for a known email. Delivery is simulated
// with a log line; the OTP itself comes from configuration.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	slog.Info("password reset OTP issued", "email", email)
	return nil
}

func (s *AuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	if req.OTP != s.cfg.ResetOTP {
		return ErrInvalidOTP
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

func (s *AuthService) respondWithToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
