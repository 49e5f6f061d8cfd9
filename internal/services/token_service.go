package services

import (
	"errors"
	"time"

	"github.com/consultly/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the verified contents of a session token. They are trusted only
// after signature verification.
type Claims struct {
	SubjectID uuid.UUID
	Role      string
}

// TokenService mints and verifies stateless HS256 session tokens. There is no
// server-side session store: every successful protected operation re-issues a
// fresh token from the verified claims.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
	}
}

func (s *TokenService) Issue(subjectID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify rejects tampered, expired, or wrong-algorithm tokens. Malformed input
// is a normal rejection, never a panic.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	subjectID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role, _ := mc["role"].(string)
	if role == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{SubjectID: subjectID, Role: role}, nil
}
