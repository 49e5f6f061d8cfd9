package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	tokens := NewTokenService(testConfig())
	subjectID := uuid.New()

	token, err := tokens.Issue(subjectID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, subjectID, claims.SubjectID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenService_RejectsCorruptedToken(t *testing.T) {
	tokens := NewTokenService(testConfig())

	token, err := tokens.Issue(uuid.New(), "user")
	require.NoError(t, err)

	// Flip a single character in the signature segment.
	corrupted := []byte(token)
	last := len(corrupted) - 1
	if corrupted[last] == 'a' {
		corrupted[last] = 'b'
	} else {
		corrupted[last] = 'a'
	}

	_, err = tokens.Verify(string(corrupted))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	tokens := NewTokenService(testConfig())

	other := testConfig()
	other.JWTSecret = "a-different-secret"
	otherTokens := NewTokenService(other)

	token, err := otherTokens.Issue(uuid.New(), "user")
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	tokens := NewTokenService(cfg)

	token, err := tokens.Issue(uuid.New(), "user")
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsUnsignedAlgorithm(t *testing.T) {
	tokens := NewTokenService(testConfig())

	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsMalformedInput(t *testing.T) {
	tokens := NewTokenService(testConfig())

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := tokens.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestTokenService_RejectsMissingRole(t *testing.T) {
	cfg := testConfig()
	tokens := NewTokenService(cfg)

	claims := jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
