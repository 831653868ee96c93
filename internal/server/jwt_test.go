package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing"

func setupTestTokenService(_ *testing.T, ttl time.Duration) *TokenService {
	return NewTokenService(&config.JWTConfig{Secret: testSecret, Expiration: ttl})
}

func TestTokenService_RoundTrip(t *testing.T) {
	service := setupTestTokenService(t, time.Hour)

	token, err := service.GenerateToken("ci-bot")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	subject, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", subject)
}

func TestTokenService_GenerateToken_RequiresSubject(t *testing.T) {
	_, err := setupTestTokenService(t, time.Hour).GenerateToken("")
	assert.Error(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	service := setupTestTokenService(t, time.Minute)
	token, err := service.GenerateToken("ci-bot")
	require.NoError(t, err)

	service.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = service.ParseToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestTokenService_Rejects(t *testing.T) {
	service := setupTestTokenService(t, time.Hour)
	other := NewTokenService(&config.JWTConfig{Secret: "another-secret-of-some-length", Expiration: time.Hour})
	foreign, err := other.GenerateToken("ci-bot")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "ci-bot",
		Issuer:  tokenIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ci-bot",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not-a-jwt"},
		{name: "wrong secret", token: foreign},
		{name: "alg none", token: noneToken},
		{name: "wrong issuer", token: wrongIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}
