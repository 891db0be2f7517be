package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hrm-letters/internal/config"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := testJWTService("test-secret-key")
	userID := uuid.New()

	token, err := service.GenerateToken(userID, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.False(t, claims.Admin)
}

func TestJWTService_AdminClaim(t *testing.T) {
	service := testJWTService("test-secret-key")
	userID := uuid.New()

	token, err := service.GenerateToken(userID, true)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_ValidateToken_Empty(t *testing.T) {
	service := testJWTService("test-secret-key")

	claims, err := service.ValidateToken("")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "empty")
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := testJWTService("test-secret-key")

	claims, err := service.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	userID := uuid.New()
	token, err := testJWTService("secret-one").GenerateToken(userID, false)
	require.NoError(t, err)

	claims, err := testJWTService("secret-two").ValidateToken(token)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	secret := "test-secret-key"
	now := time.Now()
	claims := &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	parsed, err := testJWTService(secret).ValidateToken(token)
	require.Error(t, err)
	assert.Nil(t, parsed)
}

func TestJWTService_ValidateToken_RejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never validate.
	service := testJWTService("test-secret-key")
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.ValidateToken(signed)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := testJWTService("test-secret-key")
	userID := uuid.New()

	token, err := service.GenerateToken(userID, true)
	require.NoError(t, err)

	validator := service.AsTokenValidator()
	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
	assert.True(t, claims.IsAdmin())

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}
