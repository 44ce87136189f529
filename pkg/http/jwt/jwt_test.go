package jwt

import (
	"testing"
	"time"

	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/pulseplan/pulseplan/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenAndParseToken(t *testing.T) {
	aToken, rToken, err := GenToken("user-1", []byte(testSecret), 30, 60)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserId)
	assert.Equal(t, "pulseplan", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	aToken, _, err := GenToken("user-1", []byte(testSecret), 30, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "another-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	claims := &AuthClaims{
		UserId: "user-1",
		RegisteredClaims: goJwt.RegisteredClaims{
			Issuer:    "pulseplan",
			ExpiresAt: goJwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := goJwt.NewWithClaims(goJwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(expired, testSecret)
	assert.ErrorIs(t, err, goJwt.ErrTokenExpired)
}

func TestRefreshToken(t *testing.T) {
	auth := &http.Auth{
		SecretKey:     testSecret,
		AccessExpire:  30,
		RefreshExpire: 60,
	}

	_, rToken, err := GenToken("user-1", []byte(testSecret), 30, 60)
	require.NoError(t, err)

	pair, err := RefreshToken(auth, "user-1", rToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair["accessToken"])
	assert.NotEmpty(t, pair["refreshToken"])

	claims, err := ParseToken(pair["accessToken"], testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserId)
}

func TestRefreshTokenInvalid(t *testing.T) {
	auth := &http.Auth{SecretKey: testSecret, AccessExpire: 30, RefreshExpire: 60}
	_, err := RefreshToken(auth, "user-1", "not-a-token")
	assert.Error(t, err)
}
