package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iepin-personal/planilla-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "24h")
}

func TestAccessTokenCarriesClaims(t *testing.T) {
	svc := newTestService()

	tokenStr, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@iepin.pe", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin@iepin.pe", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenStr)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
}

func TestSSETokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenStr, expiresIn, err := svc.GenerateSSEToken("user-7")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}

func TestValidateSSETokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateAccessToken("user-1", "a@b.pe", user.RoleOperator)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(tokenStr)
	assert.Error(t, err)
}

func TestValidateSSETokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenRevocation(t *testing.T) {
	svc := newTestService()

	tokenStr, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenStr))
	svc.RevokeToken(tokenStr)
	assert.True(t, svc.IsTokenRevoked(tokenStr))
}

func TestRefreshTokenCookieIsHTTPOnly(t *testing.T) {
	svc := newTestService()

	cookie := svc.RefreshTokenCookie("some-token", 1700000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}
