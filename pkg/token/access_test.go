package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lootcase_backend/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &model.User{ID: 42, Login: "player"}

	tokenStr, err := GenerateAccessToken(user, secret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(tokenStr, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.ID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	tokenStr, err := GenerateAccessToken(&model.User{ID: 1}, []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tokenStr, []byte("wrong"))
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	tokenStr, err := GenerateAccessToken(&model.User{ID: 1}, []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tokenStr, []byte("secret"))
	assert.Error(t, err)
}
