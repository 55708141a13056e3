package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lootcase_backend/internal/model"
	"lootcase_backend/pkg/token"
)

func TestAuth(t *testing.T) {
	secret := []byte("test-secret")

	var gotID int
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = UserIDFromContext(r.Context())
	})

	handler := Auth(secret)(next)

	tokenStr, err := token.GenerateAccessToken(&model.User{ID: 42}, secret, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, 42, gotID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejects(t *testing.T) {
	secret := []byte("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})
	handler := Auth(secret)(next)

	// Нет заголовка
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/open", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Чужой секрет
	tokenStr, err := token.GenerateAccessToken(&model.User{ID: 1}, []byte("other"), time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
