package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/server/handlers"
	"github.com/iudanet/storekeeper/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testJWTConfig(secret string, ttl time.Duration) handlers.JWTConfig {
	return handlers.JWTConfig{Secret: []byte(secret), TokenTTL: ttl}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func forbidden(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not be called")
	})
}

func TestAuthMiddleware_Success(t *testing.T) {
	cfg := testJWTConfig("test-secret-key", 15*time.Minute)
	token, expiresAt, err := handlers.GenerateToken(cfg, "front-desk", time.Now())
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := handlers.GetSubject(r.Context())
		require.True(t, ok, "subject should be in context")
		assert.Equal(t, "front-desk", subject)
		assert.Equal(t, expiresAt.Unix(), handlers.GetExpiresAt(r.Context()).Unix())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_TokenWithoutExpiry(t *testing.T) {
	cfg := testJWTConfig("test-secret-key", 0)
	token, _, err := handlers.GenerateToken(cfg, "kiosk", time.Now())
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, handlers.GetExpiresAt(r.Context()).IsZero())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cfg := testJWTConfig("test-secret-key", 15*time.Minute)

	expired, _, err := handlers.GenerateToken(cfg, "user", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	foreign, _, err := handlers.GenerateToken(testJWTConfig("other-secret", time.Hour), "user", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "missing token"},
		{name: "no Bearer prefix", header: "token123", message: "invalid token format"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", message: "invalid token format"},
		{name: "only Bearer", header: "Bearer", message: "invalid token format"},
		{name: "malformed token", header: "Bearer invalid.token.here", message: "invalid token"},
		{name: "empty token", header: "Bearer ", message: "invalid token"},
		{name: "expired token", header: "Bearer " + expired, message: "invalid token"},
		{name: "wrong secret", header: "Bearer " + foreign, message: "invalid token"},
	}

	handler := AuthMiddleware(setupTestLogger(), cfg)(forbidden(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, handlers.CodeUnauthorized, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}
