package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware_Levels(t *testing.T) {
	tests := []struct {
		name      string
		wantLevel string
		status    int
	}{
		{name: "success", status: http.StatusOK, wantLevel: "level=INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "level=WARN"},
		{name: "server error", status: http.StatusBadGateway, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			out := logs.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "method=GET")
			assert.Contains(t, out, "bytes_written=5")
		})
	}
}

func TestLoggingMiddleware_RoutePattern(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := chi.NewRouter()
	r.Use(LoggingMiddleware(logger))
	r.Get("/api/v1/collections/{collection}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/products/0192-abc", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	assert.Contains(t, out, "route=/api/v1/collections/{collection}/{id}")
	assert.NotContains(t, out, "0192-abc")
	assert.NotContains(t, out, "secret-token")
}

func TestLoggingWithSkip(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := LoggingWithSkip(logger, []string{"/api/v1/health"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Empty(t, logs.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil))
	assert.Contains(t, logs.String(), "route=/api/v1/whoami")
}
