package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/storekeeper/internal/server/handlers"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		handler    http.HandlerFunc
		name       string
		wantStatus int
		wantLog    bool
	}{
		{
			name: "no panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "panic with string",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("shelf collapsed")
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    true,
		},
		{
			name: "nil map write",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var m map[string]int
				m["x"] = 1
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/collections/products", nil)
			w := httptest.NewRecorder()
			RecoveryMiddleware(logger)(tt.handler).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLog {
				assert.Contains(t, logs.String(), "Panic recovered")
				assert.Contains(t, logs.String(), "stack=")
				resp := decodeError(t, w)
				assert.Equal(t, handlers.CodeInternal, resp.Error)
				assert.NotContains(t, resp.Message, "shelf")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestRecoveryMiddleware_AbortHandler(t *testing.T) {
	handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
