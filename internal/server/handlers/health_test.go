package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/pkg/api"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		db         Pinger
		name       string
		wantStatus string
		wantCode   int
	}{
		{name: "no database", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "database up", db: pingerFunc(func(context.Context) error { return nil }), wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "database down", db: pingerFunc(func(context.Context) error { return errors.New("disk I/O error") }), wantCode: http.StatusServiceUnavailable, wantStatus: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(setupTestLogger(), tt.db, "1.2.3")

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			w := httptest.NewRecorder()
			handler.Health(w, req)

			resp := w.Result()
			defer func() {
				assert.NoError(t, resp.Body.Close())
			}()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var healthResp api.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&healthResp))
			assert.Equal(t, tt.wantStatus, healthResp.Status)
			assert.Equal(t, "1.2.3", healthResp.Version)
		})
	}
}
