package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/server/blob"
	"github.com/iudanet/storekeeper/internal/server/handlers"
	"github.com/iudanet/storekeeper/internal/server/middleware"
	"github.com/iudanet/storekeeper/internal/server/notify"
	"github.com/iudanet/storekeeper/internal/server/storage/sqlite"
	"github.com/iudanet/storekeeper/pkg/api"
)

func newTestServer(t *testing.T, jwtCfg handlers.JWTConfig) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewUnstartedServer(nil)
	blobs, err := blob.New(t.TempDir(), "http://"+srv.Listener.Addr().String(), 1<<20, logger)
	require.NoError(t, err)

	cfg := handlers.RouterConfig{
		Logger:      logger,
		Health:      handlers.NewHealthHandler(logger, store, "test"),
		Collections: handlers.NewCollectionsHandler(logger, store, notify.NewHub(), handlers.DefaultCollections(handlers.NewSanitizer()), time.Second),
		Blobs:       handlers.NewBlobsHandler(logger, blobs),
		Middlewares: []func(http.Handler) http.Handler{
			middleware.RecoveryMiddleware(logger),
			middleware.LoggingWithSkip(logger, []string{"/api/v1/health"}),
		},
	}
	if jwtCfg.Enabled() {
		cfg.Auth = middleware.AuthMiddleware(logger, jwtCfg)
	}

	srv.Config.Handler = handlers.NewRouter(cfg)
	srv.Start()
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_AuthDisabled(t *testing.T) {
	srv := newTestServer(t, handlers.JWTConfig{})

	resp := call(t, http.MethodGet, srv.URL+"/api/v1/whoami", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var who api.WhoAmIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&who))
	assert.Equal(t, handlers.AnonymousSubject, who.Subject)

	resp = call(t, http.MethodPost, srv.URL+"/api/v1/collections/categories", "", `{"name":"Garden","description":"Outdoor"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_AuthEnabled(t *testing.T) {
	jwtCfg := handlers.JWTConfig{Secret: []byte("router-secret"), TokenTTL: time.Hour}
	srv := newTestServer(t, jwtCfg)

	token, _, err := handlers.GenerateToken(jwtCfg, "front-desk", time.Now())
	require.NoError(t, err)

	// health и публичные файлы доступны без токена
	resp := call(t, http.MethodGet, srv.URL+"/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/v1/whoami", "/api/v1/collections/products"} {
		resp := call(t, http.MethodGet, srv.URL+path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
	resp = call(t, http.MethodPut, srv.URL+"/api/v1/blobs/images/a.png", "", "png")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, http.MethodGet, srv.URL+"/api/v1/whoami", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var who api.WhoAmIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&who))
	assert.Equal(t, "front-desk", who.Subject)
	assert.NotZero(t, who.ExpiresAt)

	resp = call(t, http.MethodPut, srv.URL+"/api/v1/blobs/images/a.png", token, "png")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var uploaded api.BlobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Equal(t, srv.URL+"/blobs/images/a.png", uploaded.URL)

	resp = call(t, http.MethodGet, uploaded.URL, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestRouter_NotFound(t *testing.T) {
	srv := newTestServer(t, handlers.JWTConfig{})

	resp := call(t, http.MethodGet, srv.URL+"/api/v2/anything", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var apiErr api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	assert.Equal(t, handlers.CodeNotFound, apiErr.Error)

	resp = call(t, http.MethodPatch, srv.URL+"/api/v1/collections/products/x", "", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
