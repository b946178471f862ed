package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/server/blob"
	"github.com/iudanet/storekeeper/pkg/api"
)

func setupBlobs(t *testing.T, maxSize int64) (http.Handler, *blob.Store) {
	t.Helper()

	store, err := blob.New(t.TempDir(), "http://store.test", maxSize, setupTestLogger())
	require.NoError(t, err)

	h := NewBlobsHandler(setupTestLogger(), store)
	r := chi.NewRouter()
	r.Put("/api/v1/blobs/*", h.Put)
	r.Delete("/api/v1/blobs/*", h.Delete)
	r.Get("/blobs/*", h.Serve)
	return r, store
}

func sendBlob(router http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBlobs_PutServeDelete(t *testing.T) {
	router, store := setupBlobs(t, 1024)

	w := sendBlob(router, http.MethodPut, "/api/v1/blobs/images/pipe.png", "image/png", "fake-png")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp api.BlobResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "images/pipe.png", resp.Path)
	assert.Equal(t, "http://store.test/blobs/images/pipe.png", resp.URL)
	assert.Equal(t, blob.Checksum([]byte("fake-png")), resp.Checksum)
	assert.Equal(t, int64(8), resp.Size)

	data, err := os.ReadFile(filepath.Join(store.Dir(), "images", "pipe.png"))
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))

	w = sendBlob(router, http.MethodGet, "/blobs/images/pipe.png", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fake-png", w.Body.String())

	w = sendBlob(router, http.MethodDelete, "/api/v1/blobs/images/pipe.png", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = sendBlob(router, http.MethodDelete, "/api/v1/blobs/images/pipe.png", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = sendBlob(router, http.MethodGet, "/blobs/images/pipe.png", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlobs_PutRejects(t *testing.T) {
	router, _ := setupBlobs(t, 16)

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		wantCode    string
		wantStatus  int
	}{
		{name: "too large", target: "/api/v1/blobs/images/big.png", body: strings.Repeat("x", 17), wantStatus: http.StatusRequestEntityTooLarge, wantCode: CodeTooLarge},
		{name: "hidden segment", target: "/api/v1/blobs/images/.env", body: "x", wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest},
		{name: "empty path", target: "/api/v1/blobs/", body: "x", wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest},
		{name: "not a pdf", target: "/api/v1/blobs/libros/manual.pdf", body: "plain text", wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
		{name: "pdf by content type", target: "/api/v1/blobs/libros/manual", contentType: "application/pdf", body: "plain text", wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sendBlob(router, http.MethodPut, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestBlobs_ServeRejectsListing(t *testing.T) {
	router, _ := setupBlobs(t, 1024)

	w := sendBlob(router, http.MethodPut, "/api/v1/blobs/libros/a.txt", "text/plain", "a")
	require.Equal(t, http.StatusCreated, w.Code)

	for _, target := range []string{"/blobs/libros/", "/blobs/", "/blobs/libros/.a.txt"} {
		w := sendBlob(router, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}
