package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storekeeper/internal/models"
	"github.com/iudanet/storekeeper/internal/server/notify"
	"github.com/iudanet/storekeeper/internal/server/storage/sqlite"
	"github.com/iudanet/storekeeper/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type collectionsFixture struct {
	handler *CollectionsHandler
	router  http.Handler
	hub     *notify.Hub
}

func setupCollections(t *testing.T, maxWait time.Duration) *collectionsFixture {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hub := notify.NewHub()
	h := NewCollectionsHandler(setupTestLogger(), store, hub, DefaultCollections(NewSanitizer()), maxWait)

	var seq atomic.Int64
	h.newID = func() string { return fmt.Sprintf("doc-%d", seq.Add(1)) }

	r := chi.NewRouter()
	r.Route("/api/v1/collections", h.Routes)

	return &collectionsFixture{handler: h, router: r, hub: hub}
}

func (f *collectionsFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *collectionsFixture) list(t *testing.T, target string) api.ListResponse {
	t.Helper()
	w := f.do(http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.ListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func decodeJSON(w *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(w.Body).Decode(v)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Error
}

func TestCollections_CreateGetList(t *testing.T) {
	f := setupCollections(t, time.Second)

	w := f.do(http.MethodPost, "/api/v1/collections/products",
		`{"name":"<b>Hammer</b>","category":"Tools & Hardware","price":12.5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created api.CreateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "doc-1", created.ID)

	w = f.do(http.MethodGet, "/api/v1/collections/products/doc-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	assert.Equal(t, models.Product{ID: "doc-1", Name: "Hammer", Category: "Tools & Hardware", Price: 12.5}, product)

	w = f.do(http.MethodPost, "/api/v1/collections/products", `{"name":"Saw","category":"Tools","price":20}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := f.list(t, "/api/v1/collections/products")
	assert.Equal(t, int64(2), resp.Revision)
	require.Len(t, resp.Items, 2)
	assert.JSONEq(t, `{"id":"doc-1","name":"Hammer","category":"Tools & Hardware","image":"","price":12.5}`, string(resp.Items[0]))

	// коллекции не видят чужих записей
	assert.Empty(t, f.list(t, "/api/v1/collections/categories").Items)
}

func TestCollections_CreateRejects(t *testing.T) {
	f := setupCollections(t, time.Second)

	tests := []struct {
		name       string
		collection string
		body       string
		wantCode   string
		wantStatus int
	}{
		{name: "unknown collection", collection: "orders", body: `{}`, wantStatus: http.StatusNotFound, wantCode: CodeUnknownCollection},
		{name: "malformed json", collection: "products", body: `{"name":`, wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest},
		{name: "unknown field", collection: "products", body: `{"name":"Nail","category":"Tools","price":1,"stock":4}`, wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest},
		{name: "missing name", collection: "products", body: `{"category":"Tools","price":1}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
		{name: "markup only name", collection: "products", body: `{"name":"<script>x</script>","category":"Tools","price":1}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
		{name: "negative price", collection: "products", body: `{"name":"Nail","category":"Tools","price":-1}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
		{name: "category without description", collection: "categories", body: `{"name":"Paint"}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
		{name: "book without author", collection: "books", body: `{"name":"Wiring 101","genre":"DIY"}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
		{name: "chat with unknown sender", collection: "chat", body: `{"text":"hi","sender":"bot","timestamp":1}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, "/api/v1/collections/"+tt.collection, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}

	// отклоненные записи не меняют ревизию
	assert.Equal(t, int64(0), f.list(t, "/api/v1/collections/products").Revision)
}

func TestCollections_UpdateDelete(t *testing.T) {
	f := setupCollections(t, time.Second)

	w := f.do(http.MethodPut, "/api/v1/collections/categories/missing", `{"name":"Paint","description":"Interior"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, errorCode(t, w))

	w = f.do(http.MethodPost, "/api/v1/collections/categories", `{"name":"Paint","description":"Interior"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// id в теле игнорируется, запись определяется путем
	w = f.do(http.MethodPut, "/api/v1/collections/categories/doc-1", `{"id":"other","name":"Paint","description":"Interior and exterior"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	resp := f.list(t, "/api/v1/collections/categories")
	assert.Equal(t, int64(2), resp.Revision)
	require.Len(t, resp.Items, 1)
	assert.JSONEq(t, `{"id":"doc-1","name":"Paint","description":"Interior and exterior"}`, string(resp.Items[0]))

	w = f.do(http.MethodDelete, "/api/v1/collections/categories/doc-1", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/collections/categories/doc-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/api/v1/collections/categories/doc-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp = f.list(t, "/api/v1/collections/categories")
	assert.Equal(t, int64(3), resp.Revision)
	assert.Empty(t, resp.Items)
}

func TestCollections_ChatSanitized(t *testing.T) {
	f := setupCollections(t, time.Second)

	w := f.do(http.MethodPost, "/api/v1/collections/chat",
		`{"text":"<i>list</i> products <script>alert(1)</script>","sender":"user","timestamp":1700000000000}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := f.list(t, "/api/v1/collections/chat")
	require.Len(t, resp.Items, 1)

	var msg models.ChatMessage
	require.NoError(t, json.Unmarshal(resp.Items[0], &msg))
	assert.Equal(t, "list products", msg.Text)
	assert.Equal(t, models.SenderUser, msg.Sender)
}

func TestCollections_LongPoll(t *testing.T) {
	t.Run("returns after change", func(t *testing.T) {
		f := setupCollections(t, 5*time.Second)

		done := make(chan api.ListResponse, 1)
		go func() {
			w := f.do(http.MethodGet, "/api/v1/collections/products?wait=5s&rev=0", "")
			var resp api.ListResponse
			_ = json.NewDecoder(w.Body).Decode(&resp)
			done <- resp
		}()

		w := f.do(http.MethodPost, "/api/v1/collections/products", `{"name":"Drill","category":"Tools","price":99}`)
		require.Equal(t, http.StatusCreated, w.Code)

		select {
		case resp := <-done:
			assert.Equal(t, int64(1), resp.Revision)
			assert.Len(t, resp.Items, 1)
		case <-time.After(3 * time.Second):
			t.Fatal("long poll did not return after change")
		}
	})

	t.Run("stale revision returns immediately", func(t *testing.T) {
		f := setupCollections(t, 5*time.Second)
		f.do(http.MethodPost, "/api/v1/collections/products", `{"name":"Drill","category":"Tools","price":99}`)

		start := time.Now()
		resp := f.list(t, "/api/v1/collections/products?wait=5s&rev=0")
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, int64(1), resp.Revision)
	})

	t.Run("timeout returns snapshot", func(t *testing.T) {
		f := setupCollections(t, 5*time.Second)

		start := time.Now()
		resp := f.list(t, "/api/v1/collections/products?wait=50ms&rev=0")
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
		assert.Equal(t, int64(0), resp.Revision)
		assert.Empty(t, resp.Items)
	})

	t.Run("wait is capped", func(t *testing.T) {
		f := setupCollections(t, 30*time.Millisecond)

		start := time.Now()
		f.list(t, "/api/v1/collections/products?wait=1h&rev=0")
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("other collections do not wake waiter", func(t *testing.T) {
		f := setupCollections(t, 5*time.Second)
		changed := f.hub.Changed("products")

		f.do(http.MethodPost, "/api/v1/collections/categories", `{"name":"Paint","description":"Interior"}`)

		select {
		case <-changed:
			t.Fatal("products waiter woken by categories change")
		default:
		}
	})
}

func TestCollections_LongPollBadParams(t *testing.T) {
	f := setupCollections(t, time.Second)

	for _, target := range []string{
		"/api/v1/collections/products?wait=soon&rev=0",
		"/api/v1/collections/products?wait=-1s&rev=0",
		"/api/v1/collections/products?wait=1s",
		"/api/v1/collections/products?wait=1s&rev=x",
	} {
		w := f.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, CodeBadRequest, errorCode(t, w), target)
	}
}

func TestCollections_TooLarge(t *testing.T) {
	f := setupCollections(t, time.Second)

	body := `{"name":"` + strings.Repeat("a", MaxDocumentSize) + `","category":"Tools","price":1}`
	w := f.do(http.MethodPost, "/api/v1/collections/products", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, CodeTooLarge, errorCode(t, w))
}
