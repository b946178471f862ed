package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/storekeeper/internal/server/blob"
)

// BlobsHandler загрузка, удаление и раздача файлов (изображения товаров, PDF книг)
type BlobsHandler struct {
	logger *slog.Logger
	store  *blob.Store
	files  http.Handler
}

func NewBlobsHandler(logger *slog.Logger, store *blob.Store) *BlobsHandler {
	return &BlobsHandler{
		logger: logger,
		store:  store,
		files:  http.StripPrefix(strings.TrimSuffix(blob.URLPrefix, "/"), http.FileServer(http.Dir(store.Dir()))),
	}
}

// Put обрабатывает PUT /api/v1/blobs/{path...}
func (h *BlobsHandler) Put(w http.ResponseWriter, r *http.Request) {
	p := chi.URLParam(r, "*")

	limit := h.store.MaxSize()
	var body io.Reader = r.Body
	if limit > 0 {
		body = http.MaxBytesReader(w, r.Body, limit)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "file is too large")
			return
		}
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "failed to read request body")
		return
	}

	resp, err := h.store.Put(r.Context(), p, data, r.Header.Get("Content-Type"))
	if err != nil {
		h.writeStoreError(w, p, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, resp)
}

// Delete обрабатывает DELETE /api/v1/blobs/{path...}
func (h *BlobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := chi.URLParam(r, "*")
	if err := h.store.Delete(r.Context(), p); err != nil {
		h.writeStoreError(w, p, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Serve обрабатывает публичный GET /blobs/{path...}. Листинг каталогов не отдается.
func (h *BlobsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	p := chi.URLParam(r, "*")
	if _, err := blob.CleanPath(p); err != nil || strings.HasSuffix(p, "/") {
		http.NotFound(w, r)
		return
	}
	h.files.ServeHTTP(w, r)
}

func (h *BlobsHandler) writeStoreError(w http.ResponseWriter, p string, err error) {
	switch {
	case errors.Is(err, blob.ErrInvalidPath):
		WriteError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, blob.ErrTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, err.Error())
	case errors.Is(err, blob.ErrInvalidPDF):
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, blob.ErrNotFound):
		WriteError(w, http.StatusNotFound, CodeNotFound, "file "+p+" not found")
	default:
		h.logger.Error("Blob operation failed", "path", p, "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}
