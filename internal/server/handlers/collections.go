package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/storekeeper/internal/server/notify"
	"github.com/iudanet/storekeeper/internal/server/storage"
	"github.com/iudanet/storekeeper/internal/validation"
	"github.com/iudanet/storekeeper/pkg/api"
)

// MaxDocumentSize предел тела запроса с документом
const MaxDocumentSize = 1 << 20

// CollectionsHandler CRUD и long-poll подписка на коллекции документов
type CollectionsHandler struct {
	logger      *slog.Logger
	storage     storage.DocumentStorage
	notifier    notify.Notifier
	collections map[string]Collection
	newID       func() string
	maxWait     time.Duration
}

// NewCollectionsHandler создает handler; maxWait ограничивает параметр wait
func NewCollectionsHandler(logger *slog.Logger, store storage.DocumentStorage, notifier notify.Notifier, collections map[string]Collection, maxWait time.Duration) *CollectionsHandler {
	return &CollectionsHandler{
		logger:      logger,
		storage:     store,
		notifier:    notifier,
		collections: collections,
		newID:       func() string { return uuid.Must(uuid.NewV7()).String() },
		maxWait:     maxWait,
	}
}

// Routes монтируется на /api/v1/collections
func (h *CollectionsHandler) Routes(r chi.Router) {
	r.Route("/{collection}", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *CollectionsHandler) collection(w http.ResponseWriter, r *http.Request) (Collection, bool) {
	name := chi.URLParam(r, "collection")
	c, ok := h.collections[name]
	if !ok {
		WriteError(w, http.StatusNotFound, CodeUnknownCollection, "unknown collection "+strconv.Quote(name))
		return Collection{}, false
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("storekeeper.collection", name))
	return c, true
}

// List обрабатывает GET /api/v1/collections/{collection}[?wait=30s&rev=N].
// С параметром wait запрос ждет, пока ревизия коллекции не отличается от rev
// (не дольше wait), и возвращает снимок.
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	q := r.URL.Query()
	if waitStr := q.Get("wait"); waitStr != "" {
		wait, err := time.ParseDuration(waitStr)
		if err != nil || wait < 0 {
			WriteError(w, http.StatusBadRequest, CodeBadRequest, "invalid wait parameter")
			return
		}
		since, err := strconv.ParseInt(q.Get("rev"), 10, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, CodeBadRequest, "invalid rev parameter")
			return
		}

		if err := h.waitForChange(ctx, c.Name, since, min(wait, h.maxWait)); err != nil {
			if ctx.Err() != nil {
				h.logger.Debug("Client left while waiting", "collection", c.Name)
				return
			}
			h.internalError(w, "Failed to read revision", c.Name, err)
			return
		}
	}

	docs, rev, err := h.storage.List(ctx, c.Name)
	if err != nil {
		h.internalError(w, "Failed to list documents", c.Name, err)
		return
	}

	items := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.Body)
	}

	writeJSON(w, h.logger, http.StatusOK, api.ListResponse{Items: items, Revision: rev})
}

func (h *CollectionsHandler) waitForChange(ctx context.Context, collection string, since int64, wait time.Duration) error {
	changed := h.notifier.Changed(collection)

	rev, err := h.storage.Revision(ctx, collection)
	if err != nil {
		return err
	}
	if rev != since || wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-changed:
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Get обрабатывает GET /api/v1/collections/{collection}/{id}
func (h *CollectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	doc, err := h.storage.Get(r.Context(), c.Name, id)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			WriteError(w, http.StatusNotFound, CodeNotFound, "document "+id+" not found")
			return
		}
		h.internalError(w, "Failed to get document", c.Name, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

// Create обрабатывает POST /api/v1/collections/{collection}
func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	id := h.newID()
	body, ok := h.prepare(w, r, c, id)
	if !ok {
		return
	}

	rev, err := h.storage.Create(ctx, &storage.Document{Collection: c.Name, ID: id, Body: body})
	if err != nil {
		if errors.Is(err, storage.ErrEntryExists) {
			WriteError(w, http.StatusConflict, CodeConflict, "document "+id+" already exists")
			return
		}
		h.internalError(w, "Failed to create document", c.Name, err)
		return
	}

	h.changed(ctx, c.Name)
	h.logger.Info("Document created", "collection", c.Name, "id", id, "revision", rev)
	writeJSON(w, h.logger, http.StatusCreated, api.CreateResponse{ID: id})
}

// Update обрабатывает PUT /api/v1/collections/{collection}/{id}
func (h *CollectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	body, ok := h.prepare(w, r, c, id)
	if !ok {
		return
	}

	rev, err := h.storage.Update(ctx, &storage.Document{Collection: c.Name, ID: id, Body: body})
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			WriteError(w, http.StatusNotFound, CodeNotFound, "document "+id+" not found")
			return
		}
		h.internalError(w, "Failed to update document", c.Name, err)
		return
	}

	h.changed(ctx, c.Name)
	h.logger.Info("Document updated", "collection", c.Name, "id", id, "revision", rev)
	w.WriteHeader(http.StatusNoContent)
}

// Delete обрабатывает DELETE /api/v1/collections/{collection}/{id}
func (h *CollectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	rev, err := h.storage.Delete(ctx, c.Name, id)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			WriteError(w, http.StatusNotFound, CodeNotFound, "document "+id+" not found")
			return
		}
		h.internalError(w, "Failed to delete document", c.Name, err)
		return
	}

	h.changed(ctx, c.Name)
	h.logger.Info("Document deleted", "collection", c.Name, "id", id, "revision", rev)
	w.WriteHeader(http.StatusNoContent)
}

// prepare читает и проверяет тело; при ошибке ответ уже отправлен
func (h *CollectionsHandler) prepare(w http.ResponseWriter, r *http.Request, c Collection, id string) (json.RawMessage, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "document is too large")
			return nil, false
		}
		WriteError(w, http.StatusBadRequest, CodeBadRequest, "failed to read request body")
		return nil, false
	}

	body, err := c.Prepare(raw, id)
	if err != nil {
		var malformed *errMalformedBody
		switch {
		case errors.As(err, &malformed):
			h.logger.Warn("Malformed document", "collection", c.Name, "error", err)
			WriteError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		case validation.IsValidationError(err):
			WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		default:
			h.internalError(w, "Failed to prepare document", c.Name, err)
		}
		return nil, false
	}
	return body, true
}

// changed будит подписчиков; ошибка рассылки не отменяет записанное изменение
func (h *CollectionsHandler) changed(ctx context.Context, collection string) {
	if err := h.notifier.Publish(context.WithoutCancel(ctx), collection); err != nil {
		h.logger.Warn("Failed to publish change", "collection", collection, "error", err)
	}
}

func (h *CollectionsHandler) internalError(w http.ResponseWriter, msg, collection string, err error) {
	h.logger.Error(msg, "collection", collection, "error", err)
	WriteError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}
