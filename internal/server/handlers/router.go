package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig зависимости HTTP API
type RouterConfig struct {
	Logger      *slog.Logger
	Health      *HealthHandler
	Collections *CollectionsHandler
	Blobs       *BlobsHandler
	// Auth проверяет токен; nil - API открыт (субъект anonymous)
	Auth func(http.Handler) http.Handler
	// Middlewares применяются ко всем маршрутам в заданном порядке
	Middlewares []func(http.Handler) http.Handler
}

// NewRouter собирает маршруты API:
//
//	GET    /api/v1/health
//	GET    /api/v1/whoami
//	GET    /api/v1/collections/{collection}[?wait=&rev=]
//	POST   /api/v1/collections/{collection}
//	GET    /api/v1/collections/{collection}/{id}
//	PUT    /api/v1/collections/{collection}/{id}
//	DELETE /api/v1/collections/{collection}/{id}
//	PUT    /api/v1/blobs/{path...}
//	DELETE /api/v1/blobs/{path...}
//	GET    /blobs/{path...}
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	for _, mw := range cfg.Middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/api/v1/health", cfg.Health.Health)
	r.Get("/blobs/*", cfg.Blobs.Serve)

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}
		r.Get("/api/v1/whoami", WhoAmI(cfg.Logger))
		r.Route("/api/v1/collections", cfg.Collections.Routes)
		r.Put("/api/v1/blobs/*", cfg.Blobs.Put)
		r.Delete("/api/v1/blobs/*", cfg.Blobs.Delete)
	})

	return r
}
