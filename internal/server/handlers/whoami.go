package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/storekeeper/pkg/api"
)

// AnonymousSubject субъект запросов при выключенной авторизации
const AnonymousSubject = "anonymous"

// WhoAmI обрабатывает GET /api/v1/whoami
func WhoAmI(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := GetSubject(r.Context())
		if !ok {
			subject = AnonymousSubject
		}

		resp := api.WhoAmIResponse{Subject: subject}
		if exp := GetExpiresAt(r.Context()); !exp.IsZero() {
			resp.ExpiresAt = exp.Unix()
		}
		writeJSON(w, logger, http.StatusOK, resp)
	}
}
