package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/storekeeper/pkg/api"
)

// Коды ошибок в api.ErrorResponse
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_failed"
	CodeNotFound          = "not_found"
	CodeUnknownCollection = "unknown_collection"
	CodeConflict          = "conflict"
	CodeUnauthorized      = "unauthorized"
	CodeTooLarge          = "too_large"
	CodeRateLimited       = "rate_limited"
	CodeInternal          = "internal_error"
)

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// WriteError отправляет ошибку в формате api.ErrorResponse
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}
