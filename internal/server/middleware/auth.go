package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/storekeeper/internal/server/handlers"
)

// AuthMiddleware проверяет bearer-токен и кладет его субъект в контекст
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				handlers.WriteError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				logger.Warn("Invalid Authorization header format")
				handlers.WriteError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid token format")
				return
			}

			claims, err := handlers.ValidateToken(jwtConfig, strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				handlers.WriteError(w, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid token")
				return
			}

			var expiresAt time.Time
			if claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
			ctx := handlers.WithSubject(r.Context(), claims.Subject, expiresAt)

			logger.Debug("Request authenticated", "subject", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
