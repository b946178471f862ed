package handlers

import (
	"context"
	"time"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// SubjectKey ключ субъекта токена в контексте
	SubjectKey contextKey = "subject"
	// ExpiresKey ключ срока действия токена в контексте
	ExpiresKey contextKey = "expires_at"
)

// WithSubject сохраняет данные проверенного токена в контексте
func WithSubject(ctx context.Context, subject string, expiresAt time.Time) context.Context {
	ctx = context.WithValue(ctx, SubjectKey, subject)
	return context.WithValue(ctx, ExpiresKey, expiresAt)
}

// GetSubject извлекает субъект токена из контекста запроса
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}

// GetExpiresAt извлекает срок действия токена (нулевое время - бессрочный)
func GetExpiresAt(ctx context.Context) time.Time {
	t, _ := ctx.Value(ExpiresKey).(time.Time)
	return t
}
