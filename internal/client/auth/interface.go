package auth

import (
	"context"

	"github.com/iudanet/storekeeper/internal/client/storage"
	pkgapi "github.com/iudanet/storekeeper/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service управляет сохраненным bearer токеном клиента
type Service interface {
	// Login разбирает токен, при verify проверяет его на сервере и сохраняет локально
	Login(ctx context.Context, token string, verify bool) (*storage.AuthData, error)

	// Restore подставляет сохраненный токен в API клиент.
	// Возвращает false, если токена нет или он истек.
	Restore(ctx context.Context) (bool, error)

	// Current возвращает сохраненные данные авторизации
	Current(ctx context.Context) (*storage.AuthData, error)

	// Logout удаляет токен локально
	Logout(ctx context.Context) error
}

//go:generate moq -out verifier_mock.go . Verifier

// Verifier проверка токена на сервере (api.Client)
type Verifier interface {
	SetToken(token string)
	WhoAmI(ctx context.Context) (*pkgapi.WhoAmIResponse, error)
}
