package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/storekeeper/internal/client/storage"
)

var (
	// ErrEmptyToken передан пустой токен
	ErrEmptyToken = errors.New("token is empty")
	// ErrMalformedToken токен не является JWT
	ErrMalformedToken = errors.New("malformed token")
	// ErrTokenExpired срок действия токена истек
	ErrTokenExpired = errors.New("token expired")
)

type service struct {
	verifier Verifier
	store    storage.AuthStorage
	logger   *slog.Logger
}

// NewService создает сервис авторизации
func NewService(verifier Verifier, store storage.AuthStorage, logger *slog.Logger) Service {
	return &service{
		verifier: verifier,
		store:    store,
		logger:   logger,
	}
}

// ParseToken извлекает subject и срок действия без проверки подписи.
// Подпись проверяет сервер.
func ParseToken(token string) (*storage.AuthData, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	data := &storage.AuthData{
		Token:   token,
		Subject: claims.Subject,
	}
	if claims.ExpiresAt != nil {
		data.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return data, nil
}

func (s *service) Login(ctx context.Context, token string, verify bool) (*storage.AuthData, error) {
	data, err := ParseToken(token)
	if err != nil {
		return nil, err
	}
	if data.ExpiresAt > 0 && time.Now().Unix() >= data.ExpiresAt {
		return nil, ErrTokenExpired
	}

	if verify {
		s.verifier.SetToken(data.Token)
		who, err := s.verifier.WhoAmI(ctx)
		if err != nil {
			s.verifier.SetToken("")
			return nil, fmt.Errorf("token rejected by server: %w", err)
		}
		if who.Subject != "" {
			data.Subject = who.Subject
		}
	}

	if err := s.store.SaveAuth(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}
	s.verifier.SetToken(data.Token)

	s.logger.Info("Token stored", "subject", data.Subject, "verified", verify)
	return data, nil
}

func (s *service) Restore(ctx context.Context) (bool, error) {
	ok, err := s.store.IsAuthenticated(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check authentication: %w", err)
	}
	if !ok {
		return false, nil
	}

	data, err := s.store.GetAuth(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get auth data: %w", err)
	}
	s.verifier.SetToken(data.Token)
	return true, nil
}

func (s *service) Current(ctx context.Context) (*storage.AuthData, error) {
	return s.store.GetAuth(ctx)
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	s.verifier.SetToken("")
	s.logger.Info("Logged out")
	return nil
}
