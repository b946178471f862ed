package storage

import (
	"context"
)

//go:generate moq -out auth_mock.go . AuthStorage

// AuthStorage defines interface for storing the API bearer token on client
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a token exists and is not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents authentication information in storage.
// ExpiresAt is a unix timestamp taken from the token claims, 0 means no expiry.
type AuthData struct {
	Token     string `json:"token"`
	Subject   string `json:"subject"`
	ExpiresAt int64  `json:"expires_at"`
}
