package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer издатель токенов API
const TokenIssuer = "storekeeper"

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret   []byte
	TokenTTL time.Duration // 0 - токен без срока действия
}

// Enabled авторизация включена, если задан секрет
func (c JWTConfig) Enabled() bool {
	return len(c.Secret) > 0
}

// GenerateToken создает токен API для субъекта (пользователь, устройство)
func GenerateToken(cfg JWTConfig, subject string, now time.Time) (string, time.Time, error) {
	if !cfg.Enabled() {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}
	if subject == "" {
		return "", time.Time{}, errors.New("token subject is required")
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    TokenIssuer,
	}
	var expiresAt time.Time
	if cfg.TokenTTL > 0 {
		expiresAt = now.Add(cfg.TokenTTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken валидирует и парсит токен API
func ValidateToken(cfg JWTConfig, tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithIssuer(TokenIssuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
