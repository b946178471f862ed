package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iudanet/storekeeper/pkg/api"
)

var (
	// ErrUnauthorized сервер отклонил токен (401)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound запись или файл не найдены (404)
	ErrNotFound = errors.New("not found")
)

// RemoteError ошибка, возвращенная сервером
type RemoteError struct {
	Code    string
	Message string
	Status  int
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// Temporary сообщает, имеет ли смысл повторить запрос позже
func (e *RemoteError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

func (e *RemoteError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Option настройка клиента
type Option func(*Client)

// WithTimeout задает таймаут HTTP запросов
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger задает логгер клиента
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithToken задает bearer токен
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	token      string
	mu         sync.RWMutex
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken задает bearer токен для последующих запросов ("" - без авторизации)
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping проверяет доступность сервера
func (c *Client) Ping(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// WhoAmI возвращает субъект текущего токена
func (c *Client) WhoAmI(ctx context.Context) (*api.WhoAmIResponse, error) {
	var resp api.WhoAmIResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/whoami", nil, &resp); err != nil {
		return nil, fmt.Errorf("whoami request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет JSON запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	return c.do(ctx, method, path, contentType, bodyReader, result)
}

// do выполняет HTTP запрос и декодирует JSON ответ в result
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remoteErr := &RemoteError{Status: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			remoteErr.Code = errResp.Error
			remoteErr.Message = errResp.Message
			if remoteErr.Message == "" {
				remoteErr.Message = errResp.Error
			}
		}
		c.logger.Debug("Server returned error", "method", method, "path", path, "status", resp.StatusCode)
		return remoteErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
