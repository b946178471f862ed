// Package config загружает настройки сервера и клиента из окружения.
// Переменные читаются с префиксом STOREKEEPER, файл .env подхватывается при наличии.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix префикс переменных окружения
const Prefix = "STOREKEEPER"

// Server настройки сервера коллекций
type Server struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	DBPath          string        `envconfig:"DB_PATH" default:"storekeeper.db"`
	BlobDir         string        `envconfig:"BLOB_DIR" default:"blobs"`
	PublicURL       string        `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	JWTSecret       string        `envconfig:"JWT_SECRET"`
	RedisURL        string        `envconfig:"REDIS_URL"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	MaxPollWait     time.Duration `envconfig:"MAX_POLL_WAIT" default:"30s"`
	MaxBlobSize     int64         `envconfig:"MAX_BLOB_SIZE" default:"20971520"`
	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	// RateLimit и UploadRateLimit: запросов в минуту с одного IP, 0 - без ограничения
	RateLimit       int  `envconfig:"RATE_LIMIT" default:"120"`
	UploadRateLimit int  `envconfig:"UPLOAD_RATE_LIMIT" default:"20"`
	TraceToStdout   bool `envconfig:"TRACE_STDOUT" default:"false"`
}

// Client настройки CLI клиента
type Client struct {
	ServerURL      string        `envconfig:"SERVER_URL" default:"http://localhost:8080"`
	DBPath         string        `envconfig:"CLIENT_DB" default:"storekeeper-client.db"`
	GeminiAPIKey   string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel    string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"warn"`
	ExportDir      string        `envconfig:"EXPORT_DIR" default:"."`
	ProbeInterval  time.Duration `envconfig:"PROBE_INTERVAL" default:"5s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	PageSize       int           `envconfig:"PAGE_SIZE" default:"4"`
	Offline        bool          `envconfig:"OFFLINE" default:"false"`
	TraceToStdout  bool          `envconfig:"TRACE_STDOUT" default:"false"`
}

// LoadDotEnv загружает переменные из файлов (по умолчанию .env).
// Отсутствующий файл не ошибка, уже заданные переменные не перезаписываются.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadServer читает настройки сервера
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность значений
func (s *Server) Validate() error {
	if s.Addr == "" {
		return errors.New("config: empty listen address")
	}
	if s.MaxBlobSize <= 0 {
		return fmt.Errorf("config: invalid max blob size %d", s.MaxBlobSize)
	}
	if s.RateLimit < 0 || s.UploadRateLimit < 0 {
		return errors.New("config: rate limit must not be negative")
	}
	if s.MaxPollWait <= 0 {
		return fmt.Errorf("config: invalid max poll wait %s", s.MaxPollWait)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadClient читает настройки клиента
func LoadClient() (*Client, error) {
	var cfg Client
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность значений
func (c *Client) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("config: invalid page size %d", c.PageSize)
	}
	if c.ProbeInterval <= 0 {
		return fmt.Errorf("config: invalid probe interval %s", c.ProbeInterval)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel переводит имя уровня логирования в slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", name)
	}
	return level, nil
}
