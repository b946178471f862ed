package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/storekeeper/internal/server/handlers"
)

// RateLimiter ограничивает число запросов на ключ (IP) в окне времени
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	cleanupC chan struct{}
	now      func() time.Time
	rate     int
	window   time.Duration
	mu       sync.RWMutex
	stopOnce sync.Once
}

type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter создает limiter: rate запросов за window на ключ
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		now:      time.Now,
		cleanupC: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет buckets, которые не использовались дольше двух окон
func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		b.mu.Lock()
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
		b.mu.Unlock()
	}
}

// Stop останавливает фоновую очистку; повторный вызов безопасен
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Allow расходует токен ключа; false - лимит окна исчерпан
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: rl.rate, lastRefill: rl.now()}
		rl.buckets[key] = b
	}
	rl.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	now := rl.now()
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// PathRateLimit отдельный лимит для путей с префиксом Prefix
type PathRateLimit struct {
	Prefix string
	Rate   int
	Window time.Duration
}

// PathRateLimiter выбирает limiter по самому длинному подходящему префиксу пути
type PathRateLimiter struct {
	logger   *slog.Logger
	fallback *RateLimiter
	prefixes []string
	limiters []*RateLimiter
}

// NewPathRateLimiter создает limiter с лимитами для префиксов и общим лимитом.
// Нулевой Rate отключает ограничение для своей группы путей.
func NewPathRateLimiter(limits []PathRateLimit, defaultRate int, defaultWindow time.Duration, logger *slog.Logger) *PathRateLimiter {
	pl := &PathRateLimiter{logger: logger}
	for _, limit := range limits {
		pl.prefixes = append(pl.prefixes, limit.Prefix)
		pl.limiters = append(pl.limiters, newOptionalLimiter(limit.Rate, limit.Window, logger))
	}
	pl.fallback = newOptionalLimiter(defaultRate, defaultWindow, logger)
	return pl
}

func newOptionalLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	if rate <= 0 {
		return nil
	}
	return NewRateLimiter(rate, window, logger)
}

func (pl *PathRateLimiter) limiterFor(path string) *RateLimiter {
	best := -1
	for i, prefix := range pl.prefixes {
		if strings.HasPrefix(path, prefix) && (best < 0 || len(prefix) > len(pl.prefixes[best])) {
			best = i
		}
	}
	if best < 0 {
		return pl.fallback
	}
	return pl.limiters[best]
}

// Middleware отвечает 429 при исчерпании лимита
func (pl *PathRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := pl.limiterFor(r.URL.Path)
		if limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !limiter.Allow(key) {
			pl.logger.Warn("Rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", "60")
			handlers.WriteError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Stop останавливает все limiters
func (pl *PathRateLimiter) Stop() {
	for _, l := range append(pl.limiters, pl.fallback) {
		if l != nil {
			l.Stop()
		}
	}
}

// getClientIP извлекает IP клиента с учетом X-Forwarded-For и X-Real-IP
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
