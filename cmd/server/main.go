package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iudanet/storekeeper/internal/config"
	"github.com/iudanet/storekeeper/internal/server/blob"
	"github.com/iudanet/storekeeper/internal/server/handlers"
	"github.com/iudanet/storekeeper/internal/server/middleware"
	"github.com/iudanet/storekeeper/internal/server/notify"
	"github.com/iudanet/storekeeper/internal/server/storage/sqlite"
	"github.com/iudanet/storekeeper/internal/telemetry"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	showVersion := flag.Bool("version", false, "Show version information")
	issueToken := flag.String("issue-token", "", "Print an API token for the given subject and exit")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	jwtCfg := handlers.JWTConfig{Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL}
	if *issueToken != "" {
		token, expiresAt, err := handlers.GenerateToken(jwtCfg, *issueToken, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		if !expiresAt.IsZero() {
			fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
		}
		os.Exit(0)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, jwtCfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Server, jwtCfg handlers.JWTConfig, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Writer:         os.Stderr,
		ServiceName:    "storekeeper-server",
		ServiceVersion: Version,
		UseStdout:      cfg.TraceToStdout,
	})
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Error("Failed to flush traces", "error", err)
		}
	}()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	blobs, err := blob.New(cfg.BlobDir, cfg.PublicURL, cfg.MaxBlobSize, logger)
	if err != nil {
		return err
	}

	notifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewPathRateLimiter([]middleware.PathRateLimit{
		{Prefix: "/api/v1/blobs/", Rate: cfg.UploadRateLimit, Window: time.Minute},
		{Prefix: "/api/v1/health", Rate: 0, Window: time.Minute},
	}, cfg.RateLimit, time.Minute, logger)
	defer limiter.Stop()

	routerCfg := handlers.RouterConfig{
		Logger:      logger,
		Health:      handlers.NewHealthHandler(logger, store, Version),
		Collections: handlers.NewCollectionsHandler(logger, store, notifier, handlers.DefaultCollections(handlers.NewSanitizer()), cfg.MaxPollWait),
		Blobs:       handlers.NewBlobsHandler(logger, blobs),
		Middlewares: []func(http.Handler) http.Handler{
			middleware.RecoveryMiddleware(logger),
			middleware.LoggingWithSkip(logger, []string{"/api/v1/health"}),
			limiter.Middleware,
		},
	}
	if jwtCfg.Enabled() {
		routerCfg.Auth = middleware.AuthMiddleware(logger, jwtCfg)
	} else {
		logger.Warn("STOREKEEPER_JWT_SECRET is not set, API is open")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           otelhttp.NewHandler(handlers.NewRouter(routerCfg), "storekeeper"),
		ReadHeaderTimeout: 10 * time.Second,
		// long-poll держит ответ до MaxPollWait
		WriteTimeout: cfg.MaxPollWait + 30*time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Storekeeper server listening", "addr", cfg.Addr, "version", Version, "auth", jwtCfg.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

// newNotifier выбирает оповещения: через Redis для нескольких экземпляров
// сервера или в пределах процесса
func newNotifier(ctx context.Context, cfg *config.Server, logger *slog.Logger) (notify.Notifier, error) {
	if cfg.RedisURL == "" {
		return notify.NewHub(), nil
	}

	client, err := notify.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	context.AfterFunc(ctx, func() { _ = client.Close() })

	n := notify.NewRedis(client, notify.DefaultChannel, logger)
	go func() {
		if err := n.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Redis subscription stopped", "error", err)
		}
	}()
	logger.Info("Change notifications via Redis", "channel", notify.DefaultChannel)
	return n, nil
}

func printVersion() {
	fmt.Printf("Storekeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
