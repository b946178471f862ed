package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/storekeeper/internal/client/api"
	"github.com/iudanet/storekeeper/internal/client/auth"
	"github.com/iudanet/storekeeper/internal/client/chat"
	"github.com/iudanet/storekeeper/internal/client/cli"
	"github.com/iudanet/storekeeper/internal/client/connectivity"
	"github.com/iudanet/storekeeper/internal/client/iocli"
	"github.com/iudanet/storekeeper/internal/client/storage/boltdb"
	"github.com/iudanet/storekeeper/internal/client/sync"
	"github.com/iudanet/storekeeper/internal/clock"
	"github.com/iudanet/storekeeper/internal/config"
	"github.com/iudanet/storekeeper/internal/models"
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
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Глобальные флаги перекрывают окружение
	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local database")
	flag.BoolVar(&cfg.Offline, "offline", cfg.Offline, "Work from the local cache only")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, logger, flag.Args())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Client, logger *slog.Logger, args []string) int {
	io := iocli.NewStdio()

	// один узел на процесс: по node сопоставляются записи лога одного запуска
	clk := clock.New()
	logger = logger.With("node", clk.NodeID())

	if len(args) == 0 {
		cli.New(cli.Deps{IO: io}).PrintUsage()
		return 1
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		Writer:         os.Stderr,
		ServiceName:    "storekeeper-client",
		ServiceVersion: Version,
		UseStdout:      cfg.TraceToStdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init tracing: %v\n", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.ServerURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger),
	)

	authService := auth.NewService(apiClient, boltStorage, logger)
	if _, err := authService.Restore(ctx); err != nil {
		logger.Warn("failed to restore token", "error", err)
	}

	monitor := connectivity.NewMonitor(connectivity.NewState(false), apiClient, cfg.ProbeInterval, cfg.Offline, logger)
	if monitor.Check(ctx) && !cfg.Offline {
		logger.Info("server unreachable, working offline", "server", cfg.ServerURL)
	}

	var classifier chat.Classifier
	if cfg.GeminiAPIKey != "" {
		gc, err := chat.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("chat assistant disabled", "error", err)
		} else {
			classifier = gc
		}
	}

	c := cli.New(cli.Deps{
		IO:         io,
		Auth:       authService,
		Sync:       sync.NewService(boltStorage, boltStorage, boltStorage, logger),
		Monitor:    monitor,
		Blobs:      api.NewBlobStore(apiClient),
		Classifier: classifier,
		Products:   api.NewCollection[models.Product](apiClient, models.CollectionProducts),
		Categories: api.NewCollection[models.Category](apiClient, models.CollectionCategories),
		Books:      api.NewCollection[models.Book](apiClient, models.CollectionBooks),
		Chat:       api.NewCollection[models.ChatMessage](apiClient, models.CollectionChat),
		Clock:      clk,
		Logger:     logger,
		ServerURL:  cfg.ServerURL,
		ExportDir:  cfg.ExportDir,
		PageSize:   cfg.PageSize,
	})

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("Storekeeper Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
