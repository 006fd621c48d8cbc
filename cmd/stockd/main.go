// stockd serves the consumable inventory API from a local SQLite catalog.
// It is the development backend for the stocktrack client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocktrack/stocktrack/internal/backend"
	"github.com/stocktrack/stocktrack/internal/config"
	"github.com/stocktrack/stocktrack/internal/database"
	"github.com/stocktrack/stocktrack/internal/database/seed"
	"github.com/stocktrack/stocktrack/internal/services/stock"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		migrateOnly = flag.Bool("migrate-only", false, "Run migrations and exit")
		noSeed      = flag.Bool("no-seed", false, "Do not seed an empty catalog")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("stockd version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *migrateOnly, !*noSeed, *debugMode); err != nil {
		slog.Error("stockd error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, migrateOnly, allowSeed, debugMode bool) error {
	cfg, cfgPath, err := config.Load(configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logLevel := slog.LevelInfo
	if debugMode || cfg.Logging.Level == config.LogLevelDebug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("stockd starting",
		"version", Version,
		"config_path", cfgPath,
	)

	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("ensuring data directory: %w", err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	svc := stock.NewService(db)

	if allowSeed && cfg.Backend.Seed {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM consumables").Scan(&count); err != nil {
			return fmt.Errorf("counting consumables: %w", err)
		}
		if count == 0 {
			if err := seed.NewGenerator(svc, seed.DefaultConfig()).Generate(ctx); err != nil {
				return fmt.Errorf("generating seed data: %w", err)
			}
		} else {
			slog.Debug("catalog not empty, skipping seed", "count", count)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Backend.Addr,
		Handler:           backend.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Backend.Addr, "database", db.Path())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	slog.Info("stockd shutdown complete")
	return nil
}
