// stocktrack is the terminal client for the consumable inventory service.
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

	"github.com/stocktrack/stocktrack/internal/backend"
	"github.com/stocktrack/stocktrack/internal/client"
	"github.com/stocktrack/stocktrack/internal/config"
	"github.com/stocktrack/stocktrack/internal/database"
	"github.com/stocktrack/stocktrack/internal/database/seed"
	"github.com/stocktrack/stocktrack/internal/export"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/services/inventory"
	"github.com/stocktrack/stocktrack/internal/services/stock"
	"github.com/stocktrack/stocktrack/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	configPath string
	debug      bool
	demo       bool
	exportPath string
	template   bool
}

func main() {
	var opts options
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.demo, "demo", false, "Run against an in-process backend with demo data")
	flag.StringVar(&opts.exportPath, "export", "", "Write the unfiltered inventory to `file` (.xlsx or .html) and exit")
	flag.BoolVar(&opts.template, "template", false, "Download the import template and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("stocktrack version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("stocktrack starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	if opts.demo {
		stop, err := startDemoBackend(ctx, cfg)
		if err != nil {
			return fmt.Errorf("starting demo backend: %w", err)
		}
		defer stop()
	}

	api := client.New(cfg.Server)

	switch {
	case opts.exportPath != "":
		return exportSnapshot(ctx, cfg, api, opts.exportPath)
	case opts.template:
		return saveTemplate(ctx, cfg, api)
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI", "base_url", api.BaseURL())
	if err := tui.Run(ctx, api, cfg); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("stocktrack shutdown complete")
	return nil
}

// setupLogging installs the default logger. Logs go to the configured file
// as JSON so they never draw over the TUI; without a file they go to stderr.
func setupLogging(cfg *config.Config, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if logPath == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return func() {}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})))
	return func() { logFile.Close() }, nil
}

// startDemoBackend serves a seeded in-memory catalog on a loopback port and
// points the client configuration at it.
func startDemoBackend(ctx context.Context, cfg *config.Config) (func(), error) {
	db, err := database.NewInMemory()
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	svc := stock.NewService(db)
	if err := seed.NewGenerator(svc, seed.DefaultConfig()).Generate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("generating seed data: %w", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		db.Close()
		return nil, err
	}

	srv := &http.Server{
		Handler:           backend.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("demo backend stopped", "error", err)
		}
	}()

	cfg.Server.BaseURL = "http://" + ln.Addr().String()
	slog.Info("demo backend listening", "addr", ln.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("demo backend shutdown", "error", err)
		}
		db.Close()
	}, nil
}

func exportSnapshot(ctx context.Context, cfg *config.Config, api *client.Client, name string) error {
	ctx, cancel := cfg.Server.RequestContext(ctx)
	defer cancel()

	snap, err := inventory.NewService(api).Load(ctx, models.FilterCriteria{})
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}

	path, err := config.ExportPath(cfg, name)
	if err != nil {
		return err
	}
	if err := export.WriteFile(path, snap.Result); err != nil {
		return fmt.Errorf("exporting inventory: %w", err)
	}

	fmt.Printf("Exported %d items to %s\n", len(snap.Result.Items), path)
	return nil
}

func saveTemplate(ctx context.Context, cfg *config.Config, api *client.Client) error {
	ctx, cancel := cfg.Server.RequestContext(ctx)
	defer cancel()

	tpl := api.DownloadTemplate(ctx)
	path, err := config.ExportPath(cfg, tpl.Name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, tpl.Data, 0o644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}

	if tpl.Fallback {
		fmt.Printf("Template saved to %s (built-in copy)\n", path)
	} else {
		fmt.Printf("Template saved to %s\n", path)
	}
	return nil
}
