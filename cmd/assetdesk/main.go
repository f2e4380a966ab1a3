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

	"github.com/qtts/assetdesk/internal/api"
	"github.com/qtts/assetdesk/internal/config"
	"github.com/qtts/assetdesk/internal/db"
	"github.com/qtts/assetdesk/internal/events"
	"github.com/qtts/assetdesk/internal/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("assetdesk", flag.ContinueOnError)

	fs.StringVar(&cfg.DB, "db", cfg.DB, "")
	fs.StringVar(&cfg.DB, "d", cfg.DB, "")

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")

	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "")
	fs.StringVar(&cfg.StorageKey, "k", cfg.StorageKey, "")

	fs.DurationVar(&cfg.TokenTTL, "ttl", cfg.TokenTTL, "")

	var logOpts logOptions
	fs.StringVar(&logOpts.path, "log", cfg.Log, "")
	fs.StringVar(&logOpts.path, "l", cfg.Log, "")
	fs.BoolVar(&logOpts.json, "json", false, "")
	fs.BoolVar(&logOpts.verbose, "verbose", false, "")
	fs.BoolVar(&logOpts.verbose, "v", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: assetdesk [flags]

Flags override ASSETDESK_* environment variables and .env.

Flags:
  -d, -db <path>          SQLite database path (default: assetdesk.db)
  -a, -addr <host:port>   listen address (default: :8080)
  -k, -key <name>         storage key for the state blob (default: qtts-asset-storage)
      -ttl <duration>     API token lifetime (default: 24h)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -json               log as JSON
  -v, -verbose            log debug records
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("assetdesk stopped", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx := context.Background()

	database, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "path", cfg.DB)

	st, err := store.OpenState(ctx, database, cfg.StorageKey)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	loaded := st.State()
	slog.Info("state loaded",
		"key", cfg.StorageKey,
		"assets", len(loaded.Assets),
		"categories", len(loaded.Categories),
		"suppliers", len(loaded.Suppliers),
		"locations", len(loaded.Locations),
		"session", loaded.Session != nil,
	)

	persister := &store.Persister{DB: database, Key: cfg.StorageKey}
	detach := persister.Attach(st)
	defer detach()

	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	hub := events.NewHub(st)
	defer hub.Close()

	router := api.NewRouter(st, database, api.Options{
		JWTSecret: jwtSecret,
		TokenTTL:  cfg.TokenTTL,
		Events:    hub,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		hub.Close()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	persister.Save(st.State())
	slog.Info("server stopped, state saved")
	return nil
}
