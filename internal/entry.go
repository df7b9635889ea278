// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/rolodex/internal/api"
	"github.com/starford/rolodex/internal/contactfile"
	"github.com/starford/rolodex/internal/index"
	"github.com/starford/rolodex/internal/logic"
	"github.com/starford/rolodex/internal/mcpserver"
	"github.com/starford/rolodex/internal/sse"
	"github.com/starford/rolodex/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// backend is the address book wired to its contacts directory and index.
type backend struct {
	store storage.Provider
	db    *index.DB
	mgr   *logic.Manager
}

func (b *backend) Close() error {
	return b.db.Close()
}

func newApplication(opts []Option) (*application, error) {
	app := &application{
		version: "dev",
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}

func openBackend(ctx context.Context, cfg *Config, logger *slog.Logger, extra ...logic.Option) (*backend, error) {
	store, err := storage.NewFS(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if dir := filepath.Dir(cfg.SQLite.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	opts := append([]logic.Option{
		logic.WithLogger(logger),
		logic.WithRemarks(cfg.Features.Remark),
	}, extra...)
	mgr := logic.NewManager(store, db, opts...)
	if err := mgr.Load(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	return &backend{store: store, db: db, mgr: mgr}, nil
}

// RunREPL reads command lines interactively until "exit" or end of input.
// Logs go to stderr so they do not interleave with command output.
func RunREPL(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config, os.Stderr)

	b, err := openBackend(ctx, app.config, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	c := &console{mgr: b.mgr, in: app.in, out: app.out}
	return c.loop(ctx)
}

// Exec runs a single command line and returns its failure, if any.
func Exec(ctx context.Context, line string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config, os.Stderr)

	b, err := openBackend(ctx, app.config, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	c := &console{mgr: b.mgr, in: app.in, out: app.out}
	_, err = c.execute(ctx, line)
	return err
}

// RunMCP serves the address book to MCP clients over stdio.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config, os.Stderr)

	b, err := openBackend(ctx, app.config, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	logger.Info("MCP server starting", slog.String("storage_dir", app.config.Storage.Dir))
	return mcpserver.New(b.mgr, app.version).ServeStdio()
}

// Run starts the HTTP server, SSE stream and contacts directory watcher.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("storage_dir", cfg.Storage.Dir),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Bool("remark_enabled", cfg.Features.Remark))

	// SSE broker.
	broker := sse.NewBroker(cfg.Events.ListThrottle)
	broker.SetKeepAlive(cfg.Events.KeepAlive)
	defer broker.Close()

	b, err := openBackend(ctx, cfg, logger, logic.WithChangeListener(func(changes []logic.Change) {
		for _, c := range changes {
			broker.PublishPersonEvent(c.Kind, sse.PersonRef{ID: c.Person.ID, Name: c.Person.Name})
		}
	}))
	if err != nil {
		return err
	}
	defer b.Close()

	r := newHTTPRouter(cfg, b.mgr, broker)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reindex external edits and refresh the address book.
	g.Go(func() error {
		err := index.Watch(gCtx, b.db, b.store, logger, watchPublisher(gCtx, b.mgr, broker, logger))
		if err != nil {
			return fmt.Errorf("watcher error: %w", err)
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

func newHTTPRouter(cfg *Config, mgr *logic.Manager, events http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", healthOK)
	r.Get("/health/ready", healthOK)

	r.Mount("/api", api.NewRouter(mgr, cfg.Auth.AuthEnabled(), cfg.Auth.Token, events))
	return r
}

func healthOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// watchPublisher refreshes the address book after an external file change
// and announces the change on the event stream.
func watchPublisher(ctx context.Context, mgr *logic.Manager, events personPublisher, logger *slog.Logger) index.EventCallback {
	return func(kind string, ref index.ContactRef) {
		if err := mgr.Reload(ctx); err != nil {
			logger.Warn("reload after file change failed",
				slog.String("path", ref.Path), slog.String("error", err.Error()))
		}
		id := ref.ID
		if id == "" {
			id = strings.TrimSuffix(ref.Path, contactfile.Ext)
		}
		events.PublishPersonEvent(kind, sse.PersonRef{ID: id, Name: ref.Name})
	}
}

type personPublisher interface {
	PublishPersonEvent(kind string, ref sse.PersonRef)
}
