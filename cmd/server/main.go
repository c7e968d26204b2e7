package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/p-n-ai/codelearn/internal/auth"
	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/httpapi"
	"github.com/p-n-ai/codelearn/internal/learn"
	"github.com/p-n-ai/codelearn/internal/platform/cache"
	"github.com/p-n-ai/codelearn/internal/platform/config"
	"github.com/p-n-ai/codelearn/internal/platform/database"
	"github.com/p-n-ai/codelearn/internal/platform/logger"
	"github.com/p-n-ai/codelearn/internal/progress"
)

func main() {
	// A missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer log.Sync()

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	catalog, err := content.LoadDir(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	handler, err := newHandler(cfg, catalog, b, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // the events stream is long-lived
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "backend", cfg.Progress.Backend, "content", catalog.Digest())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// backends are the progress store, event logger and readiness checks
// selected by LEARN_PROGRESS_BACKEND.
type backends struct {
	store   progress.Store
	events  progress.EventLogger
	checks  map[string]httpapi.HealthCheck
	closers []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{checks: map[string]httpapi.HealthCheck{}}

	switch cfg.Progress.Backend {
	case config.BackendMemory:
		b.store = progress.NewMemoryStore()
		b.events = progress.NopEventLogger{}

	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		if _, err := db.Migrate(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		store, err := progress.NewPostgresStore(db.Pool)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.store = store
		b.events = progress.NewPostgresEventLogger(db.Pool)
		b.checks["postgres"] = db.HealthCheck

	case config.BackendRedis:
		c, err := cache.New(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = c.Close() })
		store, err := progress.NewRedisStore(c.Client)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.store = store
		b.events = progress.NopEventLogger{}
		b.checks["redis"] = c.HealthCheck

	default:
		return nil, fmt.Errorf("unknown progress backend %q", cfg.Progress.Backend)
	}
	return b, nil
}

func newHandler(cfg *config.Config, catalog *content.Catalog, b *backends, log *logger.Logger) (http.Handler, error) {
	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTokenTTL)*time.Minute)
	if err != nil {
		return nil, err
	}

	hub := progress.NewHub(log)
	tracker := progress.NewTracker(progress.TrackerConfig{
		Catalog: catalog,
		Store:   b.store,
		Events:  b.events,
		Hub:     hub,
	})

	gin.SetMode(gin.ReleaseMode)
	return httpapi.NewRouter(httpapi.Deps{
		Service:     learn.NewService(catalog, tracker),
		Issuer:      issuer,
		Hub:         hub,
		Logger:      log,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Checks:      b.checks,
	}), nil
}
