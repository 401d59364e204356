package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/Jojo-not/Ticketing/internal/api/http"
	"github.com/Jojo-not/Ticketing/internal/api/http/handlers"
	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/backend"
	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/events"
	"github.com/Jojo-not/Ticketing/internal/observability"
	"github.com/Jojo-not/Ticketing/internal/persistence"
	"github.com/Jojo-not/Ticketing/internal/repository"
	"github.com/Jojo-not/Ticketing/internal/service"
	"github.com/Jojo-not/Ticketing/internal/session"
	"github.com/Jojo-not/Ticketing/internal/web"
	"github.com/Jojo-not/Ticketing/internal/worker"
)

const sessionSweepInterval = time.Minute

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin console HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	viewState, checks, closeStore, err := openViewState(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics()
	renderer, err := web.NewRenderer(cfg.App.Name, cfg.App.Env == "development")
	if err != nil {
		return err
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(ctx, service.NewAuditService(dispatcher, logger, cfg.Audit))

	sessions := session.NewRegistry(cfg.Session.TTL(), logger)
	worker.StartSessionSweeper(ctx, sessions, sessionSweepInterval)

	app := httptransport.NewServer(httptransport.ServerDeps{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics,
		Renderer:   renderer,
		Backend:    backend.NewClient(cfg.Backend, logger, metrics),
		ViewState:  viewState,
		Dispatcher: dispatcher,
		Sessions:   sessions,
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		Checks:     checks,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("backend", cfg.Backend.BaseURL))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber listen: %w", err)
	case <-waitForShutdown(logger):
	}

	return app.Shutdown()
}

// openViewState connects the configured view-state store and returns the
// readiness checks that go with it.
func openViewState(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.ViewStateRepository, map[string]handlers.Pinger, func(), error) {
	pageTTL := cfg.ViewState.PageTTL()

	switch cfg.ViewState.Backend {
	case config.ViewStatePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := pg.Migrate(ctx, logger); err != nil {
				pg.Close()
				return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		repo := repository.NewPostgresViewStateRepository(pg.Pool, pageTTL)
		return repo, map[string]handlers.Pinger{"postgres": pg}, pg.Close, nil

	case config.ViewStateMemory:
		repo := repository.NewMemoryViewStateRepository(pageTTL)
		return repo, map[string]handlers.Pinger{"view_state": repo}, func() {}, nil

	default:
		rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
		repo := repository.NewRedisViewStateRepository(rdb.Client, pageTTL)
		return repo, map[string]handlers.Pinger{"redis": rdb}, rdb.Close, nil
	}
}

func waitForShutdown(logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		close(done)
	}()
	return done
}
