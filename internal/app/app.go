package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/fbsn11/team-management-app/internal/config"
	"github.com/fbsn11/team-management-app/internal/infrastructure/persistence"
	"github.com/fbsn11/team-management-app/internal/infrastructure/repository/memory"
	"github.com/fbsn11/team-management-app/internal/interfaces/httpapi"
	"github.com/fbsn11/team-management-app/internal/observability"
	idgen "github.com/fbsn11/team-management-app/internal/platform/id"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
	"github.com/fbsn11/team-management-app/internal/platform/resilience"
	"github.com/fbsn11/team-management-app/internal/usecase"
)

// App owns the HTTP server and everything that has to be released on
// shutdown.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	server      *http.Server
	kv          persistence.KVStore
	mirror      *persistence.Mirror
	unsubscribe func()
	hooks       []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	kv, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageDriver, err)
	}
	state, err := LoadState(ctx, cfg, kv, logger)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	mirror, err := persistence.NewMirror(kv, persistence.MirrorConfig{
		Workers: cfg.PersistWorkers,
		Timeout: cfg.PersistTimeout,
		Breaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PersistCircuitEnabled,
			FailureThreshold: cfg.PersistCircuitFailureCount,
			OpenTimeout:      cfg.PersistCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PersistCircuitHalfOpenMaxReq,
		},
	}, logger)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = observability.NewRegistry()
		if err := observability.RegisterMirror(registry, mirror.Stats); err != nil {
			_ = mirror.Close(ctx)
			_ = kv.Close()
			return nil, fmt.Errorf("register mirror metrics: %w", err)
		}
	}

	key := cfg.StorageKey
	state.SetPersister(func(doc memory.Document) {
		mirror.Save(key, doc)
	})

	teamRepo := memory.NewTeamRepository(state)
	playerRepo := memory.NewPlayerRepository(state)
	matchRepo := memory.NewMatchRepository(state)
	ids := idgen.NewUUIDGenerator()
	lineupRepo := memory.NewLineupRepository(state, ids)

	statsSvc := usecase.NewStatsService(lineupRepo, cfg.StatsCacheTTL, logger)
	unsubscribe := state.Subscribe(func(change memory.Change) {
		if change.Collection == memory.CollectionLineups {
			statsSvc.Refresh(context.Background(), change.MatchIDs...)
		}
	})

	handler := httpapi.NewHandler(
		usecase.NewTeamService(teamRepo, playerRepo, matchRepo, lineupRepo, catalog, ids, logger),
		usecase.NewPlayerService(teamRepo, playerRepo, matchRepo, ids, logger),
		usecase.NewMatchService(teamRepo, playerRepo, matchRepo, lineupRepo, catalog, ids, logger),
		usecase.NewLineupService(catalog, matchRepo, playerRepo, lineupRepo, ids, logger),
		statsSvc,
		catalog,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            registry,
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			ErrorLog:     zap.NewStdLog(logger.Zap()),
		},
		kv:          kv,
		mirror:      mirror,
		unsubscribe: unsubscribe,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Addr() string {
	return a.server.Addr
}

// OnShutdown registers fn to run alongside the store release in Shutdown.
func (a *App) OnShutdown(fn func(context.Context) error) {
	a.hooks = append(a.hooks, fn)
}

// Run serves HTTP until Shutdown is called.
func (a *App) Run() error {
	a.logger.Info("http server starting", "addr", a.server.Addr, "storage", a.cfg.StorageDriver)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for pending document writes and
// then releases the store and the registered hooks concurrently.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	a.unsubscribe()

	if err := a.mirror.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	stats := a.mirror.Stats()
	a.logger.Info("document mirror closed",
		"scheduled", stats.Scheduled,
		"written", stats.Written,
		"coalesced", stats.Coalesced,
		"failed", stats.Failed,
	)

	p := pool.New().WithErrors()
	p.Go(func() error {
		if err := a.kv.Close(); err != nil {
			return fmt.Errorf("close %s store: %w", a.cfg.StorageDriver, err)
		}
		return nil
	})
	for _, hook := range a.hooks {
		p.Go(func() error { return hook(ctx) })
	}
	if err := p.Wait(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
