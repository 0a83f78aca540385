// Package app wires configuration, storage, the event bus, and the modules
// into one running service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/clearwater-cup/matchplay/app/modules/match"
	matchdb "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories"
	matchmigrations "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories/migrations"
	"github.com/clearwater-cup/matchplay/app/modules/simulation"
	simulationdb "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/repositories"
	simulationmigrations "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/repositories/migrations"
	"github.com/clearwater-cup/matchplay/app/modules/stats"
	statsdb "github.com/clearwater-cup/matchplay/app/modules/stats/infrastructure/repositories"
	statsmigrations "github.com/clearwater-cup/matchplay/app/modules/stats/infrastructure/repositories/migrations"
	"github.com/clearwater-cup/matchplay/config"
	"github.com/clearwater-cup/matchplay/internal/eventbus"
	"github.com/clearwater-cup/matchplay/internal/observability"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

// App bundles the running service.
type App struct {
	Config           *config.Config
	Observability    *observability.Observability
	DB               *bun.DB
	EventBus         eventbus.EventBus
	MatchModule      *match.Module
	StatsModule      *stats.Module
	SimulationModule *simulation.Module

	routers   []*message.Router
	opsServer *http.Server
	helpers   utils.Helpers
}

// NewApp builds and wires the whole service: database, migrations, event bus,
// and the three modules, each on its own router.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(config.ToObsConfig(cfg))
	logger := obs.Logger

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.NewNATSEventBus(cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	helpers := utils.NewHelpers()
	watermillLogger := watermill.NewSlogLogger(logger)

	matchRouter, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create match router: %w", err)
	}
	statsRouter, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats router: %w", err)
	}
	simulationRouter, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation router: %w", err)
	}

	matchModule, err := match.NewMatchModule(ctx, cfg, *obs, &matchdb.MatchDBImpl{DB: db}, db, bus, matchRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create match module: %w", err)
	}

	statsModule, err := stats.NewStatsModule(ctx, cfg, *obs, &statsdb.StatsDBImpl{DB: db}, db, bus, statsRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats module: %w", err)
	}

	simulationModule, err := simulation.NewSimulationModule(ctx, cfg, *obs, &simulationdb.SimulationDBImpl{DB: db}, db, bus, simulationRouter, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation module: %w", err)
	}

	app := &App{
		Config:           cfg,
		Observability:    obs,
		DB:               db,
		EventBus:         bus,
		MatchModule:      matchModule,
		StatsModule:      statsModule,
		SimulationModule: simulationModule,
		routers:          []*message.Router{matchRouter, statsRouter, simulationRouter},
		helpers:          helpers,
	}

	if cfg.Observability.MetricsAddress != "" {
		app.opsServer = newOpsServer(cfg.Observability.MetricsAddress, obs)
	}

	return app, nil
}

// Run starts the routers, the modules, and the ops server, and blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	for _, router := range a.routers {
		router := router
		go func() {
			if err := router.Run(ctx); err != nil {
				logger.Error("Router stopped with error", "error", err)
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go a.MatchModule.Run(ctx, &wg)
	go a.StatsModule.Run(ctx, &wg)
	go a.SimulationModule.Run(ctx, &wg)

	if a.opsServer != nil {
		go func() {
			logger.Info("Starting ops server", "address", a.opsServer.Addr)
			if err := a.opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Ops server stopped with error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

// Close shuts everything down in reverse dependency order.
func (a *App) Close() error {
	logger := a.Observability.Logger
	logger.Info("Shutting down application")

	if a.opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down ops server", "error", err)
		}
	}

	_ = a.MatchModule.Close()
	_ = a.StatsModule.Close()
	_ = a.SimulationModule.Close()

	for _, router := range a.routers {
		if err := router.Close(); err != nil {
			logger.Error("Failed to close router", "error", err)
		}
	}

	if closer, ok := a.EventBus.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
	}

	if err := a.DB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return err
	}

	logger.Info("Application shut down")
	return nil
}

// runMigrations applies every module's migration set.
func runMigrations(ctx context.Context, db *bun.DB) error {
	for _, migrations := range []*migrate.Migrations{
		matchmigrations.Migrations,
		statsmigrations.Migrations,
		simulationmigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, migrations)
		if err := migrator.Init(ctx); err != nil {
			return err
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// newOpsServer serves liveness and Prometheus metrics.
func newOpsServer(address string, obs *observability.Observability) *http.Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
