// Package stats assembles the stats module: repository, service, handlers,
// and router.
package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	statsservice "github.com/clearwater-cup/matchplay/app/modules/stats/application"
	statsdb "github.com/clearwater-cup/matchplay/app/modules/stats/infrastructure/repositories"
	statsrouter "github.com/clearwater-cup/matchplay/app/modules/stats/infrastructure/router"
	"github.com/clearwater-cup/matchplay/config"
	"github.com/clearwater-cup/matchplay/internal/eventbus"
	"github.com/clearwater-cup/matchplay/internal/metrics/statsmetrics"
	"github.com/clearwater-cup/matchplay/internal/observability"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

// Module represents the stats module.
type Module struct {
	EventBus      eventbus.EventBus
	StatsService  statsservice.Service
	StatsRouter   *statsrouter.StatsRouter
	config        *config.Config
	observability observability.Observability
	cancelFunc    context.CancelFunc
	helper        utils.Helpers
}

// NewStatsModule creates a new instance of the stats module.
func NewStatsModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	repo statsdb.Repository,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "stats.NewStatsModule called")

	var metrics statsmetrics.StatsMetrics = statsmetrics.NoOpMetrics{}
	if obs.Registry != nil {
		metrics = statsmetrics.NewPrometheusMetrics(obs.Registry)
	}

	statsService := statsservice.NewStatsService(repo, logger, metrics, tracer, db)

	statsRouter := statsrouter.NewStatsRouter(logger, router, eventBus, eventBus, cfg, helpers, tracer, obs.Registry)

	if err := statsRouter.Configure(ctx, statsService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure stats router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		StatsService:  statsService,
		StatsRouter:   statsRouter,
		config:        cfg,
		observability: obs,
		helper:        helpers,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.InfoContext(ctx, "Starting stats module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Stats module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping stats module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.observability.Logger.Info("Stats module stopped")
	return nil
}
