// Package match assembles the match module: repository, service, handlers, and
// router.
package match

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchdb "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories"
	matchrouter "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/router"
	"github.com/clearwater-cup/matchplay/config"
	"github.com/clearwater-cup/matchplay/internal/eventbus"
	"github.com/clearwater-cup/matchplay/internal/metrics/matchmetrics"
	"github.com/clearwater-cup/matchplay/internal/observability"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

// Module represents the match module.
type Module struct {
	EventBus      eventbus.EventBus
	MatchService  matchservice.Service
	MatchRouter   *matchrouter.MatchRouter
	config        *config.Config
	observability observability.Observability
	cancelFunc    context.CancelFunc
	helper        utils.Helpers
}

// NewMatchModule creates a new instance of the match module.
func NewMatchModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	repo matchdb.Repository,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "match.NewMatchModule called")

	var metrics matchmetrics.MatchMetrics = matchmetrics.NoOpMetrics{}
	if obs.Registry != nil {
		metrics = matchmetrics.NewPrometheusMetrics(obs.Registry)
	}

	matchService := matchservice.NewMatchService(repo, logger, metrics, tracer, db)

	matchRouter := matchrouter.NewMatchRouter(logger, router, eventBus, eventBus, cfg, helpers, tracer, obs.Registry)

	if err := matchRouter.Configure(ctx, matchService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure match router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		MatchService:  matchService,
		MatchRouter:   matchRouter,
		config:        cfg,
		observability: obs,
		helper:        helpers,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.InfoContext(ctx, "Starting match module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Match module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping match module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.observability.Logger.Info("Match module stopped")
	return nil
}
