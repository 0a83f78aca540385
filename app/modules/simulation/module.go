// Package simulation assembles the simulation module: repository, service,
// handlers, and router.
package simulation

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	simulationservice "github.com/clearwater-cup/matchplay/app/modules/simulation/application"
	simulationdb "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/repositories"
	simulationrouter "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/router"
	"github.com/clearwater-cup/matchplay/config"
	"github.com/clearwater-cup/matchplay/internal/eventbus"
	"github.com/clearwater-cup/matchplay/internal/metrics/simulationmetrics"
	"github.com/clearwater-cup/matchplay/internal/observability"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

// Module represents the simulation module.
type Module struct {
	EventBus          eventbus.EventBus
	SimulationService simulationservice.Service
	SimulationRouter  *simulationrouter.SimulationRouter
	config            *config.Config
	observability     observability.Observability
	cancelFunc        context.CancelFunc
	helper            utils.Helpers
}

// NewSimulationModule creates a new instance of the simulation module.
func NewSimulationModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	repo simulationdb.Repository,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "simulation.NewSimulationModule called")

	var metrics simulationmetrics.SimulationMetrics = simulationmetrics.NoOpMetrics{}
	if obs.Registry != nil {
		metrics = simulationmetrics.NewPrometheusMetrics(obs.Registry)
	}

	simulationService := simulationservice.NewSimulationService(repo, logger, metrics, tracer, db)

	simulationRouter := simulationrouter.NewSimulationRouter(logger, router, eventBus, eventBus, cfg, helpers, tracer, obs.Registry)

	if err := simulationRouter.Configure(ctx, simulationService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure simulation router: %w", err)
	}

	return &Module{
		EventBus:          eventBus,
		SimulationService: simulationService,
		SimulationRouter:  simulationRouter,
		config:            cfg,
		observability:     obs,
		helper:            helpers,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.InfoContext(ctx, "Starting simulation module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Simulation module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping simulation module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.observability.Logger.Info("Simulation module stopped")
	return nil
}
