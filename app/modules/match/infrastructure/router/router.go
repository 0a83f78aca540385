// Package matchrouter wires the match module's handlers into a watermill router.
package matchrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	matchhandlers "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/handlers"
	"github.com/clearwater-cup/matchplay/config"
	"github.com/clearwater-cup/matchplay/internal/attr"
	"github.com/clearwater-cup/matchplay/internal/eventbus"
	"github.com/clearwater-cup/matchplay/internal/metrics/matchmetrics"
	"github.com/clearwater-cup/matchplay/internal/observability"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// MatchRouter routes match events to their handlers.
type MatchRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         eventbus.EventBus
	publisher          eventbus.EventBus
	config             *config.Config
	helper             utils.Helpers
	tracer             trace.Tracer
	middlewareHelper   utils.MiddlewareHelpers
	metricsBuilder     *metrics.PrometheusMetricsBuilder
	prometheusRegistry *prometheus.Registry
	metricsEnabled     bool
}

// NewMatchRouter creates a new MatchRouter.
func NewMatchRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *MatchRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &MatchRouter{
		logger:             logger,
		Router:             router,
		subscriber:         subscriber,
		publisher:          publisher,
		config:             config,
		helper:             helper,
		tracer:             tracer,
		middlewareHelper:   utils.NewMiddlewareHelper(),
		metricsBuilder:     metricsBuilder,
		prometheusRegistry: prometheusRegistry,
		metricsEnabled:     prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds the module middleware and registers the match handlers on the
// router held by the MatchRouter.
func (r *MatchRouter) Configure(routerCtx context.Context, matchService matchservice.Service, matchMetrics matchmetrics.MatchMetrics) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware - either in test environment or metrics not configured")
	}

	handlers := matchhandlers.NewMatchHandlers(matchService, r.logger, r.tracer, r.helper, matchMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.middlewareHelper.CommonMetadataMiddleware("match"),
		r.middlewareHelper.RoutingMetadataMiddleware(),
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
		observability.TraceHandler(r.tracer),
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers using V1 versioned event constants.
func (r *MatchRouter) RegisterHandlers(ctx context.Context, handlers matchhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		matchevents.HoleScoreEnteredV1:        handlers.HandleHoleScoreEntered,
		matchevents.MatchRecomputeRequestedV1: handlers.HandleMatchRecomputeRequest,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("match.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message", attr.String("message_id", msg.UUID), attr.Any("error", err))
					return nil, err
				}
				for _, m := range messages {
					publishTopic := r.getPublishTopic(handlerName, m)

					if publishTopic == "" {
						r.logger.Error("router failed to resolve publish topic - MESSAGE DROPPED",
							attr.String("handler", handlerName),
							attr.String("msg_uuid", m.UUID),
							attr.String("correlation_id", m.Metadata.Get("correlation_id")),
						)
						continue
					}

					r.logger.InfoContext(ctx, "publishing message",
						attr.String("topic", publishTopic),
						attr.String("handler", handlerName),
						attr.String("correlation_id", m.Metadata.Get("correlation_id")),
					)

					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *MatchRouter) Close() error {
	return r.Router.Close()
}

// getPublishTopic resolves the topic to publish for a given handler's returned
// message. Both match handlers emit a mix of status, result, and failure
// topics, so resolution always comes from metadata.
func (r *MatchRouter) getPublishTopic(handlerName string, msg *message.Message) string {
	switch handlerName {
	case "match." + matchevents.HoleScoreEnteredV1,
		"match." + matchevents.MatchRecomputeRequestedV1:
		return msg.Metadata.Get("topic")
	default:
		r.logger.Warn("unknown handler in topic resolution",
			attr.String("handler", handlerName),
		)
		return msg.Metadata.Get("topic")
	}
}
