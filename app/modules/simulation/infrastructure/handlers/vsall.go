package simulationhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	simulationevents "github.com/clearwater-cup/matchplay/app/modules/simulation/events"
	"github.com/clearwater-cup/matchplay/internal/attr"
)

// HandleVsAllRequest recomputes one round's vs-all table on demand.
func (h *SimulationHandlers) HandleVsAllRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleVsAllRequest",
		&simulationevents.VsAllRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			requestPayload := payload.(*simulationevents.VsAllRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received VsAllRequested event",
				attr.CorrelationIDFromMsg(msg),
				attr.String("round_id", requestPayload.RoundID),
			)

			result, err := h.simulationService.ComputeVsAllForRound(ctx, requestPayload.RoundID)
			if err != nil {
				return nil, err
			}

			if result.Failure != nil {
				failureMsg, err := h.helpers.CreateResultMessage(msg, result.Failure, simulationevents.VsAllFailedV1)
				if err != nil {
					return nil, err
				}
				return []*message.Message{failureMsg}, nil
			}

			computedMsg, err := h.helpers.CreateResultMessage(msg, result.Success, simulationevents.VsAllComputedV1)
			if err != nil {
				return nil, err
			}
			return []*message.Message{computedMsg}, nil
		},
	)

	return wrappedHandler(msg)
}
