package statshandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	statsevents "github.com/clearwater-cup/matchplay/app/modules/stats/events"
	"github.com/clearwater-cup/matchplay/internal/attr"
)

// HandleMatchResultUpdated rederives the per-player facts whenever a match's
// result changes. Result updates fire only on real changes, so this is the
// single trigger the stats module needs.
func (h *StatsHandlers) HandleMatchResultUpdated(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleMatchResultUpdated",
		&matchevents.MatchResultUpdatedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			updatedPayload := payload.(*matchevents.MatchResultUpdatedPayloadV1)

			h.logger.InfoContext(ctx, "Received MatchResultUpdated event",
				attr.CorrelationIDFromMsg(msg),
				attr.String("match_id", updatedPayload.MatchID),
				attr.String("winner", string(updatedPayload.Result.Winner)),
			)

			result, err := h.statsService.DeriveMatchFacts(ctx, updatedPayload.MatchID)
			if err != nil {
				return nil, err
			}

			if result.Failure != nil {
				failureMsg, err := h.helpers.CreateResultMessage(msg, result.Failure, statsevents.StatsDeriveFailedV1)
				if err != nil {
					return nil, err
				}
				return []*message.Message{failureMsg}, nil
			}

			computedMsg, err := h.helpers.CreateResultMessage(msg, result.Success, statsevents.PlayerMatchFactsComputedV1)
			if err != nil {
				return nil, err
			}
			return []*message.Message{computedMsg}, nil
		},
	)

	return wrappedHandler(msg)
}
