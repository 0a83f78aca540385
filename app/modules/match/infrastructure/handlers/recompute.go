package matchhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	"github.com/clearwater-cup/matchplay/internal/attr"
)

// HandleHoleScoreEntered stores the entered hole and publishes the rederived
// state: a status update always, a result update only when the stored result
// actually changed.
func (h *MatchHandlers) HandleHoleScoreEntered(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleHoleScoreEntered",
		&matchevents.HoleScoreEnteredPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			enteredPayload := payload.(*matchevents.HoleScoreEnteredPayloadV1)

			h.logger.InfoContext(ctx, "Received HoleScoreEntered event",
				attr.CorrelationIDFromMsg(msg),
				attr.String("match_id", enteredPayload.MatchID),
				attr.Int("hole_number", enteredPayload.HoleNumber),
			)

			result, err := h.matchService.EnterHoleScore(ctx, enteredPayload.MatchID, enteredPayload.HoleNumber, enteredPayload.Entry)
			if err != nil {
				return nil, err
			}

			return h.recomputeResultMessages(ctx, msg, result)
		},
	)

	return wrappedHandler(msg)
}

// HandleMatchRecomputeRequest rederives a match with no data change. Safe to
// deliver redundantly; an unchanged result publishes no result event.
func (h *MatchHandlers) HandleMatchRecomputeRequest(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleMatchRecomputeRequest",
		&matchevents.MatchRecomputeRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			requestPayload := payload.(*matchevents.MatchRecomputeRequestedPayloadV1)

			result, err := h.matchService.RecomputeMatch(ctx, requestPayload.MatchID)
			if err != nil {
				return nil, err
			}

			return h.recomputeResultMessages(ctx, msg, result)
		},
	)

	return wrappedHandler(msg)
}

// recomputeResultMessages converts a service result into outgoing messages.
func (h *MatchHandlers) recomputeResultMessages(ctx context.Context, msg *message.Message, result matchservice.MatchOperationResult) ([]*message.Message, error) {
	if result.Failure != nil {
		failureMsg, err := h.helpers.CreateResultMessage(msg, result.Failure, matchevents.MatchRecomputeFailedV1)
		if err != nil {
			return nil, err
		}
		return []*message.Message{failureMsg}, nil
	}

	recomputed := result.Success

	statusMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchStatusUpdatedPayloadV1{
		MatchID: recomputed.MatchID,
		RoundID: recomputed.RoundID,
		Format:  recomputed.Format,
		Status:  recomputed.Status,
	}, matchevents.MatchStatusUpdatedV1)
	if err != nil {
		return nil, err
	}

	messages := []*message.Message{statusMsg}

	if recomputed.ResultChanged {
		resultMsg, err := h.helpers.CreateResultMessage(msg, &matchevents.MatchResultUpdatedPayloadV1{
			MatchID: recomputed.MatchID,
			RoundID: recomputed.RoundID,
			Format:  recomputed.Format,
			Result:  recomputed.Result,
		}, matchevents.MatchResultUpdatedV1)
		if err != nil {
			return nil, err
		}
		messages = append(messages, resultMsg)

		h.logger.InfoContext(ctx, "Match result changed",
			attr.CorrelationIDFromMsg(msg),
			attr.String("match_id", recomputed.MatchID),
			attr.String("winner", string(recomputed.Result.Winner)),
			attr.Bool("closed", recomputed.Result.Closed),
		)
	}

	return messages, nil
}
