package matchhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	"github.com/clearwater-cup/matchplay/internal/metrics/matchmetrics"
	"github.com/clearwater-cup/matchplay/internal/results"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

// fakeMatchService returns canned results and records the calls it receives.
type fakeMatchService struct {
	result matchservice.MatchOperationResult
	err    error

	enteredMatchID string
	enteredHole    int
	recomputedID   string
}

func (f *fakeMatchService) EnterHoleScore(_ context.Context, matchID string, holeNumber int, _ matchtypes.HoleEntry) (matchservice.MatchOperationResult, error) {
	f.enteredMatchID = matchID
	f.enteredHole = holeNumber
	return f.result, f.err
}

func (f *fakeMatchService) RecomputeMatch(_ context.Context, matchID string) (matchservice.MatchOperationResult, error) {
	f.recomputedID = matchID
	return f.result, f.err
}

func newTestHandlers(service matchservice.Service) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMatchHandlers(service, logger, noop.NewTracerProvider().Tracer("test"), utils.NewHelpers(), matchmetrics.NoOpMetrics{})
}

func eventMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage("msg-1", data)
}

func successResult(resultChanged bool) matchservice.MatchOperationResult {
	return results.Success[matchevents.MatchRecomputedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](matchevents.MatchRecomputedPayloadV1{
		MatchID:       "match-1",
		RoundID:       "round-1",
		Format:        matchtypes.FormatSingles,
		Status:        matchtypes.MatchStatus{Thru: 3, Margin: 1},
		Result:        matchtypes.MatchResult{Winner: matchtypes.WinnerTeamA},
		ResultChanged: resultChanged,
	})
}

func TestHandleHoleScoreEntered_PublishesStatusAndResult(t *testing.T) {
	service := &fakeMatchService{result: successResult(true)}
	handlers := newTestHandlers(service)

	msg := eventMessage(t, matchevents.HoleScoreEnteredPayloadV1{MatchID: "match-1", HoleNumber: 3})
	out, err := handlers.HandleHoleScoreEntered(msg)
	require.NoError(t, err)

	assert.Equal(t, "match-1", service.enteredMatchID)
	assert.Equal(t, 3, service.enteredHole)

	require.Len(t, out, 2)
	assert.Equal(t, matchevents.MatchStatusUpdatedV1, out[0].Metadata.Get("topic"))
	assert.Equal(t, matchevents.MatchResultUpdatedV1, out[1].Metadata.Get("topic"))

	var statusPayload matchevents.MatchStatusUpdatedPayloadV1
	require.NoError(t, json.Unmarshal(out[0].Payload, &statusPayload))
	assert.Equal(t, "match-1", statusPayload.MatchID)
	assert.Equal(t, 3, statusPayload.Status.Thru)
}

func TestHandleHoleScoreEntered_UnchangedResultPublishesStatusOnly(t *testing.T) {
	service := &fakeMatchService{result: successResult(false)}
	handlers := newTestHandlers(service)

	msg := eventMessage(t, matchevents.HoleScoreEnteredPayloadV1{MatchID: "match-1", HoleNumber: 3})
	out, err := handlers.HandleHoleScoreEntered(msg)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, matchevents.MatchStatusUpdatedV1, out[0].Metadata.Get("topic"))
}

func TestHandleMatchRecomputeRequest_FailurePublishesFailedEvent(t *testing.T) {
	service := &fakeMatchService{
		result: results.Failure[matchevents.MatchRecomputedPayloadV1](matchevents.MatchRecomputeFailedPayloadV1{
			MatchID: "match-1",
			Reason:  "match not found",
		}),
	}
	handlers := newTestHandlers(service)

	msg := eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: "match-1"})
	out, err := handlers.HandleMatchRecomputeRequest(msg)
	require.NoError(t, err)

	assert.Equal(t, "match-1", service.recomputedID)
	require.Len(t, out, 1)
	assert.Equal(t, matchevents.MatchRecomputeFailedV1, out[0].Metadata.Get("topic"))

	var failedPayload matchevents.MatchRecomputeFailedPayloadV1
	require.NoError(t, json.Unmarshal(out[0].Payload, &failedPayload))
	assert.Equal(t, "match not found", failedPayload.Reason)
}

func TestHandleMatchRecomputeRequest_ServiceErrorNacks(t *testing.T) {
	service := &fakeMatchService{err: errors.New("database down")}
	handlers := newTestHandlers(service)

	msg := eventMessage(t, matchevents.MatchRecomputeRequestedPayloadV1{MatchID: "match-1"})
	out, err := handlers.HandleMatchRecomputeRequest(msg)
	require.Error(t, err)
	assert.Nil(t, out)
}

func TestHandleHoleScoreEntered_MalformedPayload(t *testing.T) {
	handlers := newTestHandlers(&fakeMatchService{})

	msg := message.NewMessage("msg-1", []byte("{not json"))
	out, err := handlers.HandleHoleScoreEntered(msg)
	require.Error(t, err)
	assert.Nil(t, out)
}
