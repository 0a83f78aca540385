package matchrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	"github.com/clearwater-cup/matchplay/config"
	"github.com/clearwater-cup/matchplay/internal/eventbus"
	"github.com/clearwater-cup/matchplay/internal/metrics/matchmetrics"
	"github.com/clearwater-cup/matchplay/internal/results"
	"github.com/clearwater-cup/matchplay/internal/utils"
)

type stubService struct{}

func (stubService) EnterHoleScore(_ context.Context, matchID string, _ int, _ matchtypes.HoleEntry) (matchservice.MatchOperationResult, error) {
	return results.Success[matchevents.MatchRecomputedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](matchevents.MatchRecomputedPayloadV1{
		MatchID:       matchID,
		RoundID:       "round-1",
		Format:        matchtypes.FormatSingles,
		Status:        matchtypes.MatchStatus{Thru: 1, Margin: 1},
		Result:        matchtypes.MatchResult{Winner: matchtypes.WinnerTeamA},
		ResultChanged: true,
	}), nil
}

func (stubService) RecomputeMatch(context.Context, string) (matchservice.MatchOperationResult, error) {
	return matchservice.MatchOperationResult{}, nil
}

// TestMatchRouter_EndToEnd runs the full routing path over the in-memory bus:
// an entered hole score comes in, a status update and a result update go out.
func TestMatchRouter_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewMemoryEventBus(logger)

	wmRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	require.NoError(t, err)

	router := NewMatchRouter(logger, wmRouter, bus, bus, &config.Config{}, utils.NewHelpers(), noop.NewTracerProvider().Tracer("test"), nil)
	require.NoError(t, router.Configure(ctx, stubService{}, matchmetrics.NoOpMetrics{}))

	statusMessages, err := bus.Subscribe(ctx, matchevents.MatchStatusUpdatedV1)
	require.NoError(t, err)
	resultMessages, err := bus.Subscribe(ctx, matchevents.MatchResultUpdatedV1)
	require.NoError(t, err)

	go func() {
		_ = wmRouter.Run(ctx)
	}()
	select {
	case <-wmRouter.Running():
	case <-ctx.Done():
		t.Fatal("router never started")
	}

	msg, err := utils.NewHelpers().CreateNewMessage(matchevents.HoleScoreEnteredPayloadV1{MatchID: "match-1", HoleNumber: 1}, matchevents.HoleScoreEnteredV1)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(matchevents.HoleScoreEnteredV1, msg))

	select {
	case statusMsg := <-statusMessages:
		statusMsg.Ack()
		var status matchevents.MatchStatusUpdatedPayloadV1
		require.NoError(t, json.Unmarshal(statusMsg.Payload, &status))
		assert.Equal(t, "match-1", status.MatchID)
		assert.Equal(t, 1, status.Status.Thru)
		assert.NotEmpty(t, statusMsg.Metadata.Get("correlation_id"))
	case <-ctx.Done():
		t.Fatal("no status update published")
	}

	select {
	case resultMsg := <-resultMessages:
		resultMsg.Ack()
		var result matchevents.MatchResultUpdatedPayloadV1
		require.NoError(t, json.Unmarshal(resultMsg.Payload, &result))
		assert.Equal(t, matchtypes.WinnerTeamA, result.Result.Winner)
	case <-ctx.Done():
		t.Fatal("no result update published")
	}

	require.NoError(t, router.Close())
}
