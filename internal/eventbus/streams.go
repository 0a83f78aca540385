package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
)

// InitializeStreams creates the JetStream streams each module publishes on.
// Safe to call on every startup; existing streams are left alone.
func InitializeStreams(js jetstream.JetStream, logger *slog.Logger) error {
	streamConfigs := []jetstream.StreamConfig{
		{
			Name:     "match",
			Subjects: []string{"match.>"},
		},
		{
			Name:     "stats",
			Subjects: []string{"stats.>"},
		},
		{
			Name:     "simulation",
			Subjects: []string{"simulation.>"},
		},
	}

	for _, streamConfig := range streamConfigs {
		_, err := js.Stream(context.Background(), streamConfig.Name)
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			if _, err := js.CreateStream(context.Background(), streamConfig); err != nil {
				logger.Error("Failed to create JetStream stream", slog.String("stream", streamConfig.Name), slog.Any("error", err))
				return err
			}
			logger.Info("Created JetStream stream", slog.String("stream", streamConfig.Name))
		} else if err != nil {
			return fmt.Errorf("failed to check stream %s: %w", streamConfig.Name, err)
		}
	}
	return nil
}
