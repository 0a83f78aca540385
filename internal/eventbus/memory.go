package eventbus

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewMemoryEventBus returns an in-process bus for tests and local development.
func NewMemoryEventBus(logger *slog.Logger) EventBus {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
			Persistent:          true,
		},
		watermill.NewSlogLogger(logger),
	)
}
