package utils

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// MiddlewareHelpers builds the router middleware shared across modules.
type MiddlewareHelpers interface {
	// CommonMetadataMiddleware stamps every handled message with the owning
	// domain and a handled-at timestamp.
	CommonMetadataMiddleware(domain string) message.HandlerMiddleware
	// RoutingMetadataMiddleware propagates the routing topic metadata from the
	// incoming message to every produced message that has none of its own.
	RoutingMetadataMiddleware() message.HandlerMiddleware
}

type middlewareHelpers struct{}

// NewMiddlewareHelper returns the standard MiddlewareHelpers implementation.
func NewMiddlewareHelper() MiddlewareHelpers {
	return middlewareHelpers{}
}

func (middlewareHelpers) CommonMetadataMiddleware(domain string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			msg.Metadata.Set("domain", domain)
			produced, err := h(msg)
			for _, m := range produced {
				m.Metadata.Set("domain", domain)
				m.Metadata.Set("handled_at", time.Now().UTC().Format(time.RFC3339))
			}
			return produced, err
		}
	}
}

func (middlewareHelpers) RoutingMetadataMiddleware() message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			for _, m := range produced {
				if m.Metadata.Get("topic") == "" {
					if v := msg.Metadata.Get("topic"); v != "" {
						m.Metadata.Set("topic", v)
					}
				}
			}
			return produced, err
		}
	}
}
