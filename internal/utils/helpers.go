// Package utils holds the watermill message helpers shared by all handlers.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// Helpers creates outgoing messages from handler payloads.
type Helpers interface {
	// CreateResultMessage builds a message carrying payload, correlated with
	// the original message and routed to topic via metadata.
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	// CreateNewMessage builds an uncorrelated message, used by publishers that
	// originate a flow rather than respond to one.
	CreateNewMessage(payload any, topic string) (*message.Message, error)
	// UnmarshalPayload decodes a message body into target.
	UnmarshalPayload(msg *message.Message, target any) error
}

type helpers struct{}

// NewHelpers returns the standard Helpers implementation.
func NewHelpers() Helpers {
	return helpers{}
}

func (helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set("topic", topic)
	if original != nil {
		middleware.SetCorrelationID(middleware.MessageCorrelationID(original), msg)
		msg.Metadata.Set("causation_id", original.UUID)
	}
	return msg, nil
}

func (h helpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateResultMessage(nil, payload, topic)
	if err != nil {
		return nil, err
	}
	middleware.SetCorrelationID(uuid.New().String(), msg)
	return msg, nil
}

func (helpers) UnmarshalPayload(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal message %s: %w", msg.UUID, err)
	}
	return nil
}
