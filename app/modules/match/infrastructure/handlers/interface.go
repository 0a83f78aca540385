package matchhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the match module's handler surface.
type Handlers interface {
	HandleHoleScoreEntered(msg *message.Message) ([]*message.Message, error)
	HandleMatchRecomputeRequest(msg *message.Message) ([]*message.Message, error)
}
