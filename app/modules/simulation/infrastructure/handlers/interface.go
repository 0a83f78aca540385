package simulationhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the simulation module's handler surface.
type Handlers interface {
	HandleVsAllRequest(msg *message.Message) ([]*message.Message, error)
}
