package statshandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the stats module's handler surface.
type Handlers interface {
	HandleMatchResultUpdated(msg *message.Message) ([]*message.Message, error)
}
