package port

import (
	"context"
)

// EventPublisher defines the interface for publishing run events to a
// message broker (Port). Used to announce completed runs to downstream
// consumers; publishing is best effort.
type EventPublisher interface {
	// PublishEvent publishes an event to the specified subject
	PublishEvent(ctx context.Context, subject string, event interface{}) error

	// Close closes the connection to the message broker
	Close() error
}
