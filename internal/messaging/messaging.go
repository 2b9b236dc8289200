package messaging

import (
	"context"

	"train-service/pkg/models"
)

// Message is one delivery from the run-request queue. Commit durably records
// the message as handled; it must only be called after the run's consequences
// are durable or recorded as a failure.
type Message interface {
	Payload() []byte

	Commit(ctx context.Context) error
}

// Receiver yields messages one at a time, in partition order. Fetch blocks
// until a message arrives or the context is cancelled.
type Receiver interface {
	Fetch(ctx context.Context) (Message, error)

	Close() error
}

// Publisher enqueues run requests. The worker itself does not publish; this
// is used by the local harness and tooling.
type Publisher interface {
	PublishRun(ctx context.Context, payload models.RunMessage) error

	Close() error
}
