package messaging

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"train-service/pkg/models"
)

// InMemoryMessage records commits so tests can assert the commit-after-outcome
// ordering.
type InMemoryMessage struct {
	payload []byte
	commits atomic.Int32
}

func (m *InMemoryMessage) Payload() []byte {
	return m.payload
}

func (m *InMemoryMessage) Commit(ctx context.Context) error {
	m.commits.Add(1)
	return nil
}

func (m *InMemoryMessage) Committed() bool {
	return m.commits.Load() > 0
}

// InMemoryQueue is a channel-backed queue used by tests and the local
// harness.
type InMemoryQueue struct {
	messages chan Message
}

var (
	_ Receiver  = (*InMemoryQueue)(nil)
	_ Publisher = (*InMemoryQueue)(nil)
)

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{messages: make(chan Message, 100)}
}

func (q *InMemoryQueue) PublishRun(ctx context.Context, payload models.RunMessage) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	q.PublishRaw(body)
	return nil
}

// PublishRaw enqueues arbitrary bytes, including malformed payloads.
func (q *InMemoryQueue) PublishRaw(payload []byte) *InMemoryMessage {
	msg := &InMemoryMessage{payload: payload}
	q.messages <- msg
	return msg
}

func (q *InMemoryQueue) Fetch(ctx context.Context) (Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-q.messages:
		if !ok {
			return nil, context.Canceled
		}
		return msg, nil
	}
}

func (q *InMemoryQueue) Close() error {
	if q.messages != nil {
		close(q.messages)
		q.messages = nil
	}
	return nil
}
