package messaging

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Published is a message captured by Memory.
type Published struct {
	Destination string
	Message     Message
}

// Memory keeps published messages in process. It backs the noop driver.
type Memory struct {
	closed *atomic.Bool

	mu   sync.Mutex
	sent []Published
}

// NewMemory returns an empty in-memory publisher.
func NewMemory() *Memory {
	return &Memory{closed: atomic.NewBool(false)}
}

// Publish records msg.
func (m *Memory) Publish(ctx context.Context, destination string, msg Message) (PublishResult, error) {
	if err := validate(ctx, destination); err != nil {
		return PublishResult{}, err
	}
	if m.closed.Load() {
		return PublishResult{}, ErrClosed
	}

	m.mu.Lock()
	m.sent = append(m.sent, Published{Destination: destination, Message: msg})
	m.mu.Unlock()

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Messages returns a copy of everything published so far.
func (m *Memory) Messages() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sent)
}

// Close stops accepting messages.
func (m *Memory) Close() error {
	m.closed.Store(true)
	return nil
}
