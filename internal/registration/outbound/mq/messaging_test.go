package mq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/messaging"
	"github.com/shandysiswandi/userlab/internal/registration/usecase"
	"github.com/shandysiswandi/userlab/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyPublisher struct {
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (f *flakyPublisher) Close() error { return nil }

func (f *flakyPublisher) Publish(context.Context, string, messaging.Message) (messaging.PublishResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return messaging.PublishResult{}, f.err
	}
	return messaging.PublishResult{}, nil
}

func registered() usecase.UserRegisteredEvent {
	return usecase.UserRegisteredEvent{
		UserID:       42,
		Firstname:    "Noël",
		Lastname:     "Côté",
		Email:        "noel.cote@example.fr",
		City:         "Rennes",
		ZipCode:      "35200",
		Birth:        time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
		RegisteredAt: time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishUserRegistered(t *testing.T) {
	t.Run("publishes json with the correlation id", func(t *testing.T) {
		pub := messaging.NewMemory()
		m := NewMessaging(pub, instrument.NewNoop())

		ctx := instrument.SetCorrelationID(context.Background(), "cid-123")
		require.NoError(t, m.PublishUserRegistered(ctx, registered()))

		sent := pub.Messages()
		require.Len(t, sent, 1)
		assert.Equal(t, event.UserRegisteredDestination, sent[0].Destination)
		assert.Equal(t, "cid-123", sent[0].Message.HeaderMap()[keyOfCorrelationID])
		assert.Equal(t, []byte("42"), sent[0].Message.Key)

		var msg event.UserRegisteredMessage
		require.NoError(t, json.Unmarshal(sent[0].Message.Body, &msg))
		assert.Equal(t, event.UserRegisteredMessage{
			UserID:     42,
			Firstname:  "Noël",
			Lastname:   "Côté",
			Email:      "noel.cote@example.fr",
			City:       "Rennes",
			ZipCode:    "35200",
			Birth:      "1990-05-12",
			Registered: registered().RegisteredAt.Unix(),
		}, msg)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		pub := &flakyPublisher{failures: 2, err: errors.New("connection reset")}
		m := NewMessaging(pub, instrument.NewNoop(), WithRetry(3, time.Millisecond))

		require.NoError(t, m.PublishUserRegistered(context.Background(), registered()))
		assert.Equal(t, 3, pub.calls)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		pub := &flakyPublisher{failures: 10, err: errors.New("connection reset")}
		m := NewMessaging(pub, instrument.NewNoop(), WithRetry(2, time.Millisecond))

		assert.Error(t, m.PublishUserRegistered(context.Background(), registered()))
		assert.Equal(t, 3, pub.calls)
	})

	t.Run("closed publisher is not retried", func(t *testing.T) {
		pub := messaging.NewMemory()
		require.NoError(t, pub.Close())
		m := NewMessaging(pub, instrument.NewNoop(), WithRetry(5, time.Millisecond))

		assert.ErrorIs(t, m.PublishUserRegistered(context.Background(), registered()), messaging.ErrClosed)
	})
}
