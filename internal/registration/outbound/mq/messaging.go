package mq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/messaging"
	"github.com/shandysiswandi/userlab/internal/registration/usecase"
	"github.com/shandysiswandi/userlab/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 100 * time.Millisecond
	maxDelay          = 2 * time.Second
)

type Messaging struct {
	client     messaging.Publisher
	ins        instrument.Instrumentation
	maxRetries uint64
	baseDelay  time.Duration
}

// Option tunes the publish retry policy.
type Option func(*Messaging)

// WithRetry sets how many times a failed publish is retried and the first delay.
func WithRetry(maxRetries uint64, baseDelay time.Duration) Option {
	return func(m *Messaging) {
		m.maxRetries = maxRetries
		if baseDelay > 0 {
			m.baseDelay = baseDelay
		}
	}
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation, opts ...Option) *Messaging {
	m := &Messaging{
		client:     client,
		ins:        ins,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	ctx, span := m.ins.Tracer("registration.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	body, err := json.Marshal(event.UserRegisteredMessage{
		UserID:     msg.UserID,
		Firstname:  msg.Firstname,
		Lastname:   msg.Lastname,
		Email:      msg.Email,
		City:       msg.City,
		ZipCode:    msg.ZipCode,
		Birth:      msg.Birth.Format(time.DateOnly),
		Registered: msg.RegisteredAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := messaging.Message{
		Body:    body,
		Key:     []byte(strconv.FormatInt(msg.UserID, 10)),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}

	b := retry.NewExponential(m.baseDelay)
	b = retry.WithCappedDuration(maxDelay, b)
	b = retry.WithMaxRetries(m.maxRetries, b)

	attempt := 0
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		_, err := m.client.Publish(ctx, event.UserRegisteredDestination, out)
		if err == nil {
			return nil
		}
		if permanent(err) {
			return err
		}

		slog.WarnContext(ctx, "failed to publish user registered, retrying", "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func permanent(err error) bool {
	return errors.Is(err, messaging.ErrClosed) ||
		errors.Is(err, messaging.ErrDestinationRequired) ||
		errors.Is(err, messaging.ErrUnsupported) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
