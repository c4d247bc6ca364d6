package idempotency

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInProgress means another request with the same key is running.
	ErrInProgress = errors.New("idempotency: operation already in progress")
	// ErrCompleted means a request with the same key already succeeded.
	ErrCompleted = errors.New("idempotency: operation already completed")
	// ErrInvalidState means the stored state is not one this package writes.
	ErrInvalidState = errors.New("idempotency: invalid state")
)

// State is the lifecycle of an idempotency key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

// Tracker runs an operation at most once per key.
//
// A failed operation releases its key so the client can retry with the same
// key after fixing the input. Only success is remembered.
type Tracker interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// Option tunes Exec.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress key blocks duplicates.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long a completed key is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

func newExecOptions(opts []Option) execOptions {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}
	return o
}

// backend is the storage contract shared by the Redis and memory trackers.
type backend interface {
	acquire(ctx context.Context, key string, lock time.Duration) (State, error)
	complete(ctx context.Context, key string, ttl time.Duration) error
	release(ctx context.Context, key string) error
}

func exec(ctx context.Context, b backend, key string, fn func(context.Context) error, opts []Option) error {
	o := newExecOptions(opts)

	state, err := b.acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	}

	if err := fn(ctx); err != nil {
		return errors.Join(err, b.release(context.WithoutCancel(ctx), key))
	}

	return b.complete(context.WithoutCancel(ctx), key, o.stateTTL)
}
