package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracker keeps idempotency keys in Redis.
type RedisTracker struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis returns a tracker storing keys under "idempotency:<key>".
func NewRedis(client redis.UniversalClient) *RedisTracker {
	return &RedisTracker{client: client, prefix: "idempotency:"}
}

// Exec runs fn unless key is in progress or already completed.
func (r *RedisTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	return exec(ctx, r, key, fn, opts)
}

func (r *RedisTracker) acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	fk := r.prefix + key

	// A key may expire between SETNX and GET, hence the second round.
	for range 2 {
		acquired, err := r.client.SetNX(ctx, fk, string(StateInProgress), lock).Result()
		if err != nil {
			return StateNone, err
		}
		if acquired {
			return StateNone, nil
		}

		current, err := r.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return StateNone, err
		}

		switch State(current) {
		case StateInProgress, StateCompleted:
			return State(current), nil
		default:
			return StateNone, ErrInvalidState
		}
	}

	return StateNone, ErrInvalidState
}

func (r *RedisTracker) complete(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, string(StateCompleted), ttl).Err()
}

func (r *RedisTracker) release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
