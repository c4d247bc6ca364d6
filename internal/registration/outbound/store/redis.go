package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
)

const (
	keyUsers  = "users"
	keyEmails = "users:emails"
)

// Redis stores users as JSON entries of the list "users". Registered emails
// are tracked in a set to reject duplicates.
type Redis struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
}

func NewRedis(client redis.UniversalClient, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, ins: ins}
}

func (r *Redis) AppendUser(ctx context.Context, u entity.User) (err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.AppendUser")
	defer func() { endSpan(span, err) }()

	data, err := json.Marshal(u)
	if err != nil {
		return err
	}

	added, err := r.client.SAdd(ctx, keyEmails, emailKey(u.Email)).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return goerror.ErrConflict
	}

	if err = r.client.RPush(ctx, keyUsers, data).Err(); err != nil {
		r.client.SRem(context.WithoutCancel(ctx), keyEmails, emailKey(u.Email))
		return err
	}

	return nil
}

func (r *Redis) ListUsers(ctx context.Context, limit int) (_ []entity.User, err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.ListUsers")
	defer func() { endSpan(span, err) }()

	var start int64
	if limit > 0 {
		start = -int64(limit)
	}

	return r.lrange(ctx, start)
}

func (r *Redis) AllUsers(ctx context.Context) (_ []entity.User, err error) {
	ctx, span := startSpan(ctx, r.ins, "Redis.AllUsers")
	defer func() { endSpan(span, err) }()

	return r.lrange(ctx, 0)
}

func (r *Redis) lrange(ctx context.Context, start int64) ([]entity.User, error) {
	items, err := r.client.LRange(ctx, keyUsers, start, -1).Result()
	if err != nil {
		return nil, err
	}

	users := make([]entity.User, 0, len(items))
	for _, item := range items {
		var u entity.User
		if err := json.Unmarshal([]byte(item), &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}
