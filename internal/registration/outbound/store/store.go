package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

var (
	// ErrUnknownDriver is returned by New for an unsupported driver name.
	ErrUnknownDriver = errors.New("store: unknown driver")
	// ErrMissingConn is returned by New when the driver's connection is nil.
	ErrMissingConn = errors.New("store: missing connection")
)

// Store keeps registered users in registration order.
type Store interface {
	// AppendUser adds u after every user already stored.
	// It returns goerror.ErrConflict when the email is already registered.
	AppendUser(ctx context.Context, u entity.User) error
	// ListUsers returns the last limit users, oldest first. limit <= 0 means all.
	ListUsers(ctx context.Context, limit int) ([]entity.User, error)
	// AllUsers returns every user, oldest first.
	AllUsers(ctx context.Context) ([]entity.User, error)
}

// Options carries the connections a driver may need.
type Options struct {
	DBConn     *pgxpool.Pool
	CacheConn  redis.UniversalClient
	Instrument instrument.Instrumentation
}

// New returns the Store selected by driver. An empty driver means memory.
func New(ctx context.Context, driver string, opts Options) (Store, error) {
	ins := opts.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		if opts.CacheConn == nil {
			return nil, fmt.Errorf("%w: redis client", ErrMissingConn)
		}
		return NewRedis(opts.CacheConn, ins), nil
	case DriverPostgres:
		if opts.DBConn == nil {
			return nil, fmt.Errorf("%w: database pool", ErrMissingConn)
		}
		return NewPostgres(ctx, opts.DBConn, ins)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func startSpan(ctx context.Context, ins instrument.Instrumentation, name string) (context.Context, trace.Span) {
	return ins.Tracer("registration.outbound.store").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
