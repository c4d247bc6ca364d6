package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/userlab/internal/pkg/clock"
	"github.com/shandysiswandi/userlab/internal/pkg/config"
	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/goroutine"
	"github.com/shandysiswandi/userlab/internal/pkg/idempotency"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/jwt"
	"github.com/shandysiswandi/userlab/internal/pkg/storage"
	"github.com/shandysiswandi/userlab/internal/pkg/uid"
	"github.com/shandysiswandi/userlab/internal/pkg/validator"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID       int64
	Firstname    string
	Lastname     string
	Email        string
	City         string
	ZipCode      string
	Birth        time.Time
	RegisteredAt time.Time
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoStore interface {
	AppendUser(ctx context.Context, u entity.User) error
	ListUsers(ctx context.Context, limit int) ([]entity.User, error)
	AllUsers(ctx context.Context) ([]entity.User, error)
}

type enforcer interface {
	Enforce(rvals ...any) (bool, error)
}

type Usecase struct {
	repoStore     repoStore
	repoMessaging repoMessaging
	idemp         idempotency.Tracker
	enforcer      enforcer
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

// Dependency wires a Usecase. Idempotency and Storage are optional: without
// them idempotency keys are ignored and Export is unavailable. Without an
// Enforcer every guarded operation is forbidden.
type Dependency struct {
	RepoStore     repoStore
	RepoMessaging repoMessaging
	Idempotency   idempotency.Tracker
	Enforcer      enforcer
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore:     dep.RepoStore,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		enforcer:      dep.Enforcer,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness(MsgAuthRequired, goerror.CodeUnauthorized)
	}

	if s.enforcer == nil {
		slog.WarnContext(ctx, "no authorization policy loaded", "subject", clm.Subject, "object", obj, "action", act)
		return nil, goerror.NewBusiness(MsgForbidden, goerror.CodeForbidden)
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "subject", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		slog.WarnContext(ctx, "operator not allowed", "subject", clm.Subject, "object", obj, "action", act)
		return nil, goerror.NewBusiness(MsgForbidden, goerror.CodeForbidden)
	}

	return clm, nil
}
