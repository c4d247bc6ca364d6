package registration

import (
	"context"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/userlab/internal/pkg/clock"
	"github.com/shandysiswandi/userlab/internal/pkg/config"
	"github.com/shandysiswandi/userlab/internal/pkg/goroutine"
	"github.com/shandysiswandi/userlab/internal/pkg/idempotency"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/messaging"
	"github.com/shandysiswandi/userlab/internal/pkg/router"
	"github.com/shandysiswandi/userlab/internal/pkg/storage"
	"github.com/shandysiswandi/userlab/internal/pkg/uid"
	"github.com/shandysiswandi/userlab/internal/pkg/validator"
	"github.com/shandysiswandi/userlab/internal/registration/inbound"
	"github.com/shandysiswandi/userlab/internal/registration/outbound/mq"
	"github.com/shandysiswandi/userlab/internal/registration/outbound/store"
	"github.com/shandysiswandi/userlab/internal/registration/usecase"
)

// Dependency lists what the registration module needs. DBConn and CacheConn
// are only required by the postgres and redis store drivers. A nil Storage
// disables the CSV export. Enforcer decides which operators may export.
type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	DBConn      *pgxpool.Pool              `validate:"-"`
	CacheConn   redis.UniversalClient      `validate:"-"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Tracker        `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Storage     storage.Storage            `validate:"-"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	if err := usecase.RegisterRules(dep.Validator, dep.Clock); err != nil {
		return err
	}

	repoStore, err := store.New(dep.Ctx, dep.Config.GetString("store.driver"), store.Options{
		DBConn:     dep.DBConn,
		CacheConn:  dep.CacheConn,
		Instrument: dep.Instrument,
	})
	if err != nil {
		return err
	}

	var mqOpts []mq.Option
	if dep.Config.IsSet("registration.publish.max_retries") {
		mqOpts = append(mqOpts, mq.WithRetry(
			uint64(max(dep.Config.GetInt("registration.publish.max_retries"), 0)),
			dep.Config.GetDuration("registration.publish.retry_delay"),
		))
	}
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument, mqOpts...)

	uc := usecase.New(usecase.Dependency{
		RepoStore:     repoStore,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Enforcer:      dep.Enforcer,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Storage:       dep.Storage,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
