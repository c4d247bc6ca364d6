package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/userlab/internal/pkg/clock"
	"github.com/shandysiswandi/userlab/internal/pkg/config"
	"github.com/shandysiswandi/userlab/internal/pkg/goroutine"
	"github.com/shandysiswandi/userlab/internal/pkg/idempotency"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/jwt"
	"github.com/shandysiswandi/userlab/internal/pkg/messaging"
	"github.com/shandysiswandi/userlab/internal/pkg/router"
	"github.com/shandysiswandi/userlab/internal/pkg/storage"
	"github.com/shandysiswandi/userlab/internal/pkg/uid"
	"github.com/shandysiswandi/userlab/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT
	enforcer  *casbin.Enforcer

	// resources, nil when not configured
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Tracker
	messaging messaging.Publisher
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initAuth()
	app.initDatabase()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
