package app

import (
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/userlab/internal/registration"
)

func (a *App) initModules() {
	var cacheConn redis.UniversalClient
	if a.cacheConn != nil {
		cacheConn = a.cacheConn
	}

	if err := registration.New(registration.Dependency{
		Ctx:         a.ctx,
		DBConn:      a.dbConn,
		CacheConn:   cacheConn,
		Goroutine:   a.goroutine,
		Router:      a.router,
		Idempotency: a.idemp,
		Enforcer:    a.enforcer,
		Messaging:   a.messaging,
		Storage:     a.storage,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		Clock:       a.clock,
		Validator:   a.validator,
	}); err != nil {
		slog.Error("failed to init module registration", "error", err)
		os.Exit(1)
	}
}
