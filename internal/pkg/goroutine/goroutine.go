package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/userlab/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// DefaultMaxGoroutine is the per-CPU limit used when NewManager receives a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs background tasks with a bounded concurrency.
//
// Tasks run on a context detached from the caller's cancellation, so work
// started from an HTTP handler outlives the request. Errors and panics are
// collected and reported by Wait.
type Manager struct {
	wg      sync.WaitGroup
	sema    chan struct{}
	stateMu sync.RWMutex
	closed  bool

	mu   sync.Mutex
	errs []error

	running *atomic.Int64
	dropped *atomic.Int64
}

// NewManager creates a Manager running at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		sema:    make(chan struct{}, maxGoroutine),
		running: atomic.NewInt64(0),
		dropped: atomic.NewInt64(0),
	}
}

// Go starts f in the background and reports whether it was accepted. A task is
// rejected when the manager is closed or at its limit.
func (g *Manager) Go(ctx context.Context, name string, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		g.dropped.Inc()
		slog.WarnContext(ctx, "goroutine manager is closed, task dropped", "task", name)
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		g.dropped.Inc()
		slog.WarnContext(ctx, "maximum goroutine limit reached, task dropped", "task", name)
		return false
	}

	tctx := context.WithoutCancel(ctx)
	g.running.Inc()
	g.wg.Go(func() {
		defer func() {
			<-g.sema
			g.running.Dec()

			if rvr := recover(); rvr != nil {
				g.collect(errors.New("goroutine: panic in task " + name))
				if paths := stacktrace.InternalPaths(debug.Stack()); len(paths) > 0 {
					slog.ErrorContext(tctx, "panic occurred in goroutine", "task", name, "because", rvr, "stack", paths)
				} else {
					slog.ErrorContext(tctx, "panic occurred in goroutine", "task", name, "because", rvr)
				}
			}
		}()

		if err := f(tctx); err != nil {
			slog.ErrorContext(tctx, "goroutine task failed", "task", name, "error", err)
			g.collect(err)
		}
	})

	return true
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Running returns the number of tasks in flight.
func (g *Manager) Running() int64 {
	return g.running.Load()
}

// Dropped returns the number of tasks rejected so far.
func (g *Manager) Dropped() int64 {
	return g.dropped.Load()
}

// Wait closes the manager, blocks until every accepted task finishes and
// returns the collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
