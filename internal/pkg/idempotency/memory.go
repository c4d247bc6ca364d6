package idempotency

import (
	"context"
	"sync"
	"time"
)

// sweepInterval bounds how often acquire scans for expired keys.
const sweepInterval = time.Minute

type memoryEntry struct {
	state   State
	expires time.Time
}

// MemoryTracker keeps idempotency keys in process. It is used when no Redis is
// configured and only protects a single instance.
type MemoryTracker struct {
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]memoryEntry
	nextSweep time.Time
}

// NewMemory returns a tracker reading time from now, or time.Now when nil.
func NewMemory(now func() time.Time) *MemoryTracker {
	if now == nil {
		now = time.Now
	}
	return &MemoryTracker{now: now, entries: make(map[string]memoryEntry)}
}

// Exec runs fn unless key is in progress or already completed.
func (m *MemoryTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	return exec(ctx, m, key, fn, opts)
}

func (m *MemoryTracker) acquire(_ context.Context, key string, lock time.Duration) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !now.Before(m.nextSweep) {
		m.sweep(now)
	}

	if e, ok := m.entries[key]; ok && now.Before(e.expires) {
		return e.state, nil
	}

	m.entries[key] = memoryEntry{state: StateInProgress, expires: now.Add(lock)}
	return StateNone, nil
}

func (m *MemoryTracker) complete(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{state: StateCompleted, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryTracker) release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// sweep drops expired keys. The caller holds mu.
func (m *MemoryTracker) sweep(now time.Time) {
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}
