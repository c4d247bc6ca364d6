package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
)

// Memory is an in-process Store. Its content is lost on restart.
type Memory struct {
	mu     sync.RWMutex
	users  []entity.User
	emails map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{emails: make(map[string]struct{})}
}

func (m *Memory) AppendUser(_ context.Context, u entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := m.emails[key]; ok {
		return goerror.ErrConflict
	}

	m.emails[key] = struct{}{}
	m.users = append(m.users, u)
	return nil
}

func (m *Memory) ListUsers(_ context.Context, limit int) ([]entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(m.users) {
		start = len(m.users) - limit
	}
	return slices.Clone(m.users[start:]), nil
}

func (m *Memory) AllUsers(ctx context.Context) ([]entity.User, error) {
	return m.ListUsers(ctx, 0)
}
