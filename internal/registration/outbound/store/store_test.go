package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func user(id int64, email string) entity.User {
	return entity.User{
		ID:        id,
		Firstname: "Noël",
		Lastname:  "Côté",
		Email:     email,
		City:      "Rennes",
		ZipCode:   "35200",
		Birth:     time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
		CreatedAt: createdAt.Add(time.Duration(id) * time.Second),
	}
}

func ids(users []entity.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// testStore checks the behavior every driver shares.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	all, err := s.AllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for i := int64(1); i <= 7; i++ {
		require.NoError(t, s.AppendUser(ctx, user(i, fmt.Sprintf("user%d@example.fr", i))))
	}

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		err := s.AppendUser(ctx, user(100, "USER1@example.fr"))
		assert.ErrorIs(t, err, goerror.ErrConflict)
	})

	t.Run("lists the last users oldest first", func(t *testing.T) {
		got, err := s.ListUsers(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 4, 5, 6, 7}, ids(got))
	})

	t.Run("limit above the size returns everything", func(t *testing.T) {
		got, err := s.ListUsers(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, ids(got))
	})

	t.Run("non positive limit returns everything", func(t *testing.T) {
		got, err := s.ListUsers(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, got, 7)
	})

	t.Run("all users keep their fields", func(t *testing.T) {
		got, err := s.AllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, got, 7)

		want := user(1, "user1@example.fr")
		assert.Equal(t, want.Email, got[0].Email)
		assert.Equal(t, want.ZipCode, got[0].ZipCode)
		assert.True(t, want.Birth.Equal(got[0].Birth))
		assert.True(t, want.CreatedAt.Equal(got[0].CreatedAt))
	})
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())

	t.Run("returned slices are copies", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.AppendUser(context.Background(), user(1, "a@example.fr")))

		got, err := m.AllUsers(context.Background())
		require.NoError(t, err)
		got[0].Email = "changed@example.fr"

		again, err := m.AllUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "a@example.fr", again[0].Email)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, "", Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = New(ctx, " Memory ", Options{Instrument: instrument.NewNoop()})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = New(ctx, DriverRedis, Options{})
	assert.ErrorIs(t, err, ErrMissingConn)

	_, err = New(ctx, DriverPostgres, Options{})
	assert.ErrorIs(t, err, ErrMissingConn)

	_, err = New(ctx, "sqlite", Options{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
