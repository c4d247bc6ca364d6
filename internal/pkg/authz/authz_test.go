package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("role grants its policies", func(t *testing.T) {
		e, err := New(
			[]string{"admin, users, export", "auditor, users, *"},
			[]string{"alice, admin", " bob ,auditor", ""},
		)
		require.NoError(t, err)

		tests := []struct {
			sub, obj, act string
			want          bool
		}{
			{"alice", "users", "export", true},
			{"alice", "users", "delete", false},
			{"bob", "users", "export", true},
			{"bob", "users", "anything", true},
			{"carol", "users", "export", false},
			{"admin", "users", "export", true},
		}
		for _, tt := range tests {
			ok, err := e.Enforce(tt.sub, tt.obj, tt.act)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok, "%s %s %s", tt.sub, tt.obj, tt.act)
		}
	})

	t.Run("empty config denies everyone", func(t *testing.T) {
		e, err := New(nil, nil)
		require.NoError(t, err)

		ok, err := e.Enforce("alice", "users", "export")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed lines", func(t *testing.T) {
		_, err := New([]string{"admin, users"}, nil)
		assert.ErrorIs(t, err, ErrBadRule)

		_, err = New(nil, []string{"alice, admin, extra"})
		assert.ErrorIs(t, err, ErrBadRule)

		_, err = New([]string{"admin, , export"}, nil)
		assert.ErrorIs(t, err, ErrBadRule)
	})
}
