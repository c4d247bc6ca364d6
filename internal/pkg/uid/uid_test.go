package uid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	var gen StringID = NewUUID()

	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestSnowflake(t *testing.T) {
	t.Run("ids increase", func(t *testing.T) {
		gen, err := NewSnowflake(1)
		require.NoError(t, err)

		var ng NumberID = gen
		prev := ng.Generate()
		for range 100 {
			next := ng.Generate()
			assert.Greater(t, next, prev)
			prev = next
		}
	})

	t.Run("node out of range", func(t *testing.T) {
		_, err := NewSnowflake(4096)
		assert.Error(t, err)
	})
}
