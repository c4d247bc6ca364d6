//go:build integration

package store

import (
	"testing"

	"github.com/shandysiswandi/userlab/internal/pkg/instrument"
	"github.com/shandysiswandi/userlab/internal/pkg/testcontainer"
)

func TestRedis(t *testing.T) {
	testStore(t, NewRedis(testcontainer.Redis(t), instrument.NewNoop()))
}
