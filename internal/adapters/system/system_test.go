package system

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	now := NewClock().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, now, now.Round(0))
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestUUIDGenerator(t *testing.T) {
	ids := NewUUIDGenerator()
	seen := map[string]bool{}
	for range 100 {
		id := ids.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
