package idgen

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	coremocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/core"
)

func TestNextID(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(now).Maybe()

	gen := NewUUIDGenerator(mockTime)

	seen := make(map[uint64]struct{})
	var previous uint64
	for i := 0; i < 1000; i++ {
		id := gen.NextID()
		assert.Greater(t, id, previous)
		assert.Less(t, id, uint64(1)<<63)
		seen[id] = struct{}{}
		previous = id
	}
	assert.Len(t, seen, 1000)
}

func TestNextIDEncodesTimestamp(t *testing.T) {
	now := epoch.Add(1500 * time.Millisecond)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(now)

	gen := NewUUIDGenerator(mockTime)
	gen.random = func() uuid.UUID { return uuid.UUID{} }

	assert.Equal(t, uint64(1500)<<randomBits, gen.NextID())
}
