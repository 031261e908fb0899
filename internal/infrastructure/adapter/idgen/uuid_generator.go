package idgen

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

// epoch shifts the millisecond clock so ids stay below 2^63 for decades
var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

const randomBits = 22

// UUIDGenerator builds numeric order ids from a millisecond timestamp and
// 22 random bits taken from a v4 UUID. Banks accept only numeric order ids,
// so the UUID cannot be used directly. Ids are strictly increasing per process.
type UUIDGenerator struct {
	mu           sync.Mutex
	last         uint64
	timeProvider core.TimeProvider
	random       func() uuid.UUID
}

// NewUUIDGenerator creates a new id generator
func NewUUIDGenerator(timeProvider core.TimeProvider) *UUIDGenerator {
	return &UUIDGenerator{
		timeProvider: timeProvider,
		random:       uuid.New,
	}
}

// NextID returns a new positive id
func (g *UUIDGenerator) NextID() uint64 {
	ms := uint64(g.timeProvider.Now().Sub(epoch).Milliseconds())
	u := g.random()
	noise := uint64(binary.BigEndian.Uint32(u[12:16])) & (1<<randomBits - 1)
	id := ms<<randomBits | noise

	g.mu.Lock()
	defer g.mu.Unlock()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
