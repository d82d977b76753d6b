package market

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

type producerSlot struct {
	outstanding atomic.Int64
}

// tryReserve claims one unit of quota. The capacity check and the increment
// are a single compare-and-swap, so concurrent callers can never overshoot.
func (s *producerSlot) tryReserve(quota int64) bool {
	for {
		cur := s.outstanding.Load()
		if cur >= quota {
			return false
		}
		if s.outstanding.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (s *producerSlot) release() {
	s.outstanding.Add(-1)
}

// producerRegistry is an append-only arena: the index of a slot is its
// producer id, and slots are never removed.
type producerRegistry struct {
	mu    sync.RWMutex
	slots []*producerSlot
}

func (r *producerRegistry) register() domain.ProducerID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := domain.ProducerID(len(r.slots))
	r.slots = append(r.slots, &producerSlot{})

	return id
}

func (r *producerRegistry) get(id domain.ProducerID) (*producerSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id < 0 || int(id) >= len(r.slots) {
		return nil, fmt.Errorf("producer[%d]: %w", id, domain.ErrUnknownProducer)
	}

	return r.slots[id], nil
}

func (r *producerRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.slots)
}
