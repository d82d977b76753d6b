package market

import (
	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

// listing is one published unit. It lives either in the pool or in exactly
// one cart until the cart is checked out.
type listing struct {
	product domain.Product
	owner   *producerSlot

	// charged is true while the unit counts against the owner's quota.
	charged bool
}

// pool holds the available listings grouped by product key. Each shelf is a
// FIFO queue: equal products are handed out in the order they were pooled.
// Callers must hold Marketplace.poolMu.
type pool struct {
	shelves map[domain.ProductKey][]*listing
	size    int
}

func newPool() pool {
	return pool{shelves: make(map[domain.ProductKey][]*listing)}
}

func (p *pool) push(l *listing) {
	key := l.product.Key()
	p.shelves[key] = append(p.shelves[key], l)
	p.size++
}

func (p *pool) take(key domain.ProductKey) (*listing, bool) {
	shelf := p.shelves[key]
	if len(shelf) == 0 {
		return nil, false
	}

	l := shelf[0]
	shelf[0] = nil

	if len(shelf) == 1 {
		delete(p.shelves, key)
	} else {
		p.shelves[key] = shelf[1:]
	}
	p.size--

	return l, true
}

func (p *pool) count(key domain.ProductKey) int {
	return len(p.shelves[key])
}
