package market

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

type cart struct {
	mu     sync.Mutex
	id     domain.CartID
	items  []*listing
	closed bool
}

func (c *cart) indexOf(key domain.ProductKey) int {
	for i, l := range c.items {
		if l.product.Key() == key {
			return i
		}
	}
	return -1
}

type cartTable struct {
	mu    sync.RWMutex
	last  atomic.Int64
	carts map[domain.CartID]*cart
}

func (t *cartTable) init() {
	t.carts = make(map[domain.CartID]*cart)
}

// open allocates the next cart id, starting from 1.
func (t *cartTable) open() domain.CartID {
	id := domain.CartID(t.last.Add(1))

	t.mu.Lock()
	t.carts[id] = &cart{id: id}
	t.mu.Unlock()

	return id
}

func (t *cartTable) get(id domain.CartID) (*cart, error) {
	t.mu.RLock()
	c, ok := t.carts[id]
	t.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cart[%d]: %w", id, domain.ErrUnknownCart)
	}

	return c, nil
}

func (t *cartTable) pop(id domain.CartID) (*cart, error) {
	t.mu.Lock()
	c, ok := t.carts[id]
	delete(t.carts, id)
	t.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("cart[%d]: %w", id, domain.ErrUnknownCart)
	}

	return c, nil
}

func (t *cartTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.carts)
}

// withCart runs fn with the cart locked. A cart checked out by a concurrent
// PlaceOrder is reported as unknown.
func withCart[T any](t *cartTable, id domain.CartID, fn func(c *cart) (T, error)) (T, error) {
	var zero T

	c, err := t.get(id)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return zero, fmt.Errorf("cart[%d] is checked out: %w", id, domain.ErrUnknownCart)
	}

	return fn(c)
}
