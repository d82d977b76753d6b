// Package market implements the in-memory marketplace shared by producers
// and consumers.
//
// Lock order is cart, then pool. The producer registry and the cart table
// locks are only held for lookups and never while another lock is taken.
package market

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/nikolayk812/marketplace-sim/internal/domain"
	"github.com/nikolayk812/marketplace-sim/internal/port"
)

var _ port.Marketplace = (*Marketplace)(nil)

type Marketplace struct {
	quota int64

	producers producerRegistry
	carts     cartTable

	poolMu sync.Mutex
	pool   pool

	sold atomic.Int64
}

type Stats struct {
	Producers int
	Pooled    int
	OpenCarts int
	Sold      int
}

// NewMarketplace creates a marketplace where every producer may have at most
// quota published units waiting in the pool.
func NewMarketplace(quota int) (*Marketplace, error) {
	if quota <= 0 {
		return nil, fmt.Errorf("quota[%d]: %w", quota, domain.ErrInvalidQuota)
	}

	m := &Marketplace{
		quota: int64(quota),
		pool:  newPool(),
	}
	m.carts.init()

	return m, nil
}

func (m *Marketplace) Quota() int {
	return int(m.quota)
}

func (m *Marketplace) RegisterProducer() domain.ProducerID {
	return m.producers.register()
}

// Publish returns false without side effects when the producer's quota is full.
func (m *Marketplace) Publish(producerID domain.ProducerID, product domain.Product) (bool, error) {
	owner, err := m.producers.get(producerID)
	if err != nil {
		return false, fmt.Errorf("producers.get: %w", err)
	}

	if !owner.tryReserve(m.quota) {
		return false, nil
	}

	l := &listing{
		product: product,
		owner:   owner,
		charged: true,
	}

	m.poolMu.Lock()
	m.pool.push(l)
	m.poolMu.Unlock()

	return true, nil
}

func (m *Marketplace) NewCart() domain.CartID {
	return m.carts.open()
}

// AddToCart moves the pooled unit equal to product that has waited longest
// into the cart. It returns false when no such unit is pooled right now.
func (m *Marketplace) AddToCart(cartID domain.CartID, product domain.Product) (bool, error) {
	key := product.Key()

	added, err := withCart(&m.carts, cartID, func(c *cart) (bool, error) {
		m.poolMu.Lock()
		defer m.poolMu.Unlock()

		l, ok := m.pool.take(key)
		if !ok {
			return false, nil
		}

		if l.charged {
			l.owner.release()
			l.charged = false
		}
		c.items = append(c.items, l)

		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("withCart: %w", err)
	}

	return added, nil
}

// RemoveFromCart returns the earliest added unit equal to product to the back
// of the pool. If its producer refilled the quota in the meantime, the unit is
// pooled without a quota charge.
func (m *Marketplace) RemoveFromCart(cartID domain.CartID, product domain.Product) error {
	key := product.Key()

	_, err := withCart(&m.carts, cartID, func(c *cart) (struct{}, error) {
		i := c.indexOf(key)
		if i < 0 {
			return struct{}{}, fmt.Errorf("cart[%d] %s: %w", cartID, product, domain.ErrProductNotInCart)
		}

		l := c.items[i]
		c.items = slices.Delete(c.items, i, i+1)
		l.charged = l.owner.tryReserve(m.quota)

		m.poolMu.Lock()
		m.pool.push(l)
		m.poolMu.Unlock()

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withCart: %w", err)
	}

	return nil
}

// PlaceOrder checks the cart out and returns its products in the order they
// were added. The cart id is invalid afterwards.
func (m *Marketplace) PlaceOrder(cartID domain.CartID) ([]domain.Product, error) {
	c, err := m.carts.pop(cartID)
	if err != nil {
		return nil, fmt.Errorf("carts.pop: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true

	products := make([]domain.Product, 0, len(c.items))
	for _, l := range c.items {
		products = append(products, l.product)
	}
	c.items = nil

	m.sold.Add(int64(len(products)))

	return products, nil
}

// Outstanding reports how many of the producer's units currently count
// against its quota.
func (m *Marketplace) Outstanding(producerID domain.ProducerID) (int, error) {
	owner, err := m.producers.get(producerID)
	if err != nil {
		return 0, fmt.Errorf("producers.get: %w", err)
	}

	return int(owner.outstanding.Load()), nil
}

// Available reports how many units equal to product are pooled.
func (m *Marketplace) Available(product domain.Product) int {
	m.poolMu.Lock()
	defer m.poolMu.Unlock()

	return m.pool.count(product.Key())
}

func (m *Marketplace) Stats() Stats {
	m.poolMu.Lock()
	pooled := m.pool.size
	m.poolMu.Unlock()

	return Stats{
		Producers: m.producers.len(),
		Pooled:    pooled,
		OpenCarts: m.carts.len(),
		Sold:      int(m.sold.Load()),
	}
}
