package port

import (
	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

type ProducerMarket interface {
	RegisterProducer() domain.ProducerID
	Publish(producerID domain.ProducerID, product domain.Product) (bool, error)
}

type ConsumerMarket interface {
	NewCart() domain.CartID
	AddToCart(cartID domain.CartID, product domain.Product) (bool, error)
	RemoveFromCart(cartID domain.CartID, product domain.Product) error
	PlaceOrder(cartID domain.CartID) ([]domain.Product, error)
}

type Marketplace interface {
	ProducerMarket
	ConsumerMarket
}
