package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProducerID int

type CartID int

// Receipt is what a consumer walks away with after checking out a cart.
type Receipt struct {
	ID       uuid.UUID
	Consumer string
	CartID   CartID
	Items    []Product

	PlacedAt time.Time
}

func NewReceipt(consumer string, cartID CartID, items []Product) Receipt {
	return Receipt{
		ID:       uuid.New(),
		Consumer: consumer,
		CartID:   cartID,
		Items:    items,
		PlacedAt: time.Now().UTC(),
	}
}
