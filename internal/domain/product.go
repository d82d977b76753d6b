package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryTea    Category = "tea"
	CategoryCoffee Category = "coffee"
)

func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryTea:
		return CategoryTea, nil
	case CategoryCoffee:
		return CategoryCoffee, nil
	default:
		return "", fmt.Errorf("category[%s] is not valid", s)
	}
}

type TeaAttributes struct {
	Type string
}

type CoffeeAttributes struct {
	Acidity    decimal.Decimal
	RoastLevel string
}

// Product is an immutable value. Only the attributes of its Category are
// meaningful; the others stay zero.
type Product struct {
	Name     string
	Category Category
	Price    Money

	Tea    TeaAttributes
	Coffee CoffeeAttributes
}

// ProductKey is the canonical form of a Product. Equal products have equal keys.
type ProductKey string

func NewTea(name string, price Money, teaType string) Product {
	return Product{
		Name:     name,
		Category: CategoryTea,
		Price:    price,
		Tea:      TeaAttributes{Type: teaType},
	}
}

func NewCoffee(name string, price Money, acidity decimal.Decimal, roastLevel string) Product {
	return Product{
		Name:     name,
		Category: CategoryCoffee,
		Price:    price,
		Coffee:   CoffeeAttributes{Acidity: acidity, RoastLevel: roastLevel},
	}
}

func (p Product) Key() ProductKey {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%q|%s|%s", p.Category, p.Name, p.Price.Amount.String(), p.Price.Currency.String())

	switch p.Category {
	case CategoryTea:
		fmt.Fprintf(&b, "|%q", p.Tea.Type)
	case CategoryCoffee:
		fmt.Fprintf(&b, "|%s|%q", p.Coffee.Acidity.String(), p.Coffee.RoastLevel)
	}

	return ProductKey(b.String())
}

func (p Product) Equal(other Product) bool {
	return p.Key() == other.Key()
}

func (p Product) String() string {
	switch p.Category {
	case CategoryTea:
		return fmt.Sprintf("Tea(name='%s', price=%s, type='%s')", p.Name, p.Price, p.Tea.Type)
	case CategoryCoffee:
		return fmt.Sprintf("Coffee(name='%s', price=%s, acidity=%s, roast_level='%s')",
			p.Name, p.Price, p.Coffee.Acidity.String(), p.Coffee.RoastLevel)
	default:
		return fmt.Sprintf("Product(name='%s', price=%s)", p.Name, p.Price)
	}
}
