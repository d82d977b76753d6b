package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/marketplace-sim/internal/domain"
)

func TestProduct_Equal(t *testing.T) {
	usd := func(s string) domain.Money {
		return domain.NewMoney(decimal.RequireFromString(s), currency.USD)
	}

	tests := []struct {
		name  string
		a, b  domain.Product
		equal bool
	}{
		{
			name:  "same tea: equal",
			a:     domain.NewTea("Linden", usd("9"), "Herbal"),
			b:     domain.NewTea("Linden", usd("9"), "Herbal"),
			equal: true,
		},
		{
			name:  "price in another scale: equal",
			a:     domain.NewTea("Linden", usd("9"), "Herbal"),
			b:     domain.NewTea("Linden", usd("9.00"), "Herbal"),
			equal: true,
		},
		{
			name:  "different tea type: not equal",
			a:     domain.NewTea("Linden", usd("9"), "Herbal"),
			b:     domain.NewTea("Linden", usd("9"), "Green"),
			equal: false,
		},
		{
			name:  "different currency: not equal",
			a:     domain.NewTea("Linden", usd("9"), "Herbal"),
			b:     domain.NewTea("Linden", domain.NewMoney(decimal.NewFromInt(9), currency.EUR), "Herbal"),
			equal: false,
		},
		{
			name:  "same coffee with acidity in another scale: equal",
			a:     domain.NewCoffee("Indonezia", usd("1"), decimal.RequireFromString("5.05"), "MEDIUM"),
			b:     domain.NewCoffee("Indonezia", usd("1.0"), decimal.RequireFromString("5.050"), "MEDIUM"),
			equal: true,
		},
		{
			name:  "different roast level: not equal",
			a:     domain.NewCoffee("Indonezia", usd("1"), decimal.RequireFromString("5.05"), "MEDIUM"),
			b:     domain.NewCoffee("Indonezia", usd("1"), decimal.RequireFromString("5.05"), "HIGH"),
			equal: false,
		},
		{
			name:  "tea and coffee with the same name: not equal",
			a:     domain.NewTea("Arabica", usd("3"), ""),
			b:     domain.NewCoffee("Arabica", usd("3"), decimal.Zero, ""),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.a.Key() == tt.b.Key())
		})
	}
}

func TestProduct_String(t *testing.T) {
	tea := domain.NewTea("Linden", domain.NewMoney(decimal.NewFromInt(9), currency.USD), "Herbal")
	assert.Equal(t, "Tea(name='Linden', price=9 USD, type='Herbal')", tea.String())

	coffee := domain.NewCoffee("Indonezia", domain.NewMoney(decimal.NewFromInt(1), currency.EUR),
		decimal.RequireFromString("5.05"), "MEDIUM")
	assert.Equal(t, "Coffee(name='Indonezia', price=1 EUR, acidity=5.05, roast_level='MEDIUM')", coffee.String())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      domain.Category
		wantError string
	}{
		{name: "tea: ok", in: "Tea", want: domain.CategoryTea},
		{name: "coffee with spaces: ok", in: " coffee ", want: domain.CategoryCoffee},
		{name: "unknown: error", in: "Juice", wantError: "category[Juice] is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseCategory(tt.in)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_Equal(t *testing.T) {
	nine := domain.NewMoney(decimal.NewFromInt(9), currency.USD)

	assert.True(t, nine.Equal(domain.NewMoney(decimal.RequireFromString("9.000"), currency.USD)))
	assert.False(t, nine.Equal(domain.NewMoney(decimal.NewFromInt(9), currency.EUR)))
	assert.False(t, nine.Equal(domain.NewMoney(decimal.RequireFromString("9.01"), currency.USD)))
	assert.Equal(t, "9 USD", nine.String())
}
