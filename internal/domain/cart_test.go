package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homies-gc/homies-api/internal/domain"
)

func catalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Pulsera", Type: domain.ProductBracelet, PriceCents: 1500, Stock: 3, Sellable: true},
		{ID: 2, Name: "Polera", Type: domain.ProductClothing, PriceCents: 8000, Stock: 10, Sellable: true},
		{ID: 3, Name: "Llavero", Type: domain.ProductSouvenir, PriceCents: 2000, Stock: 5, Sellable: false},
	}
}

func TestCart_AddLine(t *testing.T) {
	t.Run("caps the quantity at the stock snapshot", func(t *testing.T) {
		cart := domain.NewCart(catalog())

		for i := 0; i < 3; i++ {
			require.NoError(t, cart.AddLine(1))
		}

		err := cart.AddLine(1)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, 3, cart.Quantity(1))
	})

	t.Run("rejects products that are not sellable", func(t *testing.T) {
		cart := domain.NewCart(catalog())

		err := cart.AddLine(3)
		assert.ErrorIs(t, err, domain.ErrProductNotInCatalog)
	})

	t.Run("rejects unknown products", func(t *testing.T) {
		cart := domain.NewCart(catalog())

		err := cart.AddLine(99)
		assert.ErrorIs(t, err, domain.ErrProductNotInCatalog)
	})

	t.Run("captures the unit price at add time", func(t *testing.T) {
		products := catalog()
		cart := domain.NewCart(products)
		require.NoError(t, cart.AddLine(2))

		// A later catalog price change must not affect the cart line.
		products[1].PriceCents = 9999

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, int64(8000), lines[0].UnitPriceCents)
	})
}

func TestCart_ChangeQuantity(t *testing.T) {
	t.Run("keeps the prior quantity when exceeding the snapshot", func(t *testing.T) {
		cart := domain.NewCart(catalog())
		require.NoError(t, cart.AddLine(1))
		require.NoError(t, cart.ChangeQuantity(1, 2))

		err := cart.ChangeQuantity(1, 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, 3, cart.Quantity(1))
	})

	t.Run("removes the line at zero or less", func(t *testing.T) {
		cart := domain.NewCart(catalog())
		require.NoError(t, cart.AddLine(1))

		require.NoError(t, cart.ChangeQuantity(1, -1))
		assert.Equal(t, 0, cart.Quantity(1))
		assert.True(t, cart.IsEmpty())
	})
}

func TestCart_TotalCents(t *testing.T) {
	cart := domain.NewCart(catalog())
	require.NoError(t, cart.AddLine(1))
	require.NoError(t, cart.AddLine(1))
	require.NoError(t, cart.AddLine(2))

	assert.Equal(t, int64(2*1500+8000), cart.TotalCents())
}

func TestCart_Items(t *testing.T) {
	t.Run("empty cart cannot be submitted", func(t *testing.T) {
		cart := domain.NewCart(catalog())

		_, err := cart.Items()
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		cart := domain.NewCart(catalog())
		require.NoError(t, cart.AddLine(2))
		require.NoError(t, cart.AddLine(1))

		items, err := cart.Items()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, uint(2), items[0].ProductID)
		assert.Equal(t, uint(1), items[1].ProductID)
	})
}
