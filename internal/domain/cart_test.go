package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	redShirt = Product{ID: 1, Title: "Red Shirt", Category: "clothes", Price: 10}
	blueHat  = Product{ID: 2, Title: "Blue Hat", Category: "clothes", Price: 5}
	redMug   = Product{ID: 3, Title: "Red Mug", Category: "home", Price: 8}
)

func TestCartUpsert(t *testing.T) {
	t.Run("new product gets a quantity-1 line appended", func(t *testing.T) {
		cart := Cart{}.Upsert(redShirt)

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 1, cart.Lines[0].ProductID)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
		assert.Equal(t, "Red Shirt", cart.Lines[0].Title)
		assert.Equal(t, 10.0, cart.Lines[0].Price)
	})

	t.Run("existing product is incremented, order and other lines preserved", func(t *testing.T) {
		cart := Cart{}.Upsert(redShirt).Upsert(blueHat).Upsert(redShirt)

		require.Len(t, cart.Lines, 2)
		assert.Equal(t, 1, cart.Lines[0].ProductID)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
		assert.Equal(t, 2, cart.Lines[1].ProductID)
		assert.Equal(t, 1, cart.Lines[1].Quantity)
	})

	t.Run("operations do not mutate the prior cart value", func(t *testing.T) {
		before := Cart{}.Upsert(redShirt)
		_ = before.Upsert(redShirt)
		_ = before.Decrement(1)

		require.Len(t, before.Lines, 1)
		assert.Equal(t, 1, before.Lines[0].Quantity)
	})
}

func TestCartDecrement(t *testing.T) {
	t.Run("quantity above one is decremented", func(t *testing.T) {
		cart := Cart{}.Upsert(blueHat).Upsert(blueHat).Decrement(2)

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	})

	t.Run("quantity one removes the line entirely", func(t *testing.T) {
		cart := Cart{}.Upsert(blueHat).Decrement(2)
		assert.Empty(t, cart.Lines)
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		cart := Cart{}.Upsert(blueHat)
		assert.Equal(t, cart, cart.Decrement(99))
	})

	t.Run("decrement is the left inverse of upsert down to removal", func(t *testing.T) {
		cart := Cart{}.Upsert(redShirt).Upsert(redShirt).Upsert(redShirt)
		for i := 0; i < 3; i++ {
			cart = cart.Decrement(1)
		}
		assert.Empty(t, cart.Lines)
	})
}

func TestCartTotals(t *testing.T) {
	cart := Cart{}.Upsert(redShirt).Upsert(redShirt).Upsert(redMug)

	assert.Equal(t, 28.0, cart.TotalAmount())
	assert.Equal(t, 3, cart.TotalCount())

	t.Run("totals recompute from the line set after every transition", func(t *testing.T) {
		next := cart.Decrement(1)
		assert.Equal(t, 18.0, next.TotalAmount())
		assert.Equal(t, 2, next.TotalCount())
	})

	t.Run("clear leaves zero totals", func(t *testing.T) {
		cleared := cart.Clear()
		assert.Empty(t, cleared.Lines)
		assert.Equal(t, 0.0, cleared.TotalAmount())
		assert.Equal(t, 0, cleared.TotalCount())
	})
}

func TestCartScenario(t *testing.T) {
	// Add product #2 twice, decrement once: one line at quantity 1.
	cart := Cart{}.Upsert(blueHat).Upsert(blueHat).Decrement(2)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].ProductID)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	cart = cart.Clear()
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0.0, cart.TotalAmount())
}
