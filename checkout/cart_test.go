package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemMergesByItemID(t *testing.T) {
	var cart Cart
	cart.AddItem(1, "Burger", 10.00)
	cart.AddItem(2, "Fries", 5.50)
	cart.AddItem(1, "Burger", 10.00)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	var cart Cart
	cart.AddItem(1, "Burger", 10.00)
	// A menu price change after the add has no effect on the open cart.
	cart.AddItem(1, "Burger", 12.00)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.InDelta(t, 10.00, lines[0].UnitPrice, 1e-9)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	var cart Cart
	cart.AddItem(1, "Burger", 10.00)
	cart.AddItem(2, "Fries", 5.50)

	cart.SetQuantity(1, 0)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ItemID)

	cart.SetQuantity(2, -3)
	assert.True(t, cart.IsEmpty())
}

func TestSetQuantityUnknownItemIsNoop(t *testing.T) {
	var cart Cart
	cart.AddItem(1, "Burger", 10.00)
	cart.SetQuantity(99, 5)
	require.Len(t, cart.Lines(), 1)
}

func TestCartTotalsMatchPricingFixture(t *testing.T) {
	var cart Cart
	cart.AddItem(1, "Test Item 1", 10.00)
	cart.SetQuantity(1, 2)
	cart.AddItem(2, "Test Item 2", 5.50)

	totals := cart.Totals()
	assert.InDelta(t, 25.50, totals.Subtotal, 1e-9)
	assert.Equal(t, int64(3085), totals.AmountMinorUnits())
}
