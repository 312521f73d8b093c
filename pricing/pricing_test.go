package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFixture(t *testing.T) {
	// The cart used for test prints: 2x $10.00 + 1x $5.50.
	totals := Calculate([]Line{
		{UnitPrice: 10.00, Quantity: 2},
		{UnitPrice: 5.50, Quantity: 1},
	})

	assert.InDelta(t, 25.50, totals.Subtotal, 1e-9)
	assert.InDelta(t, 3.00, totals.KioskFee, 1e-9)
	assert.InDelta(t, 28.50*0.0825, totals.Tax, 1e-9)
	assert.InDelta(t, 25.50+3.00+28.50*0.0825, totals.Total, 1e-9)
	assert.Equal(t, int64(3085), totals.AmountMinorUnits())
}

func TestCalculateEmptyCartStillCarriesFee(t *testing.T) {
	totals := Calculate(nil)

	assert.Zero(t, totals.Subtotal)
	assert.InDelta(t, 3.00, totals.KioskFee, 1e-9)
	assert.InDelta(t, 3.00*0.0825, totals.Tax, 1e-9)
}

func TestTaxIncludesKioskFee(t *testing.T) {
	carts := [][]Line{
		{{UnitPrice: 0.99, Quantity: 1}},
		{{UnitPrice: 12.25, Quantity: 3}, {UnitPrice: 4.75, Quantity: 2}},
		{{UnitPrice: 100.00, Quantity: 10}},
	}
	for _, cart := range carts {
		totals := Calculate(cart)
		assert.InDelta(t, (totals.Subtotal+totals.KioskFee)*TaxRate, totals.Tax, 1e-9)
		assert.InDelta(t, totals.Subtotal+totals.KioskFee+totals.Tax, totals.Total, 1e-9)
		assert.Equal(t, int64(math.Round(totals.Total*100)), totals.AmountMinorUnits())
	}
}

func TestMinorUnitsRounds(t *testing.T) {
	assert.Equal(t, int64(1050), MinorUnits(10.499))
	assert.Equal(t, int64(1050), MinorUnits(10.504))
	assert.Equal(t, int64(0), MinorUnits(0))
}
