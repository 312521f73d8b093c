package pricing

import "math"

const (
	// KioskFee is the fixed platform surcharge added to every order. The
	// kiosk always charges this amount; the processor fee split reads its
	// own configured value (see settings.Settings.KioskFee).
	KioskFee = 3.00

	// TaxRate applies to the fee-inclusive base: the kiosk fee is taxed too.
	TaxRate = 0.0825
)

// Line is one priced cart entry.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Totals carries unrounded amounts; rounding happens only at display or
// minor-unit conversion time.
type Totals struct {
	Subtotal float64
	KioskFee float64
	Tax      float64
	Total    float64
}

// Calculate prices a cart. Tax is charged on subtotal plus kiosk fee.
func Calculate(lines []Line) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	tax := (subtotal + KioskFee) * TaxRate
	return Totals{
		Subtotal: subtotal,
		KioskFee: KioskFee,
		Tax:      tax,
		Total:    subtotal + KioskFee + tax,
	}
}

// AmountMinorUnits is the cent amount sent to the payment processor.
func (t Totals) AmountMinorUnits() int64 {
	return MinorUnits(t.Total)
}

// MinorUnits converts a dollar amount to rounded cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
