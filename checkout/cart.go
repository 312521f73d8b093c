package checkout

import "github.com/samcraw1/walters-kitchen-kiosk/pricing"

// Line is one cart entry. Lines are unique by item id, and the unit price is
// a snapshot taken when the item is added: menu edits never touch an open
// cart.
type Line struct {
	ItemID    uint
	Name      string
	UnitPrice float64
	Quantity  int
}

// Cart holds the kiosk session's in-progress order. It lives only in memory
// and is discarded when the order is placed or the session resets.
type Cart struct {
	lines []Line
}

// AddItem adds one unit of an item, merging into the existing line if the
// item is already in the cart.
func (c *Cart) AddItem(itemID uint, name string, unitPrice float64) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{ItemID: itemID, Name: name, UnitPrice: unitPrice, Quantity: 1})
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(itemID uint, quantity int) {
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return
	}
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Clear() { c.lines = nil }

// Totals prices the cart with the fixed kiosk fee and fee-inclusive tax.
func (c *Cart) Totals() pricing.Totals {
	lines := make([]pricing.Line, len(c.lines))
	for i, l := range c.lines {
		lines[i] = pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	return pricing.Calculate(lines)
}
