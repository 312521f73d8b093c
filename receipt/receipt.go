package receipt

import (
	"fmt"
	"strings"
	"time"
)

// Width is the thermal printer column count. Item lines pad the name against
// a right-aligned total inside this width.
const Width = 32

type Item struct {
	Name      string
	UnitPrice float64
	Quantity  int
}

type Receipt struct {
	OrderNumber      string
	Items            []Item
	Subtotal         float64
	KioskFee         float64
	Tax              float64
	Total            float64
	CustomerName     string
	CustomerPhone    string
	DeliveryLocation string
	PlacedAt         time.Time
}

// Render produces the fixed-width receipt text. The layout is byte-exact for
// the thermal printers in the field; do not reflow it.
func Render(r Receipt) string {
	name := r.CustomerName
	if name == "" {
		name = "Guest"
	}
	phone := r.CustomerPhone
	if phone == "" {
		phone = "N/A"
	}
	location := r.DeliveryLocation
	if location == "" {
		location = "N/A"
	}

	var b strings.Builder
	b.WriteString("\n================================\n")
	b.WriteString("    WALTER'S KITCHEN\n")
	b.WriteString("    Food Ordering Kiosk\n")
	b.WriteString("================================\n\n")
	fmt.Fprintf(&b, "Order #: %s\n", r.OrderNumber)
	fmt.Fprintf(&b, "Date: %s\n\n", r.PlacedAt.Format("Jan 2, 2006, 3:04 PM"))
	fmt.Fprintf(&b, "Customer: %s\n", name)
	fmt.Fprintf(&b, "Phone: %s\n", phone)
	fmt.Fprintf(&b, "Location: %s\n\n", location)
	b.WriteString("--------------------------------\n")
	b.WriteString("ITEMS:\n")
	b.WriteString("--------------------------------\n")

	for _, item := range r.Items {
		total := fmt.Sprintf("%.2f", item.UnitPrice*float64(item.Quantity))
		line := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		pad := Width - len(line) - len(total) - 1
		if pad < 1 {
			pad = 1
		}
		fmt.Fprintf(&b, "%s%s$%s\n", line, strings.Repeat(" ", pad), total)
	}

	b.WriteString("\n--------------------------------\n")
	fmt.Fprintf(&b, "Subtotal:%s$%.2f\n", strings.Repeat(" ", 14), r.Subtotal)
	fmt.Fprintf(&b, "Kiosk Fee:%s$%.2f\n", strings.Repeat(" ", 13), r.KioskFee)
	fmt.Fprintf(&b, "Tax (8.25%%):%s$%.2f\n", strings.Repeat(" ", 11), r.Tax)
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "TOTAL:%s$%.2f\n", strings.Repeat(" ", 17), r.Total)
	b.WriteString("================================\n")
	b.WriteString("        THANK YOU!\n")
	b.WriteString("================================\n")
	return b.String()
}

// TestReceipt is the fixture fed to the admin test-print endpoint.
func TestReceipt(now time.Time) Receipt {
	return Receipt{
		OrderNumber: "TEST001",
		Items: []Item{
			{Name: "Test Item 1", UnitPrice: 10.00, Quantity: 2},
			{Name: "Test Item 2", UnitPrice: 5.50, Quantity: 1},
		},
		Subtotal:         25.50,
		Tax:              2.35,
		KioskFee:         3.00,
		Total:            30.85,
		CustomerName:     "Test Customer",
		CustomerPhone:    "(555) 123-4567",
		DeliveryLocation: "Table 1",
		PlacedAt:         now,
	}
}
