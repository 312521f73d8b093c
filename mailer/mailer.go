package mailer

import (
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/samcraw1/walters-kitchen-kiosk/models"
)

const fromAddress = "orders@walters-kitchen.local"

// Notifier emails the restaurant about new kiosk orders through Resend.
// Like printing, it is a fire-and-forget side effect of order creation.
type Notifier struct {
	client *resend.Client
	From   string
	To     string
}

func New(apiKey, to string) *Notifier {
	return &Notifier{
		client: resend.NewClient(apiKey),
		From:   fromAddress,
		To:     to,
	}
}

// SendOrderEmail notifies the restaurant about a freshly placed order.
func (n *Notifier) SendOrderEmail(order models.Order) error {
	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.From,
		To:      []string{n.To},
		Subject: fmt.Sprintf("New Order #%s - Walter's Kitchen Kiosk", order.OrderNumber),
		Html:    OrderEmailHTML(order),
	})
	return err
}

// OrderEmailHTML renders the notification body.
func OrderEmailHTML(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "- %s x%d @ $%.2f\n", item.Name, item.Quantity, item.UnitPrice*float64(item.Quantity))
	}

	return fmt.Sprintf(`<h1>New Kiosk Order</h1>
<p><strong>Order Number:</strong> %s</p>
<p><strong>Customer:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Location:</strong> %s</p>

<h2>Items:</h2>
<pre>%s</pre>

<h2>Order Summary:</h2>
<p>Subtotal: $%.2f</p>
<p>Kiosk Fee: $%.2f</p>
<p>Tax (8.25%%): $%.2f</p>
<p><strong>Total: $%.2f</strong></p>

<p>Payment Reference: %s</p>`,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerPhone,
		order.DeliveryLocation,
		items.String(),
		order.Subtotal,
		order.KioskFee,
		order.Tax,
		order.Total,
		order.PaymentRef,
	)
}
