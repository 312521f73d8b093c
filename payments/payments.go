package payments

import (
	"context"
	"errors"
)

// Charge is the processor-neutral result of a charge attempt. The hosted
// flow fills ClientHandle and the browser finishes the charge; the relay
// flow returns a settled SettlementID directly.
type Charge struct {
	ClientHandle string `json:"client_handle,omitempty"`
	SettlementID string `json:"settlement_id,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ErrUnsupportedFlow is returned when a processor is asked for the charge
// direction the other variant owns (e.g. server-side completion on Stripe).
var ErrUnsupportedFlow = errors.New("charge flow not supported by this processor")

// Processor abstracts the two payment variants. Exactly one is active per
// deployment; both see the same "connected merchant account" concept for
// splitting the charge between restaurant and platform.
type Processor interface {
	Name() string

	// CreateCharge opens a charge for the given minor-unit amount and hands
	// back a client handle for browser-side confirmation.
	CreateCharge(ctx context.Context, amountMinor int64, currency string) (Charge, error)

	// CompleteCharge settles a charge server-side from a client-tokenized
	// card credential.
	CompleteCharge(ctx context.Context, token string, amountMinor int64, currency string) (Charge, error)
}
