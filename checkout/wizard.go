package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Step is the kiosk checkout screen currently shown.
type Step string

const (
	StepReview       Step = "review"
	StepCustomerInfo Step = "info"
	StepPayment      Step = "payment"
	StepConfirmed    Step = "confirmed"
)

// ConfirmedDisplayTime is how long the confirmation screen stays up before
// the kiosk returns to the menu on its own.
const ConfirmedDisplayTime = 30 * time.Second

// CustomerInfo is collected before payment. All three fields are required;
// this is the only place they are validated.
type CustomerInfo struct {
	Name             string
	Phone            string
	DeliveryLocation string
}

var ErrInfoIncomplete = errors.New("name, phone and delivery location are required")

// Wizard drives the four-screen checkout flow:
// review -> info -> payment -> confirmed. Payment failures keep the wizard
// on the payment step with the error shown; retries are unlimited.
type Wizard struct {
	cart        *Cart
	step        Step
	info        CustomerInfo
	orderNumber string
	paymentErr  string
	confirmedAt time.Time
}

func NewWizard(cart *Cart) *Wizard {
	return &Wizard{cart: cart, step: StepReview}
}

func (w *Wizard) Step() Step           { return w.step }
func (w *Wizard) Cart() *Cart          { return w.cart }
func (w *Wizard) Info() CustomerInfo   { return w.info }
func (w *Wizard) OrderNumber() string  { return w.orderNumber }
func (w *Wizard) PaymentError() string { return w.paymentErr }

// BeginInfo advances from the review screen to customer info.
func (w *Wizard) BeginInfo() error {
	if w.step != StepReview {
		return stepError(w.step, StepReview)
	}
	if w.cart.IsEmpty() {
		return errors.New("cart is empty")
	}
	w.step = StepCustomerInfo
	return nil
}

// SubmitInfo validates the customer fields and advances to payment. On a
// validation failure the wizard stays on the info screen.
func (w *Wizard) SubmitInfo(info CustomerInfo) error {
	if w.step != StepCustomerInfo {
		return stepError(w.step, StepCustomerInfo)
	}
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Phone) == "" ||
		strings.TrimSpace(info.DeliveryLocation) == "" {
		return ErrInfoIncomplete
	}
	w.info = info
	w.step = StepPayment
	return nil
}

// Back steps from info to review or from payment to info.
func (w *Wizard) Back() error {
	switch w.step {
	case StepCustomerInfo:
		w.step = StepReview
	case StepPayment:
		w.paymentErr = ""
		w.step = StepCustomerInfo
	default:
		return stepError(w.step, StepCustomerInfo)
	}
	return nil
}

// PaymentFailed records the processor error for display. The customer stays
// on the payment screen and may retry.
func (w *Wizard) PaymentFailed(message string) {
	if w.step == StepPayment {
		w.paymentErr = message
	}
}

// Confirm records the minted order number, clears the cart and starts the
// return countdown.
func (w *Wizard) Confirm(orderNumber string, now time.Time) error {
	if w.step != StepPayment {
		return stepError(w.step, StepPayment)
	}
	w.orderNumber = orderNumber
	w.paymentErr = ""
	w.confirmedAt = now
	w.step = StepConfirmed
	w.cart.Clear()
	return nil
}

// Cancel abandons checkout from the review or payment screen. The cart
// survives so the customer can keep shopping; the in-progress wizard state
// does not.
func (w *Wizard) Cancel() error {
	if w.step != StepReview && w.step != StepPayment {
		return fmt.Errorf("cannot cancel from %q", w.step)
	}
	w.step = StepReview
	w.info = CustomerInfo{}
	w.paymentErr = ""
	return nil
}

// Finish returns to the menu from the confirmation screen, either on user
// action or once AutoReturnDue reports the countdown elapsed.
func (w *Wizard) Finish() error {
	if w.step != StepConfirmed {
		return stepError(w.step, StepConfirmed)
	}
	w.step = StepReview
	w.info = CustomerInfo{}
	w.orderNumber = ""
	return nil
}

// AutoReturnDue reports whether the confirmation countdown has elapsed.
func (w *Wizard) AutoReturnDue(now time.Time) bool {
	return w.step == StepConfirmed && now.Sub(w.confirmedAt) >= ConfirmedDisplayTime
}

func stepError(got, want Step) error {
	return fmt.Errorf("wizard is on %q, not %q", got, want)
}
