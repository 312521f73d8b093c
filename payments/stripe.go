package payments

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/samcraw1/walters-kitchen-kiosk/pricing"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

// StripeProcessor implements the hosted-intent flow: the server mints a
// PaymentIntent and the kiosk browser confirms it with the client secret,
// so card data never touches this process.
type StripeProcessor struct {
	api           *client.API
	store         *settings.Store
	WebhookSecret string
}

func NewStripeProcessor(secretKey, webhookSecret string, store *settings.Store) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api, store: store, WebhookSecret: webhookSecret}
}

func (p *StripeProcessor) Name() string { return "stripe" }

func (p *StripeProcessor) CreateCharge(ctx context.Context, amountMinor int64, currency string) (Charge, error) {
	cfg, err := p.store.Load()
	if err != nil {
		// Settings being down must not block checkout; charge without a split.
		log.Printf("⚠️ Settings load failed, charging without split: %v", err)
		cfg = settings.Settings{KioskFee: settings.DefaultKioskFee}
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	ApplySplit(params, cfg)

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return Charge{}, fmt.Errorf("payment intent creation failed: %v", err)
	}
	return Charge{
		ClientHandle: intent.ClientSecret,
		SettlementID: intent.ID,
		Status:       string(intent.Status),
	}, nil
}

// CompleteCharge is browser-side in the hosted-intent flow.
func (p *StripeProcessor) CompleteCharge(ctx context.Context, token string, amountMinor int64, currency string) (Charge, error) {
	return Charge{}, ErrUnsupportedFlow
}

// ApplySplit adds the connected-account fee split to intent params. Without
// a connected account the platform is merchant of record and keeps the full
// amount; with one, the platform keeps only the configured kiosk fee and the
// rest forwards to the restaurant.
func ApplySplit(params *stripe.PaymentIntentParams, cfg settings.Settings) {
	if cfg.StripeConnectedAccountID == "" {
		return
	}
	params.ApplicationFeeAmount = stripe.Int64(pricing.MinorUnits(cfg.KioskFee))
	params.TransferData = &stripe.PaymentIntentTransferDataParams{
		Destination: stripe.String(cfg.StripeConnectedAccountID),
	}
}

// ConnectLink returns an Express onboarding URL for the restaurant,
// creating the connected account on first use and persisting its id.
func (p *StripeProcessor) ConnectLink(returnURL string) (accountID, url string, err error) {
	accountID, err = p.store.Get(settings.KeyStripeConnectedAccountID)
	if err != nil {
		return "", "", err
	}

	if accountID == "" {
		account, err := p.api.Accounts.New(&stripe.AccountParams{
			Type:    stripe.String(string(stripe.AccountTypeExpress)),
			Country: stripe.String("US"),
			Capabilities: &stripe.AccountCapabilitiesParams{
				CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
				Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
			},
		})
		if err != nil {
			return "", "", fmt.Errorf("account creation failed: %v", err)
		}
		accountID = account.ID
		if err := p.store.Put(settings.KeyStripeConnectedAccountID, accountID); err != nil {
			return "", "", err
		}
	}

	link, err := p.api.AccountLinks.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(returnURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		return "", "", fmt.Errorf("account link creation failed: %v", err)
	}
	return accountID, link.URL, nil
}

// ConnectStatus reports the onboarding state of the connected account.
type ConnectStatus struct {
	Connected        bool   `json:"connected"`
	AccountID        string `json:"accountId,omitempty"`
	ChargesEnabled   bool   `json:"chargesEnabled,omitempty"`
	PayoutsEnabled   bool   `json:"payoutsEnabled,omitempty"`
	DetailsSubmitted bool   `json:"detailsSubmitted,omitempty"`
}

func (p *StripeProcessor) ConnectStatus() (ConnectStatus, error) {
	accountID, err := p.store.Get(settings.KeyStripeConnectedAccountID)
	if err != nil {
		return ConnectStatus{}, err
	}
	if accountID == "" {
		return ConnectStatus{}, nil
	}

	account, err := p.api.Accounts.GetByID(accountID, nil)
	if err != nil {
		return ConnectStatus{}, fmt.Errorf("account lookup failed: %v", err)
	}
	return ConnectStatus{
		Connected:        true,
		AccountID:        account.ID,
		ChargesEnabled:   account.ChargesEnabled,
		PayoutsEnabled:   account.PayoutsEnabled,
		DetailsSubmitted: account.DetailsSubmitted,
	}, nil
}

// VerifyWebhook checks the Stripe-Signature header against the configured
// webhook secret and returns the decoded event.
func (p *StripeProcessor) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, p.WebhookSecret)
}
