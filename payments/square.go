package payments

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samcraw1/walters-kitchen-kiosk/pricing"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

const (
	squareProdURL    = "https://connect.squareup.com"
	squareSandboxURL = "https://connect.squareupsandbox.com"

	oauthScopes = "PAYMENTS_WRITE MERCHANT_PROFILE_READ"
)

// ErrStateMismatch means the OAuth callback carried a state token that does
// not match the one the kiosk minted, so the redirect is not trusted.
var ErrStateMismatch = errors.New("oauth state mismatch")

// SquareProcessor implements the server-relay flow: the kiosk browser
// tokenizes the card with Square's web SDK and the server charges the
// single-use token.
type SquareProcessor struct {
	ApplicationID string
	AppSecret     string
	AccessToken   string // platform account token, used when no merchant is connected
	LocationID    string
	Environment   string // "production" or "sandbox"

	store   *settings.Store
	BaseURL string
	HTTP    *http.Client
}

func NewSquareProcessor(applicationID, appSecret, accessToken, locationID, environment string, store *settings.Store) *SquareProcessor {
	base := squareProdURL
	if environment == "sandbox" {
		base = squareSandboxURL
	} else {
		environment = "production"
	}
	return &SquareProcessor{
		ApplicationID: applicationID,
		AppSecret:     appSecret,
		AccessToken:   accessToken,
		LocationID:    locationID,
		Environment:   environment,
		store:         store,
		BaseURL:       base,
		HTTP:          &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *SquareProcessor) Name() string { return "square" }

// CreateCharge is browser-side in the relay flow: there is nothing to open
// server-side before the card is tokenized.
func (p *SquareProcessor) CreateCharge(ctx context.Context, amountMinor int64, currency string) (Charge, error) {
	return Charge{}, ErrUnsupportedFlow
}

type squareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type squarePaymentRequest struct {
	SourceID       string       `json:"source_id"`
	IdempotencyKey string       `json:"idempotency_key"`
	AmountMoney    squareMoney  `json:"amount_money"`
	AppFeeMoney    *squareMoney `json:"app_fee_money,omitempty"`
	LocationID     string       `json:"location_id,omitempty"`
}

type squareError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

type squarePaymentResponse struct {
	Payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"payment"`
	Errors []squareError `json:"errors,omitempty"`
}

// buildPayment assembles the payment body and picks the bearer token. With a
// connected merchant the charge runs on the merchant's token and the
// platform keeps app_fee_money; without one the platform token takes the
// whole amount.
func (p *SquareProcessor) buildPayment(token string, amountMinor int64, currency string, cfg settings.Settings) (squarePaymentRequest, string) {
	req := squarePaymentRequest{
		SourceID:       token,
		IdempotencyKey: uuid.NewString(),
		AmountMoney:    squareMoney{Amount: amountMinor, Currency: strings.ToUpper(currency)},
		LocationID:     p.LocationID,
	}
	bearer := p.AccessToken
	if cfg.SquareAccessToken != "" {
		bearer = cfg.SquareAccessToken
		req.AppFeeMoney = &squareMoney{
			Amount:   pricing.MinorUnits(cfg.KioskFee),
			Currency: strings.ToUpper(currency),
		}
	}
	return req, bearer
}

func (p *SquareProcessor) CompleteCharge(ctx context.Context, token string, amountMinor int64, currency string) (Charge, error) {
	cfg, err := p.store.Load()
	if err != nil {
		log.Printf("⚠️ Settings load failed, charging without split: %v", err)
		cfg = settings.Settings{KioskFee: settings.DefaultKioskFee}
	}

	payment, bearer := p.buildPayment(token, amountMinor, currency, cfg)
	jsonData, _ := json.Marshal(payment)

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/v2/payments", bytes.NewBuffer(jsonData))
	if err != nil {
		return Charge{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return Charge{}, fmt.Errorf("failed to reach Square: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var out squarePaymentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Charge{}, fmt.Errorf("failed to parse Square response: %v", err)
	}
	if len(out.Errors) > 0 {
		return Charge{}, fmt.Errorf("square error: %s", out.Errors[0].Detail)
	}
	if resp.StatusCode != http.StatusOK {
		return Charge{}, fmt.Errorf("square API error (%d): %s", resp.StatusCode, string(body))
	}

	return Charge{SettlementID: out.Payment.ID, Status: out.Payment.Status}, nil
}

// AuthURL mints a one-shot anti-forgery state token, persists it and returns
// the Square authorization URL the admin browser is sent to.
func (p *SquareProcessor) AuthURL(redirectURL string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	if err := p.store.Put(settings.KeySquareOAuthState, state); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("client_id", p.ApplicationID)
	q.Set("scope", oauthScopes)
	q.Set("session", "false")
	q.Set("state", state)
	if redirectURL != "" {
		q.Set("redirect_uri", redirectURL)
	}
	return p.BaseURL + "/oauth2/authorize?" + q.Encode(), nil
}

type squareTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	GrantType    string `json:"grant_type"`
}

type squareTokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	MerchantID   string        `json:"merchant_id"`
	Errors       []squareError `json:"errors,omitempty"`
}

// HandleCallback verifies the returned state against the stored token, then
// exchanges the authorization code for merchant credentials. The stored
// state is deleted once used; a later connect attempt mints a fresh one.
func (p *SquareProcessor) HandleCallback(ctx context.Context, code, state string) error {
	stored, err := p.store.Get(settings.KeySquareOAuthState)
	if err != nil {
		return err
	}
	if stored == "" || state != stored {
		return ErrStateMismatch
	}
	if err := p.store.Delete(settings.KeySquareOAuthState); err != nil {
		log.Printf("⚠️ Failed to delete oauth state: %v", err)
	}

	jsonData, _ := json.Marshal(squareTokenRequest{
		ClientID:     p.ApplicationID,
		ClientSecret: p.AppSecret,
		Code:         code,
		GrantType:    "authorization_code",
	})

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/oauth2/token", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Square: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var out squareTokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("failed to parse Square response: %v", err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("square error: %s", out.Errors[0].Detail)
	}
	if resp.StatusCode != http.StatusOK || out.AccessToken == "" {
		return fmt.Errorf("square API error (%d): %s", resp.StatusCode, string(body))
	}

	if err := p.store.Put(settings.KeySquareMerchantID, out.MerchantID); err != nil {
		return err
	}
	if err := p.store.Put(settings.KeySquareAccessToken, out.AccessToken); err != nil {
		return err
	}
	return p.store.Put(settings.KeySquareRefreshToken, out.RefreshToken)
}

// Disconnect drops the merchant credentials; the platform account becomes
// merchant of record again.
func (p *SquareProcessor) Disconnect() error {
	for _, key := range []string{
		settings.KeySquareMerchantID,
		settings.KeySquareAccessToken,
		settings.KeySquareRefreshToken,
	} {
		if err := p.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// MerchantStatus is the admin panel's view of the OAuth connection.
type MerchantStatus struct {
	Connected  bool   `json:"connected"`
	MerchantID string `json:"merchantId,omitempty"`
}

func (p *SquareProcessor) Status() (MerchantStatus, error) {
	cfg, err := p.store.Load()
	if err != nil {
		return MerchantStatus{}, err
	}
	if cfg.SquareMerchantID == "" || cfg.SquareAccessToken == "" {
		return MerchantStatus{}, nil
	}
	return MerchantStatus{Connected: true, MerchantID: cfg.SquareMerchantID}, nil
}

// PublicConfig is what the kiosk browser needs to tokenize cards.
type PublicConfig struct {
	ApplicationID string `json:"applicationId"`
	LocationID    string `json:"locationId"`
	Environment   string `json:"environment"`
}

func (p *SquareProcessor) Config() PublicConfig {
	return PublicConfig{
		ApplicationID: p.ApplicationID,
		LocationID:    p.LocationID,
		Environment:   p.Environment,
	}
}
