package paymentControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"github.com/samcraw1/walters-kitchen-kiosk/payments"
	"github.com/samcraw1/walters-kitchen-kiosk/pricing"
)

// CreatePaymentIntentHandler opens a hosted-intent charge. The kiosk browser
// confirms the intent itself using the returned client secret.
func CreatePaymentIntentHandler(p *payments.StripeProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Amount   float64 `json:"amount" binding:"required"`
			Currency string  `json:"currency"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Currency == "" {
			req.Currency = "usd"
		}

		charge, err := p.CreateCharge(c.Request.Context(), pricing.MinorUnits(req.Amount), req.Currency)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientSecret": charge.ClientHandle})
	}
}

// StripeConnectHandler mints an Express onboarding link for the restaurant.
func StripeConnectHandler(p *payments.StripeProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ReturnURL string `json:"return_url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		accountID, url, err := p.ConnectLink(req.ReturnURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe Connect link"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "accountId": accountID})
	}
}

func StripeStatusHandler(p *payments.StripeProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := p.ConnectStatus()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check Stripe status"})
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// StripeWebhookHandler logs payment_intent.succeeded events. No order state
// transition happens here; the secret only authenticates the sender.
func StripeWebhookHandler(p *payments.StripeProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook error"})
			return
		}

		if p.WebhookSecret == "" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		event, err := p.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook error"})
			return
		}

		if event.Type == "payment_intent.succeeded" {
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err == nil {
				log.Printf("💳 Payment succeeded: %s", intent.ID)
			}
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
