package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samcraw1/walters-kitchen-kiosk/payments"
	"github.com/samcraw1/walters-kitchen-kiosk/pricing"
)

// SquareConfigHandler exposes the public config the kiosk browser needs to
// tokenize cards with Square's web SDK.
func SquareConfigHandler(p *payments.SquareProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Config())
	}
}

// SquarePaymentHandler settles a charge from a client-tokenized card.
func SquarePaymentHandler(p *payments.SquareProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SourceID string  `json:"sourceId" binding:"required"`
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

		charge, err := p.CompleteCharge(c.Request.Context(), req.SourceID, pricing.MinorUnits(req.Amount), req.Currency)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"paymentId": charge.SettlementID,
			"status":    charge.Status,
		})
	}
}

// SquareAuthURLHandler starts the merchant OAuth connect flow.
func SquareAuthURLHandler(p *payments.SquareProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := p.AuthURL(c.Query("redirect_uri"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create authorization URL"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// SquareCallbackHandler finishes the OAuth flow. Square redirects the
// admin's browser here, so this endpoint cannot require the admin header;
// the one-shot state token authenticates the redirect instead.
func SquareCallbackHandler(p *payments.SquareProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
			return
		}

		if err := p.HandleCallback(c.Request.Context(), code, c.Query("state")); err != nil {
			if errors.Is(err, payments.ErrStateMismatch) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect Square account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"connected": true})
	}
}

func SquareDisconnectHandler(p *payments.SquareProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Disconnect(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect Square account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func SquareStatusHandler(p *payments.SquareProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := p.Status()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check Square status"})
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
