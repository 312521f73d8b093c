package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/payment"
	"github.com/samcraw1/walters-kitchen-kiosk/payments"
)

// SetupPaymentRoutes registers the routes of whichever processor variants
// are configured. The two variants expose different paths: hosted intents
// for Stripe, config + server-relay payment for Square.
func SetupPaymentRoutes(r *gin.Engine, stripeProc *payments.StripeProcessor, squareProc *payments.SquareProcessor) {
	if stripeProc != nil {
		r.POST("/api/create-payment-intent", paymentControllers.CreatePaymentIntentHandler(stripeProc))
		r.POST("/api/webhooks/stripe", paymentControllers.StripeWebhookHandler(stripeProc))
	}

	if squareProc != nil {
		r.GET("/api/square/config", paymentControllers.SquareConfigHandler(squareProc))
		r.POST("/api/square/payment", paymentControllers.SquarePaymentHandler(squareProc))
	}
}
