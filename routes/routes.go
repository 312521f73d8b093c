package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	menuControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/menu"
	orderControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/order"
	"github.com/samcraw1/walters-kitchen-kiosk/payments"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

// SetupRoutes is the single entry-point that wires the public kiosk surface,
// the admin surface and whichever payment processor is configured.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *settings.Store, orders *orderControllers.Service, stripeProc *payments.StripeProcessor, squareProc *payments.SquareProcessor) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": db != nil})
	})

	r.GET("/api/menu", menuControllers.GetMenu(db))

	SetupOrderRoutes(r, db, orders)
	SetupPaymentRoutes(r, stripeProc, squareProc)
	SetupAdminRoutes(r, db, store, stripeProc, squareProc)
}
