package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/admin"
	paymentControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/payment"
	"github.com/samcraw1/walters-kitchen-kiosk/middleware"
	"github.com/samcraw1/walters-kitchen-kiosk/payments"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints behind the shared
// admin password header.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, store *settings.Store, stripeProc *payments.StripeProcessor, squareProc *payments.SquareProcessor) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.RequireAdminPassword)
	{
		// ─────────── Menu Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", adminControllers.GetCategories(db))
			categoryAdmin.POST("", adminControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", adminControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", adminControllers.DeleteCategory(db))
		}
		itemAdmin := adminGroup.Group("/items")
		{
			itemAdmin.GET("", adminControllers.GetItems(db))
			itemAdmin.POST("", adminControllers.CreateItem(db))
			itemAdmin.PUT("/:id", adminControllers.UpdateItem(db))
			itemAdmin.DELETE("/:id", adminControllers.DeleteItem(db))
		}

		// ─────────── Settings ───────────
		adminGroup.GET("/settings", adminControllers.GetSettings(store))
		adminGroup.PUT("/settings/:key", adminControllers.UpdateSetting(store))

		// ─────────── Printer Diagnostics ───────────
		adminGroup.POST("/print/test", adminControllers.TestPrint(store))
		adminGroup.GET("/print/printers", adminControllers.ListPrinters(store))

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", adminControllers.GetOrders(db))
			orderAdmin.GET("/export-excel", adminControllers.ExportOrdersToExcel(db))
		}

		// ─────────── Payment Connections ───────────
		if stripeProc != nil {
			adminGroup.POST("/stripe/connect", paymentControllers.StripeConnectHandler(stripeProc))
			adminGroup.GET("/stripe/status", paymentControllers.StripeStatusHandler(stripeProc))
		}
		if squareProc != nil {
			adminGroup.GET("/square/auth-url", paymentControllers.SquareAuthURLHandler(squareProc))
			adminGroup.POST("/square/disconnect", paymentControllers.SquareDisconnectHandler(squareProc))
			adminGroup.GET("/square/status", paymentControllers.SquareStatusHandler(squareProc))
		}
	}

	// Square redirects the admin's browser here, so the callback cannot
	// carry the password header; the one-shot state token stands in for it.
	if squareProc != nil {
		r.GET("/api/admin/square/callback", paymentControllers.SquareCallbackHandler(squareProc))
	}
}
