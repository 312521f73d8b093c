package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/samcraw1/walters-kitchen-kiosk/controllers/order"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, orders *orderControllers.Service) {
	r.POST("/api/orders", orderControllers.CreateOrderHandler(orders))
	r.GET("/api/orders/feed", orderControllers.OrderFeedHandler)
	r.GET("/api/orders/:orderNumber", orderControllers.GetOrderHandler(db))
}
