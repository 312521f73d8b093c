package adminControllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/samcraw1/walters-kitchen-kiosk/models"
)

// GetOrders lists persisted orders, newest first.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// ExportOrdersToExcel streams every order as an xlsx download for
// end-of-day bookkeeping.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "Customer", "Phone", "Location", "Items",
			"Subtotal", "KioskFee", "Tax", "Total", "Status", "PaymentRef", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range orders {
			var lines []string
			for _, item := range order.Items {
				lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(order.OrderNumber)
			row.AddCell().SetValue(order.CustomerName)
			row.AddCell().SetValue(order.CustomerPhone)
			row.AddCell().SetValue(order.DeliveryLocation)
			row.AddCell().SetValue(strings.Join(lines, "; "))
			row.AddCell().SetValue(order.Subtotal)
			row.AddCell().SetValue(order.KioskFee)
			row.AddCell().SetValue(order.Tax)
			row.AddCell().SetValue(order.Total)
			row.AddCell().SetValue(string(order.Status))
			row.AddCell().SetValue(order.PaymentRef)
			row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
