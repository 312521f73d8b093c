package adminControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samcraw1/walters-kitchen-kiosk/printer"
	"github.com/samcraw1/walters-kitchen-kiosk/receipt"
	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

// TestPrint sends the fixture receipt to the configured printer so the admin
// can verify the PrintNode wiring end to end.
func TestPrint(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := store.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		if !cfg.PrintingConfigured() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "PrintNode not configured"})
			return
		}

		printerID, err := strconv.Atoi(cfg.PrintNodePrinterID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid printer id"})
			return
		}

		text := receipt.Render(receipt.TestReceipt(time.Now()))
		if err := printer.NewClient(cfg.PrintNodeAPIKey).SendPrintJob(printerID, "Order Receipt", text); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send print job"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ListPrinters fetches the printers visible to the stored API key, so the
// admin can find the printer id to configure.
func ListPrinters(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := store.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		if cfg.PrintNodeAPIKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "PrintNode API key not configured"})
			return
		}

		printers, err := printer.NewClient(cfg.PrintNodeAPIKey).ListPrinters()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch printers"})
			return
		}
		c.JSON(http.StatusOK, printers)
	}
}
