package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samcraw1/walters-kitchen-kiosk/settings"
)

// GetSettings returns the whole settings table as a flat key/value map.
func GetSettings(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := store.All()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

// UpdateSetting upserts a single key.
func UpdateSetting(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Value string `json:"value"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		key := c.Param("key")
		if err := store.Put(key, req.Value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"setting_key": key, "setting_value": req.Value})
	}
}
