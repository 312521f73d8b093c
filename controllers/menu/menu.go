package menuControllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/samcraw1/walters-kitchen-kiosk/models"
)

// MenuEntry is the public shape of an orderable item.
type MenuEntry struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// MenuSection is one category's slice of the menu.
type MenuSection struct {
	Category string
	Entries  []MenuEntry
}

// Menu is the ordered menu. It marshals to a JSON object keyed by category
// name with the keys written in category sort order, which the kiosk
// front-end relies on when it iterates the object.
type Menu []MenuSection

func (m Menu) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, section := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(section.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		entries, err := json.Marshal(section.Entries)
		if err != nil {
			return nil, err
		}
		buf.Write(entries)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GetMenu returns available items grouped by category name. Categories come
// out in sort order and items in sort order within each category; a category
// with no available items still appears with an empty list.
func GetMenu(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
			return
		}

		var categories []models.MenuCategory
		if err := db.Order("sort_order").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}

		var items []models.MenuItem
		if err := db.Where("available = ?", true).Order("sort_order").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}

		menu := make(Menu, 0, len(categories))
		for _, category := range categories {
			entries := []MenuEntry{}
			for _, item := range items {
				if item.CategoryID != category.ID {
					continue
				}
				entries = append(entries, MenuEntry{
					ID:          item.ID,
					Name:        item.Name,
					Price:       item.Price,
					Description: item.Description,
				})
			}
			menu = append(menu, MenuSection{Category: category.Name, Entries: entries})
		}

		c.JSON(http.StatusOK, menu)
	}
}
