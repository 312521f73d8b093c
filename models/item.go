package models

type MenuItem struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  uint         `gorm:"index;not null" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string       `gorm:"not null" json:"name"`
	Price       float64      `gorm:"not null" json:"price"` // dollars, never negative
	Description string       `json:"description"`
	Available   bool         `json:"available"`
	SortOrder   int          `gorm:"default:0" json:"sort_order"`
}
