package models

type MenuCategory struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"unique;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}
