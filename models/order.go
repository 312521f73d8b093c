package models

import "time"

type OrderStatus string

// Kiosk orders are created pending and stay pending; the kitchen works off
// the printed receipt and the live feed, not a status column.
const OrderStatusPending OrderStatus = "pending"

type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	OrderNumber      string      `gorm:"index;not null" json:"order_number"`
	Items            []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal         float64     `json:"subtotal"`
	KioskFee         float64     `json:"kiosk_fee"`
	Tax              float64     `json:"tax"`
	Total            float64     `json:"total"`
	CustomerName     string      `json:"customer_name"`
	CustomerPhone    string      `json:"customer_phone"`
	DeliveryLocation string      `json:"delivery_location"`
	PaymentRef       string      `json:"payment_ref"` // processor intent/payment id
	Status           OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

// OrderItem is a snapshot of a cart line at purchase time. Menu price edits
// after the fact do not touch placed orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ItemID    uint    `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
