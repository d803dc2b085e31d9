package models

import "time"

// OrderStatus represents the kitchen-side lifecycle of a table order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	TableNumber  int         `json:"tableNumber" gorm:"not null"`
	CustomerName string      `json:"customerName" gorm:"not null"`
	Items        []OrderLine `json:"items" gorm:"foreignKey:OrderID"`
	Total        string      `json:"total" gorm:"not null"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	// Display strings rendered by the client at submission time
	Timestamp string    `json:"timestamp"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderLine is one cart line frozen at submission time. Name and unit price
// are snapshots; later menu edits or deletions never touch them.
type OrderLine struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	OrderID    uint   `json:"-" gorm:"not null;index"`
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name" gorm:"not null"`
	Quantity   int    `json:"quantity" gorm:"not null"`
	UnitPrice  string `json:"unitPrice" gorm:"not null"`
}
