package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is immutable once written.
type OrderItem struct {
	gorm.Model
	OrderID uint `json:"orderId" gorm:"index;not null"`

	MenuItemID uint     `json:"menuItemId" gorm:"index;not null"`
	MenuItem   MenuItem `json:"-"` // preload only for the menu name

	Quantity     int             `json:"quantity" gorm:"not null"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder" gorm:"type:decimal(10,2);not null"`
}
