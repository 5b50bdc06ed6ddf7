package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is created together with its customer and never deleted.
// ShopID is nil exactly when the cart has no items.
type Cart struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"uniqueIndex;not null"`
	User   User `json:"-"`

	ShopID *uint `json:"shopId"`
	Shop   *Shop `json:"-"`

	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null;default:0"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
