package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"index;not null"`
	User   User `json:"-"` // preload only for the customer name

	ShopID uint `json:"shopId" gorm:"index;not null"`
	Shop   Shop `json:"-"`

	// captured at checkout, never recomputed
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);index;not null"`

	Items []OrderItem `json:"-"`
}
