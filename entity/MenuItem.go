package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	ShopID uint `gorm:"index;not null" json:"shopId"`
	Shop   Shop `json:"-"` // preload only when the shop name is needed

	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string          `gorm:"type:text" json:"image"`
}
