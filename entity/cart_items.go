package entity

import (
	"time"
)

// CartItem carries no price: totals are always computed from the live menu.
// Lines are hard deleted so the (cart, menu item) key can be reused.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CartID uint `json:"cartId" gorm:"not null;uniqueIndex:idx_cart_menu_item"`

	MenuItemID uint     `json:"menuItemId" gorm:"not null;uniqueIndex:idx_cart_menu_item"`
	MenuItem   MenuItem `json:"-"`

	Quantity int `json:"quantity" gorm:"not null"`
}
