package repository

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the platform owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Shop{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	)
}
