// repository/menu_repository.go
package repository

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// all menu items of a shop
func (r *MenuRepository) FindByShop(shopID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.
		Where("shop_id = ?", shopID).
		Order("id").
		Find(&items).Error
	return items, err
}

// single menu item, read through tx so the price is current for the transaction
func (r *MenuRepository) FindByID(tx *gorm.DB, id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := tx.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(tx *gorm.DB, item *entity.MenuItem) error {
	return tx.Create(item).Error
}

func (r *MenuRepository) Update(tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MenuRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.MenuItem{}, id).Error
}

// CountOrderItems counts order lines that still reference the menu item.
func (r *MenuRepository) CountOrderItems(tx *gorm.DB, menuItemID uint) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.OrderItem{}).Where("menu_item_id = ?", menuItemID).Count(&cnt).Error
	return cnt, err
}
