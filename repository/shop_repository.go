package repository

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"

	"gorm.io/gorm"
)

type ShopRepository struct {
	DB *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{DB: db}
}

func (r *ShopRepository) FindAll() ([]entity.Shop, error) {
	var shops []entity.Shop
	err := r.DB.Order("id").Find(&shops).Error
	return shops, err
}

func (r *ShopRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Shop{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// FindByOwner resolves the single shop of an owner. tx may be r.DB.
func (r *ShopRepository) FindByOwner(tx *gorm.DB, ownerID uint) (*entity.Shop, error) {
	var shop entity.Shop
	if err := tx.Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) Create(tx *gorm.DB, shop *entity.Shop) error {
	return tx.Create(shop).Error
}

func (r *ShopRepository) Update(tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.Model(&entity.Shop{}).Where("id = ?", id).Updates(fields).Error
}
