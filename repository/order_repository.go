package repository

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// withDetails preloads what an order view needs. Menu items are read unscoped
// so history keeps its names even for items removed from the menu.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Shop").
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.MenuItem", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *OrderRepository) GetOrderWithDetails(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := withDetails(r.DB).First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrdersForUser returns the orders of a customer in creation order.
func (r *OrderRepository) ListOrdersForUser(userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := withDetails(r.DB).
		Where("user_id = ?", userID).
		Order("id").
		Find(&out).Error
	return out, err
}

// ListOrdersForShop returns the orders of a shop, optionally for one status.
func (r *OrderRepository) ListOrdersForShop(shopID uint, status *entity.OrderStatus) ([]entity.Order, error) {
	db := withDetails(r.DB).Where("shop_id = ?", shopID)
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	var out []entity.Order
	err := db.Order("id").Find(&out).Error
	return out, err
}

// UpdateStatus overwrites the status with no guard.
func (r *OrderRepository) UpdateStatus(tx *gorm.DB, orderID uint, to entity.OrderStatus) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Update("status", to).Error
}

// UpdateStatusFromTo only moves the order when it is still in from.
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}
