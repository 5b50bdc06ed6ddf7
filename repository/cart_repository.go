package repository

import (
	"errors"

	"github.com/dhnushshetty/food-cart-jsf/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems loads the cart of a user with its lines and their menu items.
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Shop").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.MenuItem").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create is called once per customer, at registration.
func (r *CartRepository) Create(tx *gorm.DB, c *entity.Cart) error {
	return tx.Create(c).Error
}

// FindByUserForUpdate reads the cart row and locks it until tx ends.
// SQLite ignores the locking clause and serialises writers on its own.
func (r *CartRepository) FindByUserForUpdate(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) FindByID(tx *gorm.DB, cartID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, cartID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindItems returns the lines of a cart with their live menu items.
func (r *CartRepository) FindItems(tx *gorm.DB, cartID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("cart_id = ?", cartID).
		Preload("MenuItem").
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *CartRepository) FindItem(tx *gorm.DB, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := tx.First(&it, itemID).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// UpsertItem merges qty into the existing line for the menu item, or inserts one.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID, menuItemID uint, qty int) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ?", cartID, menuItemID).
		First(&exist).Error
	if err == nil {
		return tx.Model(&exist).Update("quantity", exist.Quantity+qty).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := &entity.CartItem{CartID: cartID, MenuItemID: menuItemID, Quantity: qty}
	return tx.Create(row).Error
}

func (r *CartRepository) UpdateQty(tx *gorm.DB, itemID uint, qty int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).Update("quantity", qty).Error
}

func (r *CartRepository) DeleteItem(tx *gorm.DB, itemID uint) error {
	return tx.Delete(&entity.CartItem{}, itemID).Error
}

// DeleteItems empties a cart.
func (r *CartRepository) DeleteItems(tx *gorm.DB, cartID uint) error {
	return tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

// UpdateState writes the shop lock and total of a cart. A nil shopID empties the lock.
func (r *CartRepository) UpdateState(tx *gorm.DB, cartID uint, shopID *uint, total decimal.Decimal) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"shop_id": shopID, "total_amount": total}).Error
}

// CartIDsByMenuItem lists the carts holding a line for the menu item.
func (r *CartRepository) CartIDsByMenuItem(tx *gorm.DB, menuItemID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&entity.CartItem{}).
		Where("menu_item_id = ?", menuItemID).
		Distinct().
		Pluck("cart_id", &ids).Error
	return ids, err
}

func (r *CartRepository) DeleteItemsByMenuItem(tx *gorm.DB, menuItemID uint) error {
	return tx.Where("menu_item_id = ?", menuItemID).Delete(&entity.CartItem{}).Error
}
