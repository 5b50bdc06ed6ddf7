package repository

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsRepository runs the read-only aggregate queries behind the owner dashboard.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// OrderTotals returns the total of every order of the shop in status.
// Summing happens in the caller so no float rounding creeps into money.
func (r *StatsRepository) OrderTotals(shopID uint, status entity.OrderStatus) ([]decimal.Decimal, error) {
	var rows []struct {
		TotalAmount decimal.Decimal
	}
	err := r.db.Model(&entity.Order{}).
		Select("total_amount").
		Where("shop_id = ? AND status = ?", shopID, status).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]decimal.Decimal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.TotalAmount)
	}
	return out, nil
}

func (r *StatsRepository) CountByStatus(shopID uint, status entity.OrderStatus) (int64, error) {
	var cnt int64
	err := r.db.Model(&entity.Order{}).
		Where("shop_id = ? AND status = ?", shopID, status).
		Count(&cnt).Error
	return cnt, err
}

type TopItemRow struct {
	MenuItemID    uint
	Name          string
	TotalQuantity int64
}

// TopSellingItems sums ordered quantities per menu item over every order of the
// shop. Items no longer on the menu drop out through the join.
func (r *StatsRepository) TopSellingItems(shopID uint) ([]TopItemRow, error) {
	var rows []TopItemRow
	err := r.db.Table("order_items AS oi").
		Select("oi.menu_item_id AS menu_item_id, m.name AS name, SUM(oi.quantity) AS total_quantity").
		Joins("JOIN orders o ON o.id = oi.order_id AND o.deleted_at IS NULL").
		Joins("JOIN menu_items m ON m.id = oi.menu_item_id AND m.deleted_at IS NULL").
		Where("o.shop_id = ? AND oi.deleted_at IS NULL", shopID).
		Group("oi.menu_item_id, m.name").
		Order("total_quantity DESC, oi.menu_item_id ASC").
		Scan(&rows).Error
	return rows, err
}
