package services

import (
	"errors"

	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"

	"gorm.io/gorm"
)

// OrderNotifier is told about committed order changes. Implementations must not block.
type OrderNotifier interface {
	OrderPlaced(o OrderView)
	OrderStatusChanged(o OrderView)
}

// Notifiers fans one event out to several notifiers.
type Notifiers []OrderNotifier

func (n Notifiers) OrderPlaced(o OrderView) {
	for _, x := range n {
		x.OrderPlaced(o)
	}
}

func (n Notifiers) OrderStatusChanged(o OrderView) {
	for _, x := range n {
		x.OrderStatusChanged(o)
	}
}

// ShopStatsInvalidator drops cached statistics of a shop.
type ShopStatsInvalidator interface {
	InvalidateShop(shopID uint)
}

// notFoundAs turns gorm's missing-row error into apperr.ErrNotFound with msg.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("%s", msg)
	}
	return err
}
