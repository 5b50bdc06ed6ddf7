package services

import (
	"time"

	"github.com/dhnushshetty/food-cart-jsf/entity"

	"github.com/shopspring/decimal"
)

// ----- Views returned to controllers -----

type ShopView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Image       string `json:"image"`
}

type MenuItemView struct {
	ID          uint            `json:"id"`
	ShopID      uint            `json:"shopId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type CartItemView struct {
	ID         uint            `json:"id"`
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Image      string          `json:"image"`
}

type CartView struct {
	ID          uint            `json:"id"`
	ShopID      *uint           `json:"shopId"`
	ShopName    string          `json:"shopName,omitempty"`
	Items       []CartItemView  `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type OrderItemView struct {
	ID           uint            `json:"id"`
	MenuItemID   uint            `json:"menuItemId"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder"`
}

type OrderView struct {
	ID               uint               `json:"id"`
	ShopID           uint               `json:"shopId"`
	ShopName         string             `json:"shopName"`
	CustomerID       uint               `json:"customerId"`
	CustomerUsername string             `json:"customerUsername"`
	TotalAmount      decimal.Decimal    `json:"totalAmount"`
	Status           entity.OrderStatus `json:"status"`
	CreatedAt        time.Time          `json:"createdAt"`
	Items            []OrderItemView    `json:"items"`
}

type TopItemView struct {
	MenuItemID    uint   `json:"menuItemId"`
	Name          string `json:"menuItemName"`
	TotalQuantity int64  `json:"totalQuantity"`
}

type StatsView struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	PendingOrdersCount int64           `json:"pendingOrdersCount"`
	TopSellingItems    []TopItemView   `json:"topSellingItems"`
}

// ----- mapping -----

func toShopView(s *entity.Shop) ShopView {
	return ShopView{
		ID: s.ID, Name: s.Name, Description: s.Description, Address: s.Address, Image: s.Image,
	}
}

func toMenuItemView(m *entity.MenuItem) MenuItemView {
	return MenuItemView{
		ID: m.ID, ShopID: m.ShopID, Name: m.Name, Description: m.Description, Price: m.Price, Image: m.Image,
	}
}

// toCartView prices every line from the live menu, the same way the stored total is computed.
func toCartView(c *entity.Cart) *CartView {
	out := &CartView{ID: c.ID, ShopID: c.ShopID, Items: make([]CartItemView, 0, len(c.Items))}
	if c.Shop != nil {
		out.ShopName = c.Shop.Name
	}
	for _, it := range c.Items {
		out.Items = append(out.Items, CartItemView{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Name:       it.MenuItem.Name,
			Price:      it.MenuItem.Price,
			Quantity:   it.Quantity,
			Image:      it.MenuItem.Image,
		})
	}
	out.TotalAmount = cartTotal(c.Items)
	return out
}

func toOrderView(o *entity.Order) OrderView {
	out := OrderView{
		ID:               o.ID,
		ShopID:           o.ShopID,
		ShopName:         o.Shop.Name,
		CustomerID:       o.UserID,
		CustomerUsername: o.User.Username,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		Items:            make([]OrderItemView, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemView{
			ID:           it.ID,
			MenuItemID:   it.MenuItemID,
			Name:         it.MenuItem.Name,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}
	return out
}

func toOrderViews(orders []entity.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderView(&orders[i]))
	}
	return out
}
