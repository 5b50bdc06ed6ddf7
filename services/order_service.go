package services

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
	"github.com/dhnushshetty/food-cart-jsf/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	ShopRepo *repository.ShopRepository
	Log      *zap.Logger
	Notifier OrderNotifier

	// StrictTransitions makes UpdateStatus follow the pipeline in order_transitions.go.
	StrictTransitions bool
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	shopRepo *repository.ShopRepository,
	log *zap.Logger,
	notifier OrderNotifier,
) *OrderService {
	if notifier == nil {
		notifier = Notifiers{}
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, ShopRepo: shopRepo,
		Log: log, Notifier: notifier,
	}
}

// ----- Checkout -----

// PlaceOrder turns the cart of userID into a PENDING order. Every line is
// priced from the menu at this instant and the cart is drained in the same
// transaction.
func (s *OrderService) PlaceOrder(userID uint) (*OrderView, error) {
	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.FindByUserForUpdate(tx, userID)
		if err != nil {
			return notFoundAs(err, "cart not found for user")
		}
		items, err := s.CartRepo.FindItems(tx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.BusinessRule("cannot place order with empty cart")
		}
		if cart.ShopID == nil {
			return apperr.BusinessRule("cart has no shop associated")
		}

		total := decimal.Zero
		for _, it := range items {
			if it.MenuItem.ID == 0 {
				return apperr.NotFound("menu item %d not found", it.MenuItemID)
			}
			total = total.Add(it.MenuItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		order := entity.Order{
			UserID:      userID,
			ShopID:      *cart.ShopID,
			TotalAmount: total.Round(2),
			Status:      entity.StatusPending,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		// cart lines -> order lines, price locked here
		for _, it := range items {
			oi := entity.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   it.MenuItemID,
				Quantity:     it.Quantity,
				PriceAtOrder: it.MenuItem.Price,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		if err := s.CartRepo.DeleteItems(tx, cart.ID); err != nil {
			return err
		}
		if err := s.CartRepo.UpdateState(tx, cart.ID, nil, decimal.Zero); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.detail(orderID)
	if err != nil {
		return nil, err
	}
	s.Log.Info("order placed",
		zap.Uint("orderId", view.ID),
		zap.Uint("customerId", userID),
		zap.Uint("shopId", view.ShopID),
		zap.String("total", view.TotalAmount.StringFixed(2)),
	)
	s.Notifier.OrderPlaced(*view)
	return view, nil
}

// ----- Customer side -----

func (s *OrderService) History(userID uint) ([]OrderView, error) {
	orders, err := s.Repo.ListOrdersForUser(userID)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders), nil
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderView, error) {
	view, err := s.detail(orderID)
	if err != nil {
		return nil, err
	}
	if view.CustomerID != userID {
		return nil, apperr.Forbidden("order belongs to another customer")
	}
	return view, nil
}

func (s *OrderService) detail(orderID uint) (*OrderView, error) {
	o, err := s.Repo.GetOrderWithDetails(orderID)
	if err != nil {
		return nil, notFoundAs(err, "order not found")
	}
	view := toOrderView(o)
	return &view, nil
}

// ----- Owner side -----

// ListForShop returns the orders of the owner's shop; status may be empty.
func (s *OrderService) ListForShop(ownerID uint, status string) ([]OrderView, error) {
	shop, err := s.ShopRepo.FindByOwner(s.DB, ownerID)
	if err != nil {
		return nil, notFoundAs(err, "shop not found for owner")
	}

	var filter *entity.OrderStatus
	if status != "" {
		st, err := ParseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		filter = &st
	}

	orders, err := s.Repo.ListOrdersForShop(shop.ID, filter)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders), nil
}

// UpdateStatus sets the status of an order of the owner's shop.
func (s *OrderService) UpdateStatus(ownerID, orderID uint, status string) (*OrderView, error) {
	next, err := ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var prev entity.OrderStatus
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		shop, err := s.ShopRepo.FindByOwner(tx, ownerID)
		if err != nil {
			return notFoundAs(err, "shop not found for owner")
		}
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			return notFoundAs(err, "order not found")
		}
		if o.ShopID != shop.ID {
			return apperr.Forbidden("you can only update orders from your own shop")
		}
		prev = o.Status

		if !s.StrictTransitions {
			return s.Repo.UpdateStatus(tx, o.ID, next)
		}
		if !CanTransition(o.Status, next) {
			return apperr.BusinessRule("cannot move order from %s to %s", o.Status, next)
		}
		ok, err := s.Repo.UpdateStatusFromTo(tx, o.ID, o.Status, next)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("order status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.detail(orderID)
	if err != nil {
		return nil, err
	}
	s.Log.Info("order status changed",
		zap.Uint("orderId", orderID),
		zap.Uint("ownerId", ownerID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
	s.Notifier.OrderStatusChanged(*view)
	return view, nil
}
