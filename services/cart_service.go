package services

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
	"github.com/dhnushshetty/food-cart-jsf/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// UpdateQtyIn needs an explicit quantity; 0 removes the line.
type UpdateQtyIn struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (s *CartService) Get(userID uint) (*CartView, error) {
	c, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, notFoundAs(err, "cart not found for user")
	}
	return toCartView(c), nil
}

// Add puts qty of a menu item in the cart of userID. The first item locks the
// cart to its shop; items of any other shop are refused until the cart is empty.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Quantity < 1 {
		return apperr.BusinessRule("quantity must be at least 1")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.FindByUserForUpdate(tx, userID)
		if err != nil {
			return notFoundAs(err, "cart not found for user")
		}

		m, err := s.MenuRepo.FindByID(tx, in.MenuItemID)
		if err != nil {
			return notFoundAs(err, "menu item not found")
		}

		if c.ShopID == nil {
			shopID := m.ShopID
			c.ShopID = &shopID
		} else if *c.ShopID != m.ShopID {
			return apperr.BusinessRule("cannot mix shops: cart already holds items from another shop")
		}

		if err := s.CartRepo.UpsertItem(tx, c.ID, m.ID, in.Quantity); err != nil {
			return err
		}
		return recalculateCart(tx, s.CartRepo, c)
	})
}

// UpdateQty replaces the quantity of a line; qty <= 0 removes it.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(userID, itemID)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.ownedLine(tx, userID, itemID)
		if err != nil {
			return err
		}
		if err := s.CartRepo.UpdateQty(tx, itemID, qty); err != nil {
			return err
		}
		return recalculateCart(tx, s.CartRepo, c)
	})
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.ownedLine(tx, userID, itemID)
		if err != nil {
			return err
		}
		if err := s.CartRepo.DeleteItem(tx, itemID); err != nil {
			return err
		}
		return recalculateCart(tx, s.CartRepo, c)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.FindByUserForUpdate(tx, userID)
		if err != nil {
			return notFoundAs(err, "cart not found for user")
		}
		if err := s.CartRepo.DeleteItems(tx, c.ID); err != nil {
			return err
		}
		return s.CartRepo.UpdateState(tx, c.ID, nil, decimal.Zero)
	})
}

// ownedLine locks the cart of userID and checks that itemID is one of its lines.
func (s *CartService) ownedLine(tx *gorm.DB, userID, itemID uint) (*entity.Cart, error) {
	c, err := s.CartRepo.FindByUserForUpdate(tx, userID)
	if err != nil {
		return nil, notFoundAs(err, "cart not found for user")
	}
	it, err := s.CartRepo.FindItem(tx, itemID)
	if err != nil {
		return nil, notFoundAs(err, "cart item not found")
	}
	if it.CartID != c.ID {
		return nil, apperr.Forbidden("cart item does not belong to your cart")
	}
	return c, nil
}

// recalculateCart recomputes the total from live menu prices and releases the
// shop lock once the cart has no lines left.
func recalculateCart(tx *gorm.DB, repo *repository.CartRepository, c *entity.Cart) error {
	items, err := repo.FindItems(tx, c.ID)
	if err != nil {
		return err
	}
	total := cartTotal(items)
	shopID := c.ShopID
	if len(items) == 0 {
		shopID = nil
	}
	c.ShopID, c.TotalAmount = shopID, total
	return repo.UpdateState(tx, c.ID, shopID, total)
}

func cartTotal(items []entity.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.MenuItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}
