// services/menu_service.go
package services

import (
	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
	"github.com/dhnushshetty/food-cart-jsf/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MenuService struct {
	DB       *gorm.DB
	Repo     *repository.MenuRepository
	ShopRepo *repository.ShopRepository
	CartRepo *repository.CartRepository
	Stats    ShopStatsInvalidator
	Log      *zap.Logger
}

func NewMenuService(
	db *gorm.DB,
	repo *repository.MenuRepository,
	shopRepo *repository.ShopRepository,
	cartRepo *repository.CartRepository,
	stats ShopStatsInvalidator,
	log *zap.Logger,
) *MenuService {
	if stats == nil {
		stats = noStats{}
	}
	return &MenuService{DB: db, Repo: repo, ShopRepo: shopRepo, CartRepo: cartRepo, Stats: stats, Log: log}
}

type noStats struct{}

func (noStats) InvalidateShop(uint) {}

type MenuItemIn struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Image       string           `json:"image"`
}

func (in *MenuItemIn) validate() error {
	if in.Price == nil || in.Price.IsNegative() {
		return apperr.BusinessRule("price must be zero or more")
	}
	return nil
}

func (s *MenuService) Add(ownerID uint, in *MenuItemIn) (*MenuItemView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item entity.MenuItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		shop, err := s.ShopRepo.FindByOwner(tx, ownerID)
		if err != nil {
			return notFoundAs(err, "shop not found for owner")
		}
		item = entity.MenuItem{
			ShopID:      shop.ID,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price.Round(2),
			Image:       in.Image,
		}
		return s.Repo.Create(tx, &item)
	})
	if err != nil {
		return nil, err
	}
	s.Stats.InvalidateShop(item.ShopID)
	v := toMenuItemView(&item)
	return &v, nil
}

// Update rewrites a menu item. Carts pick the new price up on their next read;
// existing orders keep the price they were placed with.
func (s *MenuService) Update(ownerID, itemID uint, in *MenuItemIn) (*MenuItemView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var item *entity.MenuItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.ownedItem(tx, ownerID, itemID)
		if err != nil {
			return err
		}
		fields := map[string]any{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price.Round(2),
			"image":       in.Image,
		}
		if err := s.Repo.Update(tx, m.ID, fields); err != nil {
			return err
		}
		item, err = s.Repo.FindByID(tx, m.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Stats.InvalidateShop(item.ShopID)
	v := toMenuItemView(item)
	return &v, nil
}

// Delete removes a menu item that no order references. Cart lines pointing at
// it go too, and the affected carts are re-totalled.
func (s *MenuService) Delete(ownerID, itemID uint) error {
	var shopID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := s.ownedItem(tx, ownerID, itemID)
		if err != nil {
			return err
		}
		shopID = m.ShopID

		n, err := s.Repo.CountOrderItems(tx, m.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.BusinessRule("cannot delete menu item because it has been ordered by customers; edit it instead")
		}

		cartIDs, err := s.CartRepo.CartIDsByMenuItem(tx, m.ID)
		if err != nil {
			return err
		}
		if err := s.CartRepo.DeleteItemsByMenuItem(tx, m.ID); err != nil {
			return err
		}
		if err := s.Repo.Delete(tx, m.ID); err != nil {
			return err
		}
		for _, id := range cartIDs {
			c, err := s.CartRepo.FindByID(tx, id)
			if err != nil {
				return err
			}
			if err := recalculateCart(tx, s.CartRepo, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Log.Info("menu item deleted", zap.Uint("menuItemId", itemID), zap.Uint("shopId", shopID))
	s.Stats.InvalidateShop(shopID)
	return nil
}

func (s *MenuService) ownedItem(tx *gorm.DB, ownerID, itemID uint) (*entity.MenuItem, error) {
	shop, err := s.ShopRepo.FindByOwner(tx, ownerID)
	if err != nil {
		return nil, notFoundAs(err, "shop not found for owner")
	}
	m, err := s.Repo.FindByID(tx, itemID)
	if err != nil {
		return nil, notFoundAs(err, "menu item not found")
	}
	if m.ShopID != shop.ID {
		return nil, apperr.Forbidden("you can only change menu items of your own shop")
	}
	return m, nil
}
