// services/shop_service.go
package services

import (
	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
	"github.com/dhnushshetty/food-cart-jsf/repository"

	"gorm.io/gorm"
)

type ShopService struct {
	Repo     *repository.ShopRepository
	MenuRepo *repository.MenuRepository
}

func NewShopService(repo *repository.ShopRepository, menuRepo *repository.MenuRepository) *ShopService {
	return &ShopService{Repo: repo, MenuRepo: menuRepo}
}

type UpdateShopIn struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address" binding:"required"`
	Image       *string `json:"image"` // nil keeps the current image
}

// all shops
func (s *ShopService) List() ([]ShopView, error) {
	shops, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]ShopView, 0, len(shops))
	for i := range shops {
		out = append(out, toShopView(&shops[i]))
	}
	return out, nil
}

// menu of one shop
func (s *ShopService) Menu(shopID uint) ([]MenuItemView, error) {
	ok, err := s.Repo.Exists(shopID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("shop not found with id: %d", shopID)
	}
	items, err := s.MenuRepo.FindByShop(shopID)
	if err != nil {
		return nil, err
	}
	out := make([]MenuItemView, 0, len(items))
	for i := range items {
		out = append(out, toMenuItemView(&items[i]))
	}
	return out, nil
}

func (s *ShopService) OwnerShop(ownerID uint) (*ShopView, error) {
	shop, err := s.Repo.FindByOwner(s.Repo.DB, ownerID)
	if err != nil {
		return nil, notFoundAs(err, "shop not found for owner")
	}
	v := toShopView(shop)
	return &v, nil
}

func (s *ShopService) UpdateOwnerShop(ownerID uint, in *UpdateShopIn) (*ShopView, error) {
	err := s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		shop, err := s.Repo.FindByOwner(tx, ownerID)
		if err != nil {
			return notFoundAs(err, "shop not found for owner")
		}
		fields := map[string]any{
			"name":        in.Name,
			"description": in.Description,
			"address":     in.Address,
		}
		if in.Image != nil {
			fields["image"] = *in.Image
		}
		return s.Repo.Update(tx, shop.ID, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.OwnerShop(ownerID)
}
