package configs

import (
	"errors"

	"github.com/dhnushshetty/food-cart-jsf/pkg/apperr"
	"github.com/dhnushshetty/food-cart-jsf/services"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var demoMenu = []struct {
	name, desc, price string
}{
	{"Margherita", "Tomato, mozzarella, basil", "8.50"},
	{"Pepperoni", "Tomato, mozzarella, pepperoni", "9.90"},
	{"Garlic Bread", "Four slices", "3.20"},
	{"Cola", "330ml can", "1.50"},
}

// SeedDemoShop creates a demo owner with a small menu the first time it runs.
func SeedDemoShop(cfg *Config, auth *services.AuthService, menu *services.MenuService, log *zap.Logger) error {
	if cfg.DemoOwnerUsername == "" || cfg.DemoOwnerPassword == "" {
		log.Info("skip demo seed: DEMO_OWNER_USERNAME/DEMO_OWNER_PASSWORD not set")
		return nil
	}

	owner, _, err := auth.RegisterOwner(&services.RegisterOwnerIn{
		Username:        cfg.DemoOwnerUsername,
		Email:           cfg.DemoOwnerUsername + "@demo.local",
		Password:        cfg.DemoOwnerPassword,
		ShopName:        "Demo Pizzeria",
		ShopDescription: "Seeded on first start",
		ShopAddress:     "1 Demo Street",
	})
	if errors.Is(err, apperr.ErrConflict) {
		log.Info("demo owner already exists", zap.String("username", cfg.DemoOwnerUsername))
		return nil
	}
	if err != nil {
		return err
	}

	for _, m := range demoMenu {
		price := decimal.RequireFromString(m.price)
		if _, err := menu.Add(owner.ID, &services.MenuItemIn{Name: m.name, Description: m.desc, Price: &price}); err != nil {
			return err
		}
	}
	log.Info("demo shop seeded", zap.Uint("ownerId", owner.ID), zap.Int("menuItems", len(demoMenu)))
	return nil
}
