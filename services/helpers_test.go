package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

type recorder struct {
	mu      sync.Mutex
	placed  []OrderView
	changed []OrderView
}

func (r *recorder) OrderPlaced(o OrderView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed = append(r.placed, o)
}

func (r *recorder) OrderStatusChanged(o OrderView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, o)
}

type testEnv struct {
	DB     *gorm.DB
	Auth   *AuthService
	Shop   *ShopService
	Menu   *MenuService
	Cart   *CartService
	Order  *OrderService
	Stats  *StatsService
	Events *recorder
}

func newEnv(t *testing.T) *testEnv {
	return newEnvWithCache(t, nil)
}

func newEnvWithCache(t *testing.T, cache StatsCache) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	stats := NewStatsService(repository.NewStatsRepository(db), shopRepo, cache, log)
	events := &recorder{}

	return &testEnv{
		DB:     db,
		Auth:   NewAuthService(db, userRepo, cartRepo, shopRepo, "test-secret", time.Hour, log),
		Shop:   NewShopService(shopRepo, menuRepo),
		Menu:   NewMenuService(db, menuRepo, shopRepo, cartRepo, stats, log),
		Cart:   NewCartService(db, cartRepo, menuRepo),
		Order:  NewOrderService(db, orderRepo, cartRepo, shopRepo, log, Notifiers{events, stats}),
		Stats:  stats,
		Events: events,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func (e *testEnv) customer(t *testing.T, name string) uint {
	t.Helper()
	u, err := e.Auth.RegisterCustomer(&RegisterCustomerIn{
		Username: name, Email: name + "@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	return u.ID
}

// owner returns the owner id and the id of the shop created with it.
func (e *testEnv) owner(t *testing.T, name string) (uint, uint) {
	t.Helper()
	u, shop, err := e.Auth.RegisterOwner(&RegisterOwnerIn{
		Username: name, Email: name + "@example.com", Password: "secret123",
		ShopName: name + "'s kitchen", ShopAddress: "1 Main St",
	})
	require.NoError(t, err)
	return u.ID, shop.ID
}

func (e *testEnv) menuItem(t *testing.T, ownerID uint, name, price string) uint {
	t.Helper()
	p := dec(price)
	m, err := e.Menu.Add(ownerID, &MenuItemIn{Name: name, Price: &p})
	require.NoError(t, err)
	return m.ID
}

func (e *testEnv) add(t *testing.T, userID, menuItemID uint, qty int) {
	t.Helper()
	require.NoError(t, e.Cart.Add(userID, &AddToCartIn{MenuItemID: menuItemID, Quantity: qty}))
}
