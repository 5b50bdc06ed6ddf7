package routes

import (
	"github.com/dhnushshetty/food-cart-jsf/configs"
	"github.com/dhnushshetty/food-cart-jsf/controllers"
	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/middlewares"
	"github.com/dhnushshetty/food-cart-jsf/repository"
	"github.com/dhnushshetty/food-cart-jsf/services"
	"github.com/dhnushshetty/food-cart-jsf/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services is the wired application graph behind the routes.
type Services struct {
	Auth  *services.AuthService
	Shop  *services.ShopService
	Menu  *services.MenuService
	Cart  *services.CartService
	Order *services.OrderService
	Stats *services.StatsService
	Hub   *ws.OrderHub
}

// BuildServices wires repositories and services. rdb may be nil.
func BuildServices(db *gorm.DB, cfg *configs.Config, log *zap.Logger, rdb *redis.Client) *Services {
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	var cache services.StatsCache
	if rdb != nil {
		cache = repository.NewStatsCache(rdb, cfg.StatsCacheTTL)
	}
	stats := services.NewStatsService(statsRepo, shopRepo, cache, log)
	hub := ws.NewOrderHub(shopRepo, log)

	orders := services.NewOrderService(db, orderRepo, cartRepo, shopRepo, log, services.Notifiers{hub, stats})
	orders.StrictTransitions = cfg.StrictOrderTransitions

	return &Services{
		Auth:  services.NewAuthService(db, userRepo, cartRepo, shopRepo, cfg.JWTSecret, cfg.JWTTTL, log),
		Shop:  services.NewShopService(shopRepo, menuRepo),
		Menu:  services.NewMenuService(db, menuRepo, shopRepo, cartRepo, stats, log),
		Cart:  services.NewCartService(db, cartRepo, menuRepo),
		Order: orders,
		Stats: stats,
		Hub:   hub,
	}
}

func RegisterRoutes(r *gin.Engine, s *Services, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	authCtrl := controllers.NewAuthController(s.Auth)
	shopCtrl := controllers.NewShopController(s.Shop)
	menuCtrl := controllers.NewMenuController(s.Menu)
	cartCtrl := controllers.NewCartController(s.Cart)
	orderCtrl := controllers.NewOrderController(s.Order)
	ownerOrderCtrl := controllers.NewOwnerOrderController(s.Order, s.Stats)

	api := r.Group("/api")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register/customer", authCtrl.RegisterCustomer)
		a.POST("/register/owner", authCtrl.RegisterOwner)
		a.POST("/login", authCtrl.Login)
	}

	// Catalog (public)
	api.GET("/shops", shopCtrl.List)
	api.GET("/shops/:shopId/menu", shopCtrl.Menu)

	customer := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer)

	cart := api.Group("/cart", customer)
	{
		cart.GET("", cartCtrl.Get)
		cart.DELETE("", cartCtrl.Clear)
		cart.POST("/add", cartCtrl.Add)
		cart.PATCH("/items/:cartItemId", cartCtrl.UpdateQty)
		cart.DELETE("/remove/:cartItemId", cartCtrl.Remove)
	}

	orders := api.Group("/orders", customer)
	{
		orders.POST("/place", orderCtrl.Place)
		orders.GET("/my-history", orderCtrl.History)
		orders.GET("/:orderId", orderCtrl.Detail)
	}

	owner := api.Group("/owner", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleOwner))
	{
		owner.GET("/my-shop", shopCtrl.MyShop)
		owner.PUT("/my-shop", shopCtrl.UpdateMyShop)

		owner.POST("/menu", menuCtrl.Create)
		owner.PUT("/menu/:itemId", menuCtrl.Update)
		owner.DELETE("/menu/:itemId", menuCtrl.Delete)

		owner.GET("/orders", ownerOrderCtrl.List)
		owner.PUT("/orders/:orderId/status", ownerOrderCtrl.UpdateStatus)
		owner.GET("/statistics", ownerOrderCtrl.Statistics)
	}

	// Live order feed
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), s.Hub.HandleWebSocket)
}
