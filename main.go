package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/configs"
	"github.com/dhnushshetty/food-cart-jsf/middlewares"
	"github.com/dhnushshetty/food-cart-jsf/routes"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// optional stats cache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable, stats cache errors will be logged", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
		defer rdb.Close()
	}

	svc := routes.BuildServices(db, cfg, logger, rdb)

	if err := configs.SeedDemoShop(cfg, svc.Auth, svc.Menu, logger); err != nil {
		logger.Fatal("seed demo shop", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go svc.Hub.Run(ctx)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(logger))
	routes.RegisterRoutes(r, svc, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
