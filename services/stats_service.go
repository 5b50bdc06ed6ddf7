package services

import (
	"context"
	"time"

	"github.com/dhnushshetty/food-cart-jsf/entity"
	"github.com/dhnushshetty/food-cart-jsf/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// revenueStatus is the status whose orders count as earned revenue.
const revenueStatus = entity.StatusDelivered

// StatsCache is the optional snapshot store in front of the aggregate queries.
// A snapshot is only written back if no invalidation happened since Version.
type StatsCache interface {
	Get(ctx context.Context, shopID uint, out any) (bool, error)
	Version(ctx context.Context, shopID uint) (int64, error)
	SetIfVersion(ctx context.Context, shopID uint, version int64, v any) (bool, error)
	Invalidate(ctx context.Context, shopID uint) error
}

type StatsService struct {
	Repo     *repository.StatsRepository
	ShopRepo *repository.ShopRepository
	Cache    StatsCache // nil: always read the database
	Log      *zap.Logger
}

func NewStatsService(repo *repository.StatsRepository, shopRepo *repository.ShopRepository, cache StatsCache, log *zap.Logger) *StatsService {
	return &StatsService{Repo: repo, ShopRepo: shopRepo, Cache: cache, Log: log}
}

// Dashboard derives revenue, pending count and best sellers for the owner's shop.
func (s *StatsService) Dashboard(ctx context.Context, ownerID uint) (*StatsView, error) {
	shop, err := s.ShopRepo.FindByOwner(s.ShopRepo.DB.WithContext(ctx), ownerID)
	if err != nil {
		return nil, notFoundAs(err, "shop not found for owner")
	}

	cacheable := false
	var version int64
	if s.Cache != nil {
		var cached StatsView
		hit, err := s.Cache.Get(ctx, shop.ID, &cached)
		if err != nil {
			s.Log.Warn("stats cache read failed", zap.Uint("shopId", shop.ID), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
		if version, err = s.Cache.Version(ctx, shop.ID); err != nil {
			s.Log.Warn("stats cache version read failed", zap.Uint("shopId", shop.ID), zap.Error(err))
		} else {
			cacheable = true
		}
	}

	out, err := s.compute(shop.ID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		stored, err := s.Cache.SetIfVersion(ctx, shop.ID, version, out)
		if err != nil {
			s.Log.Warn("stats cache write failed", zap.Uint("shopId", shop.ID), zap.Error(err))
		} else if !stored {
			s.Log.Debug("stats snapshot outdated, not cached", zap.Uint("shopId", shop.ID))
		}
	}
	return out, nil
}

func (s *StatsService) compute(shopID uint) (*StatsView, error) {
	totals, err := s.Repo.OrderTotals(shopID, revenueStatus)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t)
	}

	pending, err := s.Repo.CountByStatus(shopID, entity.StatusPending)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repo.TopSellingItems(shopID)
	if err != nil {
		return nil, err
	}
	top := make([]TopItemView, 0, len(rows))
	for _, r := range rows {
		top = append(top, TopItemView{MenuItemID: r.MenuItemID, Name: r.Name, TotalQuantity: r.TotalQuantity})
	}

	return &StatsView{
		TotalRevenue:       revenue.Round(2),
		PendingOrdersCount: pending,
		TopSellingItems:    top,
	}, nil
}

// InvalidateShop drops the cached snapshot; failures are only logged.
func (s *StatsService) InvalidateShop(shopID uint) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Invalidate(ctx, shopID); err != nil {
		s.Log.Warn("stats cache invalidate failed", zap.Uint("shopId", shopID), zap.Error(err))
	}
}

func (s *StatsService) OrderPlaced(o OrderView) { s.InvalidateShop(o.ShopID) }

func (s *StatsService) OrderStatusChanged(o OrderView) { s.InvalidateShop(o.ShopID) }
