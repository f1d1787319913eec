package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/internal/repository"
	"commodity-index/pkg/cache"
	"commodity-index/pkg/logger"
)

const priceSyncRangeDays = 30

type MarketDataService interface {
	// SyncPrices pulls recent daily prices for every active commodity from
	// its configured source and appends the new observations.
	SyncPrices(ctx context.Context) (int, error)
	GetActualPrices(ctx context.Context, commodityID uint, limit int) ([]model.ActualPrice, error)
	GetCommodities(ctx context.Context) ([]model.Commodity, error)
}

type marketDataService struct {
	cfg             *config.Config
	log             *logger.Logger
	commodityRepo   repository.CommodityRepository
	actualPriceRepo repository.ActualPriceRepository
	yahooRepo       repository.YahooFinanceRepository
	coinGeckoRepo   repository.CoinGeckoRepository
	cache           cache.Cache
}

func NewMarketDataService(
	cfg *config.Config,
	log *logger.Logger,
	commodityRepo repository.CommodityRepository,
	actualPriceRepo repository.ActualPriceRepository,
	yahooRepo repository.YahooFinanceRepository,
	coinGeckoRepo repository.CoinGeckoRepository,
	inmemoryCache cache.Cache,
) MarketDataService {
	return &marketDataService{
		cfg:             cfg,
		log:             log,
		commodityRepo:   commodityRepo,
		actualPriceRepo: actualPriceRepo,
		yahooRepo:       yahooRepo,
		coinGeckoRepo:   coinGeckoRepo,
		cache:           inmemoryCache,
	}
}

func (s *marketDataService) SyncPrices(ctx context.Context) (int, error) {
	commodities, err := s.commodityRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load commodities: %w", err)
	}

	synced := 0
	for _, c := range commodities {
		points, err := s.fetchPrices(ctx, c)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to fetch prices",
				logger.StringField("commodity", c.Symbol),
				logger.ErrorField(err))
			continue
		}

		prices := make([]model.ActualPrice, 0, len(points))
		for _, p := range points {
			price := model.ActualPrice{
				CommodityID: c.ID,
				Date:        p.Date,
				Price:       strconv.FormatFloat(p.Price, 'f', 4, 64),
				Source:      string(c.PriceSource),
			}
			if p.Volume != nil {
				v := strconv.FormatFloat(*p.Volume, 'f', 4, 64)
				price.Volume = &v
			}
			prices = append(prices, price)
		}

		if err := s.actualPriceRepo.UpsertBulk(ctx, prices); err != nil {
			return synced, fmt.Errorf("failed to store prices for %s: %w", c.Symbol, err)
		}
		s.cache.Delete(fmt.Sprintf(dto.KeyActualPrices, c.ID))
		synced += len(prices)
	}

	s.log.InfoContext(ctx, "Price sync completed", logger.IntField("observations", synced))
	return synced, nil
}

func (s *marketDataService) fetchPrices(ctx context.Context, c model.Commodity) ([]dto.PricePoint, error) {
	param := dto.GetPriceParam{SourceSymbol: c.SourceSymbol, RangeDays: priceSyncRangeDays}
	switch c.PriceSource {
	case model.PriceSourceCoinGecko:
		return s.coinGeckoRepo.GetDailyPrices(ctx, param)
	case model.PriceSourceYahoo:
		return s.yahooRepo.GetDailyPrices(ctx, param)
	default:
		return nil, fmt.Errorf("unknown price source %q for commodity %s", c.PriceSource, c.Symbol)
	}
}

func (s *marketDataService) GetActualPrices(ctx context.Context, commodityID uint, limit int) ([]model.ActualPrice, error) {
	key := fmt.Sprintf(dto.KeyActualPrices, commodityID)
	if limit == 0 {
		if cached, ok := cache.GetTyped[[]model.ActualPrice](s.cache, key); ok {
			return cached, nil
		}
	}

	prices, err := s.actualPriceRepo.GetByCommodity(ctx, commodityID, limit)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		s.cache.Set(key, prices, 5*time.Minute)
	}
	return prices, nil
}

func (s *marketDataService) GetCommodities(ctx context.Context) ([]model.Commodity, error) {
	return s.commodityRepo.GetActive(ctx)
}
