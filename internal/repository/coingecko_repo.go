package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/pkg/httpclient"
	"commodity-index/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// CoinGeckoRepository fetches daily prices for crypto commodities tracked
// alongside the traditional ones.
type CoinGeckoRepository interface {
	GetDailyPrices(ctx context.Context, param dto.GetPriceParam) ([]dto.PricePoint, error)
}

type coinGeckoRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewCoinGeckoRepository(cfg *config.Config, log *logger.Logger) CoinGeckoRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.CoinGecko.MaxRequestPerMinute)
	return &coinGeckoRepository{
		httpClient:     httpclient.New(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *coinGeckoRepository) GetDailyPrices(ctx context.Context, param dto.GetPriceParam) ([]dto.PricePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/coins/%s/market_chart", param.SourceSymbol)
	queryParams := map[string]string{
		"vs_currency": "usd",
		"days":        fmt.Sprintf("%d", param.RangeDays),
		"interval":    "daily",
	}
	headers := map[string]string{}
	if r.cfg.CoinGecko.APIKey != "" {
		headers["x-cg-demo-api-key"] = r.cfg.CoinGecko.APIKey
	}

	var chartResp dto.CoinGeckoMarketChartResponse
	operation := func() error {
		resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &chartResp)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			r.logger.WarnContext(ctx, "CoinGecko returned non-OK status",
				logger.IntField("status_code", resp.StatusCode),
				logger.StringField("coin", param.SourceSymbol))
			return fmt.Errorf("coingecko returned status %d", resp.StatusCode)
		}
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)); err != nil {
		return nil, fmt.Errorf("failed to fetch data from coingecko: %w", err)
	}

	if len(chartResp.Prices) == 0 {
		return nil, fmt.Errorf("no price data returned for coin: %s", param.SourceSymbol)
	}

	volumeByDay := make(map[int64]float64, len(chartResp.TotalVolumes))
	for _, pair := range chartResp.TotalVolumes {
		if len(pair) < 2 {
			continue
		}
		day := time.UnixMilli(int64(pair[0])).UTC().Truncate(24 * time.Hour).Unix()
		volumeByDay[day] = pair[1]
	}

	points := make([]dto.PricePoint, 0, len(chartResp.Prices))
	for _, pair := range chartResp.Prices {
		if len(pair) < 2 {
			continue
		}
		day := time.UnixMilli(int64(pair[0])).UTC().Truncate(24 * time.Hour)
		point := dto.PricePoint{Date: day, Price: pair[1]}
		if vol, ok := volumeByDay[day.Unix()]; ok {
			v := vol
			point.Volume = &v
		}
		points = append(points, point)
	}

	return points, nil
}
