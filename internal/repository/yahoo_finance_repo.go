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

// YahooFinanceRepository fetches daily closes for hard/soft commodity futures
// symbols (GC=F, CL=F, ZW=F, ...).
type YahooFinanceRepository interface {
	GetDailyPrices(ctx context.Context, param dto.GetPriceParam) ([]dto.PricePoint, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Yahoo.MaxRequestPerMinute)
	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.Yahoo.BaseURL, cfg.Yahoo.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *yahooFinanceRepository) GetDailyPrices(ctx context.Context, param dto.GetPriceParam) ([]dto.PricePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + param.SourceSymbol
	now := time.Now()
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", now.AddDate(0, 0, -param.RangeDays).Unix()),
		"period2":        fmt.Sprintf("%d", now.Unix()),
		"interval":       "1d",
		"includePrePost": "false",
	}
	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":     "application/json, text/plain, */*",
	}

	var yahooResp dto.YahooFinanceResponse
	operation := func() error {
		resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			r.logger.WarnContext(ctx, "Yahoo Finance returned non-OK status",
				logger.IntField("status_code", resp.StatusCode),
				logger.StringField("symbol", param.SourceSymbol))
			return fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
		}
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)); err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol: %s", param.SourceSymbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", param.SourceSymbol)
	}

	quote := result.Indicators.Quote[0]
	points := make([]dto.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		point := dto.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Price: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			point.Volume = quote.Volume[i]
		}
		points = append(points, point)
	}

	return points, nil
}
