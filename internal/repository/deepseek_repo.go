package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/httpclient"
	"commodity-index/pkg/logger"

	"golang.org/x/time/rate"
)

type deepseekRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewDeepseekRepository(cfg *config.Config, log *logger.Logger) AIProviderRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Deepseek.MaxRequestPerMinute)
	return &deepseekRepository{
		httpClient:     httpclient.New(cfg.Deepseek.BaseURL, cfg.Deepseek.Timeout, cfg.Deepseek.APIKey),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *deepseekRepository) Provider() model.Provider {
	return model.ProviderDeepseek
}

func (r *deepseekRepository) GeneratePredictions(ctx context.Context, aiModel model.AIModel, commodity model.Commodity, currentPrice float64) ([]dto.PredictionDraft, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	modelSlug := aiModel.ModelSlug
	if modelSlug == "" {
		modelSlug = r.cfg.Deepseek.Model
	}

	body := dto.DeepseekRequest{
		Model: modelSlug,
		Messages: []dto.DeepseekMessage{
			{Role: "user", Content: buildPredictionPrompt(commodity, currentPrice)},
		},
	}

	var result dto.DeepseekResponse
	resp, err := r.httpClient.Post(ctx, "/chat/completions", body, nil, &result)
	if err != nil {
		return nil, fmt.Errorf("deepseek request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepseek returned status %d: %s", resp.StatusCode, string(resp.Body))
	}
	if result.Error != nil {
		return nil, fmt.Errorf("deepseek api error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("deepseek returned no choices")
	}

	return parsePredictionDrafts(result.Choices[0].Message.Content)
}
