package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/httpclient"
	"commodity-index/pkg/logger"

	"golang.org/x/time/rate"
)

type anthropicRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewAnthropicRepository(cfg *config.Config, log *logger.Logger) AIProviderRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Anthropic.MaxRequestPerMinute)
	return &anthropicRepository{
		httpClient:     httpclient.New(cfg.Anthropic.BaseURL, cfg.Anthropic.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *anthropicRepository) Provider() model.Provider {
	return model.ProviderAnthropic
}

func (r *anthropicRepository) GeneratePredictions(ctx context.Context, aiModel model.AIModel, commodity model.Commodity, currentPrice float64) ([]dto.PredictionDraft, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	modelSlug := aiModel.ModelSlug
	if modelSlug == "" {
		modelSlug = r.cfg.Anthropic.Model
	}

	body := dto.AnthropicRequest{
		Model:     modelSlug,
		MaxTokens: 2048,
		Messages: []dto.AnthropicMessage{
			{Role: "user", Content: buildPredictionPrompt(commodity, currentPrice)},
		},
	}
	headers := map[string]string{
		"x-api-key":         r.cfg.Anthropic.APIKey,
		"anthropic-version": "2023-06-01",
		"content-type":      "application/json",
	}

	var result dto.AnthropicResponse
	resp, err := r.httpClient.Post(ctx, "/v1/messages", body, headers, &result)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic returned status %d: %s", resp.StatusCode, string(resp.Body))
	}
	if result.Error != nil {
		return nil, fmt.Errorf("anthropic api error: %s", result.Error.Message)
	}

	var sb strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return parsePredictionDrafts(sb.String())
}
