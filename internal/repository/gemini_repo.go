package repository

import (
	"context"
	"fmt"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type geminiRepository struct {
	genAiClient    *genai.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewGeminiRepository(cfg *config.Config, log *logger.Logger) (AIProviderRepository, error) {
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	return &geminiRepository{
		genAiClient:    genAiClient,
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

func (r *geminiRepository) Provider() model.Provider {
	return model.ProviderGemini
}

func (r *geminiRepository) GeneratePredictions(ctx context.Context, aiModel model.AIModel, commodity model.Commodity, currentPrice float64) ([]dto.PredictionDraft, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	modelSlug := aiModel.ModelSlug
	if modelSlug == "" {
		modelSlug = r.cfg.Gemini.Model
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, modelSlug,
		genai.Text(buildPredictionPrompt(commodity, currentPrice)), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	return parsePredictionDrafts(text)
}
