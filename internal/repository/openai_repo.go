package repository

import (
	"context"
	"fmt"
	"time"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

type openAIRepository struct {
	client         openai.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewOpenAIRepository(cfg *config.Config, log *logger.Logger) AIProviderRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.OpenAI.MaxRequestPerMinute)
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	return &openAIRepository{
		client:         openai.NewClient(opts...),
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *openAIRepository) Provider() model.Provider {
	return model.ProviderOpenAI
}

func (r *openAIRepository) GeneratePredictions(ctx context.Context, aiModel model.AIModel, commodity model.Commodity, currentPrice float64) ([]dto.PredictionDraft, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	modelSlug := aiModel.ModelSlug
	if modelSlug == "" {
		modelSlug = r.cfg.OpenAI.Model
	}

	completion, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: modelSlug,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPredictionPrompt(commodity, currentPrice)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return parsePredictionDrafts(completion.Choices[0].Message.Content)
}
