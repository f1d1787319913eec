package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"commodity-index/config"
	"commodity-index/internal/dto"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"
	"commodity-index/pkg/telegram"
)

// IndexCalculator is the composite index service as seen by the job runner.
type IndexCalculator interface {
	Calculate(ctx context.Context) (*dto.CompositeIndexResult, error)
}

type CompositeIndexStrategy struct {
	cfg        *config.Config
	log        *logger.Logger
	calculator IndexCalculator
	notifier   *telegram.Notifier
}

func NewCompositeIndexStrategy(cfg *config.Config, log *logger.Logger, calculator IndexCalculator, notifier *telegram.Notifier) *CompositeIndexStrategy {
	return &CompositeIndexStrategy{
		cfg:        cfg,
		log:        log,
		calculator: calculator,
		notifier:   notifier,
	}
}

func (s *CompositeIndexStrategy) GetType() JobType {
	return JobTypeCompositeIndex
}

func (s *CompositeIndexStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	result, err := s.calculator.Calculate(ctx)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}

	if s.notifier != nil && s.notifier.Enabled() {
		summary := fmt.Sprintf("*Commodity Sentiment Index*\nOverall: %.2f (%s)\nHard: %.2f | Soft: %.2f\nPredictions: %d",
			result.Overall, result.MarketSentiment, result.Hard, result.Soft, result.TotalPredictions)
		if err := s.notifier.Notify(ctx, summary); err != nil {
			s.log.WarnContext(ctx, "Failed to push index summary", logger.ErrorField(err))
		}
	}

	output, err := json.Marshal(result)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}
	return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: string(output)}, nil
}
