package strategy

import (
	"context"
	"fmt"

	"commodity-index/config"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"
)

// PredictionGenerator is the prediction service as seen by the job runner.
type PredictionGenerator interface {
	GeneratePredictions(ctx context.Context) (int, error)
}

type PredictionGenerationStrategy struct {
	cfg       *config.Config
	log       *logger.Logger
	generator PredictionGenerator
}

func NewPredictionGenerationStrategy(cfg *config.Config, log *logger.Logger, generator PredictionGenerator) *PredictionGenerationStrategy {
	return &PredictionGenerationStrategy{cfg: cfg, log: log, generator: generator}
}

func (s *PredictionGenerationStrategy) GetType() JobType {
	return JobTypePredictionGeneration
}

func (s *PredictionGenerationStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	created, err := s.generator.GeneratePredictions(ctx)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}
	if created == 0 {
		return JobResult{ExitCode: JOB_EXIT_CODE_SKIPPED, Output: "no predictions generated"}, nil
	}
	return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: fmt.Sprintf("generated %d predictions", created)}, nil
}
