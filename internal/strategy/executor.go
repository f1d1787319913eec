package strategy

import (
	"context"

	"commodity-index/internal/model"
)

const (
	JOB_EXIT_CODE_SUCCESS = 200
	JOB_EXIT_CODE_FAILED  = 500
	JOB_EXIT_CODE_SKIPPED = 204
)

type JobType string

const (
	JobTypeCompositeIndex       JobType = "composite_index_calculate"
	JobTypePriceSync            JobType = "price_sync"
	JobTypePredictionGeneration JobType = "prediction_generate"
	JobTypeDataCleanUp          JobType = "data_cleanup"
)

type JobResult struct {
	ExitCode int32  `json:"exit_code"`
	Output   string `json:"output"`
}

// JobExecutionStrategy defines the interface for different job execution strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job *model.Job) (JobResult, error)
	GetType() JobType
}
