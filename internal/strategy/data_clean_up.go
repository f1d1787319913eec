package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"commodity-index/config"
	"commodity-index/internal/model"
	"commodity-index/internal/repository"
	"commodity-index/pkg/logger"
)

type DataCleanUpPayload struct {
	PriceRetentionDays   int `json:"price_retention_days"`
	HistoryRetentionDays int `json:"history_retention_days"`
}

type DataCleanUpResult struct {
	Table string `json:"table"`
	Total int64  `json:"total"`
	Error string `json:"error,omitempty"`
}

// DataCleanUpStrategy prunes old price observations and task execution
// history. Predictions and index snapshots are kept indefinitely.
type DataCleanUpStrategy struct {
	cfg             *config.Config
	log             *logger.Logger
	actualPriceRepo repository.ActualPriceRepository
	jobRepo         repository.JobRepository
}

func NewDataCleanUpStrategy(cfg *config.Config, log *logger.Logger, actualPriceRepo repository.ActualPriceRepository, jobRepo repository.JobRepository) *DataCleanUpStrategy {
	return &DataCleanUpStrategy{
		cfg:             cfg,
		log:             log,
		actualPriceRepo: actualPriceRepo,
		jobRepo:         jobRepo,
	}
}

func (s *DataCleanUpStrategy) GetType() JobType {
	return JobTypeDataCleanUp
}

func (s *DataCleanUpStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	var payload DataCleanUpPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to unmarshal job payload: %v", err)},
			fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	results := []DataCleanUpResult{}
	hadError := false

	if payload.PriceRetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -payload.PriceRetentionDays)
		deleted, err := s.actualPriceRepo.DeleteOlderThan(ctx, cutoff)
		result := DataCleanUpResult{Table: "actual_prices", Total: deleted}
		if err != nil {
			hadError = true
			result.Error = err.Error()
			s.log.ErrorContext(ctx, "Failed to prune actual prices", logger.ErrorField(err))
		}
		results = append(results, result)
	}

	if payload.HistoryRetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -payload.HistoryRetentionDays)
		deleted, err := s.jobRepo.DeleteTaskHistoryOlderThan(ctx, cutoff)
		result := DataCleanUpResult{Table: "task_execution_history", Total: deleted}
		if err != nil {
			hadError = true
			result.Error = err.Error()
			s.log.ErrorContext(ctx, "Failed to prune task history", logger.ErrorField(err))
		}
		results = append(results, result)
	}

	output, _ := json.Marshal(results)
	if hadError {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: string(output)}, fmt.Errorf("data cleanup finished with errors")
	}
	return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: string(output)}, nil
}
