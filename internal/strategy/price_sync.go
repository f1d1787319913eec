package strategy

import (
	"context"
	"fmt"

	"commodity-index/config"
	"commodity-index/internal/model"
	"commodity-index/pkg/logger"
)

// PriceSyncer is the market data service as seen by the job runner.
type PriceSyncer interface {
	SyncPrices(ctx context.Context) (int, error)
}

type PriceSyncStrategy struct {
	cfg    *config.Config
	log    *logger.Logger
	syncer PriceSyncer
}

func NewPriceSyncStrategy(cfg *config.Config, log *logger.Logger, syncer PriceSyncer) *PriceSyncStrategy {
	return &PriceSyncStrategy{cfg: cfg, log: log, syncer: syncer}
}

func (s *PriceSyncStrategy) GetType() JobType {
	return JobTypePriceSync
}

func (s *PriceSyncStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	synced, err := s.syncer.SyncPrices(ctx)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}
	if synced == 0 {
		return JobResult{ExitCode: JOB_EXIT_CODE_SKIPPED, Output: "no price observations fetched"}, nil
	}
	return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: fmt.Sprintf("synced %d price observations", synced)}, nil
}
