package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/wholesale-backend/pkg/logger"
)

const defaultBackfillBatch = 200

// snapshotBackfiller is the slice of the profit service the job needs.
type snapshotBackfiller interface {
	BackfillSnapshots(ctx context.Context, limit int) (int, error)
}

// SnapshotBackfillJobParams configure the snapshot backfill job.
type SnapshotBackfillJobParams struct {
	Logger    *logger.Logger
	Profit    snapshotBackfiller
	BatchSize int
}

// NewSnapshotBackfillJob builds the job that freezes cost snapshots for
// delivered orders whose line items predate snapshot tracking.
func NewSnapshotBackfillJob(params SnapshotBackfillJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Profit == nil {
		return nil, fmt.Errorf("profit service required")
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultBackfillBatch
	}
	return &snapshotBackfillJob{
		logg:   params.Logger,
		profit: params.Profit,
		batch:  batch,
	}, nil
}

type snapshotBackfillJob struct {
	logg   *logger.Logger
	profit snapshotBackfiller
	batch  int
}

func (j *snapshotBackfillJob) Name() string { return "profit-snapshot-backfill" }

func (j *snapshotBackfillJob) Run(ctx context.Context) error {
	processed, err := j.profit.BackfillSnapshots(ctx, j.batch)
	if err != nil {
		return fmt.Errorf("snapshot backfill: %w", err)
	}

	logCtx := j.logg.WithField(ctx, "orders_processed", processed)
	j.logg.Info(logCtx, "profit snapshot backfill complete")
	return nil
}
