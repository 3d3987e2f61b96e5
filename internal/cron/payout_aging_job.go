package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/wholesale-backend/internal/payouts"
	"github.com/angelmondragon/wholesale-backend/pkg/config"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/pagination"
)

// agingLister is the slice of the payout service the sweep needs.
type agingLister interface {
	List(ctx context.Context, filter payouts.ListFilter) ([]payouts.DistributionDTO, *pagination.Cursor, error)
}

// PayoutAgingJobParams configure the nightly payout aging sweep.
type PayoutAgingJobParams struct {
	Logger  *logger.Logger
	Payouts agingLister
	Policy  config.PolicyConfig
}

// NewPayoutAgingJob builds the job that walks unpaid distributions and logs
// the overdue and urgent ones so operators see stale payouts every cycle.
func NewPayoutAgingJob(params PayoutAgingJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Payouts == nil {
		return nil, fmt.Errorf("payout service required")
	}
	return &payoutAgingJob{
		logg:    params.Logger,
		payouts: params.Payouts,
		policy:  params.Policy,
		now:     time.Now,
	}, nil
}

type payoutAgingJob struct {
	logg    *logger.Logger
	payouts agingLister
	policy  config.PolicyConfig
	now     func() time.Time
}

func (j *payoutAgingJob) Name() string { return "payout-aging-sweep" }

func (j *payoutAgingJob) Run(ctx context.Context) error {
	statuses := []enums.DistributionStatus{
		enums.DistributionStatusPending,
		enums.DistributionStatusApproved,
	}

	var errs error
	overdue, urgent, scanned := 0, 0, 0

	for _, status := range statuses {
		status := status
		cursor := ""
		for {
			dtos, next, err := j.payouts.List(ctx, payouts.ListFilter{
				Status: &status,
				Page:   pagination.Params{Limit: pagination.MaxLimit, Cursor: cursor},
			})
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("list %s distributions: %w", status, err))
				break
			}

			for _, dto := range dtos {
				scanned++
				if !dto.Aging.IsOverdue {
					continue
				}
				overdue++
				logCtx := j.logg.WithFields(ctx, map[string]any{
					"distribution_id":  dto.ID,
					"partner_id":       dto.PartnerID,
					"days_outstanding": dto.Aging.DaysOutstanding,
					"urgency":          dto.Aging.Urgency,
				})
				if dto.Aging.Urgency == enums.PayoutUrgencyHigh {
					urgent++
					j.logg.Warn(logCtx, "distribution payment is urgently overdue")
				} else {
					j.logg.Info(logCtx, "distribution payment is overdue")
				}
			}

			if next == nil {
				break
			}
			cursor = pagination.EncodeCursor(*next)
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"scanned": scanned,
		"overdue": overdue,
		"urgent":  urgent,
	})
	j.logg.Info(logCtx, "payout aging sweep complete")
	return errs
}
