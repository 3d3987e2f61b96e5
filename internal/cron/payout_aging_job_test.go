package cron

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/wholesale-backend/internal/payouts"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/pagination"
)

type fakeAgingLister struct {
	byStatus map[enums.DistributionStatus][]payouts.DistributionDTO
	calls    int
}

func (f *fakeAgingLister) List(_ context.Context, filter payouts.ListFilter) ([]payouts.DistributionDTO, *pagination.Cursor, error) {
	f.calls++
	if filter.Status == nil {
		return nil, nil, nil
	}
	return f.byStatus[*filter.Status], nil, nil
}

func TestPayoutAgingJobScansPendingAndApproved(t *testing.T) {
	lister := &fakeAgingLister{
		byStatus: map[enums.DistributionStatus][]payouts.DistributionDTO{
			enums.DistributionStatusPending: {
				{ID: uuid.New(), Aging: payouts.AgingDTO{DaysOutstanding: 5, Urgency: enums.PayoutUrgencyLow}},
			},
			enums.DistributionStatusApproved: {
				{ID: uuid.New(), Aging: payouts.AgingDTO{DaysOutstanding: 45, IsOverdue: true, Urgency: enums.PayoutUrgencyMedium}},
				{ID: uuid.New(), Aging: payouts.AgingDTO{DaysOutstanding: 70, IsOverdue: true, Urgency: enums.PayoutUrgencyHigh}},
			},
		},
	}

	job, err := NewPayoutAgingJob(PayoutAgingJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "cron-test"}),
		Payouts: lister,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected one list call per unpaid status, got %d", lister.calls)
	}
}

func TestNewPayoutAgingJobValidatesParams(t *testing.T) {
	if _, err := NewPayoutAgingJob(PayoutAgingJobParams{Payouts: &fakeAgingLister{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	if _, err := NewPayoutAgingJob(PayoutAgingJobParams{Logger: logg}); err == nil {
		t.Fatal("expected error without payout service")
	}
}
