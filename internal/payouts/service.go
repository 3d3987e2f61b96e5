package payouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wholesale-backend/pkg/config"
	"github.com/angelmondragon/wholesale-backend/pkg/db"
	"github.com/angelmondragon/wholesale-backend/pkg/db/models"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wholesale-backend/pkg/errors"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/money"
	"github.com/angelmondragon/wholesale-backend/pkg/pagination"
)

// uniqDistributionConstraint is the Postgres unique index backing the
// duplicate-period guard.
const uniqDistributionConstraint = "uniq_distribution_partner_period"

// Service is the partner payout engine: period aggregation, distribution
// generation, lifecycle transitions and aging.
type Service interface {
	Generate(ctx context.Context, input GenerateInput) (*DistributionDTO, error)
	GenerateForAllPartners(ctx context.Context, periodType enums.PeriodType, start, end time.Time) (*BatchResult, error)
	Transition(ctx context.Context, id uuid.UUID, next enums.DistributionStatus) (*DistributionDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*DistributionDTO, error)
	List(ctx context.Context, filter ListFilter) ([]DistributionDTO, *pagination.Cursor, error)
}

// TxRunner runs a function inside a database transaction. Satisfied by
// *db.Client.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

var _ TxRunner = (*db.Client)(nil)

// GenerateInput identifies one partner-period payout to create.
type GenerateInput struct {
	PartnerID   uuid.UUID
	PeriodType  enums.PeriodType
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// AgingDTO is the derived outstanding/overdue view of a distribution.
// Recomputed on every read, never persisted.
type AgingDTO struct {
	DaysOutstanding int                 `json:"days_outstanding"`
	IsOverdue       bool                `json:"is_overdue"`
	Urgency         enums.PayoutUrgency `json:"urgency"`
}

// DistributionDTO is the API-facing payout record plus its audit breakdown.
type DistributionDTO struct {
	ID                uuid.UUID                `json:"id"`
	PartnerID         uuid.UUID                `json:"partner_id"`
	PeriodType        enums.PeriodType         `json:"period_type"`
	PeriodStart       time.Time                `json:"period_start"`
	PeriodEnd         time.Time                `json:"period_end"`
	TotalRevenueCents int64                    `json:"total_revenue_cents"`
	TotalCostsCents   int64                    `json:"total_costs_cents"`
	NetProfitCents    int64                    `json:"net_profit_cents"`
	PartnerSharePct   float64                  `json:"partner_share_pct"`
	AmountCents       int64                    `json:"amount_cents"`
	Status            enums.DistributionStatus `json:"status"`
	ApprovedAt        *time.Time               `json:"approved_at,omitempty"`
	PaidAt            *time.Time               `json:"paid_at,omitempty"`
	RejectedAt        *time.Time               `json:"rejected_at,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	Aging             AgingDTO                 `json:"aging"`
	Notices           []string                 `json:"notices,omitempty"`
}

// BatchResult reports a multi-partner generation run.
type BatchResult struct {
	Distributions []DistributionDTO `json:"distributions"`
	Notices       []string          `json:"notices,omitempty"`
}

type service struct {
	tx     TxRunner
	repo   Repository
	policy config.PolicyConfig
	logg   *logger.Logger
	now    func() time.Time
}

// NewService wires the payout service.
func NewService(tx TxRunner, repo Repository, policy config.PolicyConfig, logg *logger.Logger) Service {
	return &service{tx: tx, repo: repo, policy: policy, logg: logg, now: time.Now}
}

// Generate aggregates the period and creates one partner's distribution.
// The existence check and insert run in one transaction; the unique index
// on (partner_id, period_start, period_end) backstops concurrent callers.
func (s *service) Generate(ctx context.Context, input GenerateInput) (*DistributionDTO, error) {
	if err := validateGenerateInput(input); err != nil {
		return nil, err
	}

	var dto *DistributionDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		partner, err := repo.GetPartner(ctx, input.PartnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load partner")
		}

		existing, err := repo.FindDistributionByPeriod(ctx, input.PartnerID, input.PeriodStart, input.PeriodEnd)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing distribution")
		}
		if existing != nil {
			return duplicatePeriodError(existing)
		}

		totals, err := repo.SumPeriodTotals(ctx, input.PeriodStart, input.PeriodEnd)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate period totals")
		}
		period := ComputePeriodProfit(input.PeriodStart, input.PeriodEnd, totals, s.policy.EstimatedTaxPercent)
		amount := DistributionAmount(period.NetProfit, partner.ProfitSharePct)

		dist := &models.ProfitDistribution{
			PartnerID:         partner.ID,
			PeriodType:        input.PeriodType,
			PeriodStart:       input.PeriodStart,
			PeriodEnd:         input.PeriodEnd,
			TotalRevenueCents: money.Cents(period.TotalRevenue),
			TotalCostsCents:   money.Cents(period.TotalCosts),
			NetProfitCents:    money.Cents(period.NetProfit),
			PartnerSharePct:   partner.ProfitSharePct,
			AmountCents:       money.Cents(amount),
			Status:            enums.DistributionStatusPending,
		}

		if err := repo.CreateDistribution(ctx, dist); err != nil {
			if db.IsUniqueViolation(err, uniqDistributionConstraint) {
				// lost a race with a concurrent generate
				raced, findErr := repo.FindDistributionByPeriod(ctx, input.PartnerID, input.PeriodStart, input.PeriodEnd)
				if findErr == nil && raced != nil {
					return duplicatePeriodError(raced)
				}
				return pkgerrors.New(pkgerrors.CodeConflict, "distribution already exists for this period")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create distribution")
		}

		dto = s.toDTO(dist, period.Notices)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithPartnerID(ctx, input.PartnerID.String())
	s.logg.Info(ctx, "profit distribution generated")
	return dto, nil
}

// GenerateForAllPartners runs Generate for every active partner over the
// same period. Share percentages summing past 100 are reported as a notice
// rather than rescaled; the configured shares stand.
func (s *service) GenerateForAllPartners(ctx context.Context, periodType enums.PeriodType, start, end time.Time) (*BatchResult, error) {
	partners, err := s.repo.ListActivePartners(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active partners")
	}

	result := &BatchResult{}
	shareSum := 0.0
	for _, partner := range partners {
		shareSum += partner.ProfitSharePct
	}
	if shareSum > 100 {
		result.Notices = append(result.Notices, fmt.Sprintf(
			"active partner shares sum to %.2f%%, exceeding 100%%; distributions overlap the same profit pool", shareSum))
	}

	for _, partner := range partners {
		dto, err := s.Generate(ctx, GenerateInput{
			PartnerID:   partner.ID,
			PeriodType:  periodType,
			PeriodStart: start,
			PeriodEnd:   end,
		})
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeConflict {
				result.Notices = append(result.Notices, fmt.Sprintf(
					"partner %s already has a distribution for this period", partner.ID))
				continue
			}
			return nil, err
		}
		result.Distributions = append(result.Distributions, *dto)
	}
	return result, nil
}

// Transition moves a distribution through its lifecycle. Illegal moves are
// state conflicts, not validation errors: the record exists, its state just
// does not allow the step.
func (s *service) Transition(ctx context.Context, id uuid.UUID, next enums.DistributionStatus) (*DistributionDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown distribution status")
	}

	var dto *DistributionDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		dist, err := repo.GetDistribution(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "distribution not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load distribution")
		}

		if !dist.Status.CanTransitionTo(next) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move distribution from %s to %s", dist.Status, next))
		}

		now := s.now().UTC()
		dist.Status = next
		switch next {
		case enums.DistributionStatusApproved:
			dist.ApprovedAt = &now
		case enums.DistributionStatusPaid:
			dist.PaidAt = &now
		case enums.DistributionStatusRejected:
			dist.RejectedAt = &now
		}

		if err := repo.SaveDistribution(ctx, dist); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save distribution")
		}

		dto = s.toDTO(dist, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"distribution_id": id, "status": next})
	s.logg.Info(ctx, "distribution status changed")
	return dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DistributionDTO, error) {
	dist, err := s.repo.GetDistribution(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "distribution not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load distribution")
	}
	return s.toDTO(dist, nil), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]DistributionDTO, *pagination.Cursor, error) {
	dists, next, err := s.repo.ListDistributions(ctx, filter)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list distributions")
	}

	dtos := make([]DistributionDTO, 0, len(dists))
	for i := range dists {
		dtos = append(dtos, *s.toDTO(&dists[i], nil))
	}
	return dtos, next, nil
}

// ComputeAging derives the outstanding/overdue view for one distribution.
// The clock starts at approval, or creation when not yet approved; paid and
// rejected records are settled and age no further.
func ComputeAging(dist *models.ProfitDistribution, now time.Time, policy config.PolicyConfig) AgingDTO {
	if dist.Status == enums.DistributionStatusPaid || dist.Status == enums.DistributionStatusRejected {
		return AgingDTO{Urgency: enums.PayoutUrgencyLow}
	}

	anchor := dist.CreatedAt
	if dist.ApprovedAt != nil {
		anchor = *dist.ApprovedAt
	}

	days := int(now.Sub(anchor).Hours() / 24)
	if days < 0 {
		days = 0
	}

	aging := AgingDTO{
		DaysOutstanding: days,
		IsOverdue:       days > policy.OverdueDays,
		Urgency:         enums.PayoutUrgencyLow,
	}
	switch {
	case days > policy.UrgentDays:
		aging.Urgency = enums.PayoutUrgencyHigh
	case days > policy.OverdueDays:
		aging.Urgency = enums.PayoutUrgencyMedium
	}
	return aging
}

func (s *service) toDTO(dist *models.ProfitDistribution, notices []string) *DistributionDTO {
	return &DistributionDTO{
		ID:                dist.ID,
		PartnerID:         dist.PartnerID,
		PeriodType:        dist.PeriodType,
		PeriodStart:       dist.PeriodStart,
		PeriodEnd:         dist.PeriodEnd,
		TotalRevenueCents: dist.TotalRevenueCents,
		TotalCostsCents:   dist.TotalCostsCents,
		NetProfitCents:    dist.NetProfitCents,
		PartnerSharePct:   dist.PartnerSharePct,
		AmountCents:       dist.AmountCents,
		Status:            dist.Status,
		ApprovedAt:        dist.ApprovedAt,
		PaidAt:            dist.PaidAt,
		RejectedAt:        dist.RejectedAt,
		CreatedAt:         dist.CreatedAt,
		Aging:             ComputeAging(dist, s.now().UTC(), s.policy),
		Notices:           notices,
	}
}

func validateGenerateInput(input GenerateInput) error {
	if input.PartnerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "partner id is required")
	}
	if !input.PeriodType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown period type")
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return pkgerrors.New(pkgerrors.CodeValidation, "period end must be after period start")
	}
	return nil
}

func duplicatePeriodError(existing *models.ProfitDistribution) error {
	return pkgerrors.New(pkgerrors.CodeConflict, "distribution already exists for this partner and period").
		WithDetails(map[string]any{"existing_distribution_id": existing.ID})
}
