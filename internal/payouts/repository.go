package payouts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wholesale-backend/pkg/db/models"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/pagination"
)

// Repository exposes the partner, financial and distribution persistence
// the payout service needs.
type Repository interface {
	GetPartner(context.Context, uuid.UUID) (*models.Partner, error)
	ListActivePartners(context.Context) ([]models.Partner, error)

	SumPeriodTotals(context.Context, time.Time, time.Time) (PeriodTotals, error)

	FindDistributionByPeriod(context.Context, uuid.UUID, time.Time, time.Time) (*models.ProfitDistribution, error)
	CreateDistribution(context.Context, *models.ProfitDistribution) error
	GetDistribution(context.Context, uuid.UUID) (*models.ProfitDistribution, error)
	SaveDistribution(context.Context, *models.ProfitDistribution) error
	ListDistributions(context.Context, ListFilter) ([]models.ProfitDistribution, *pagination.Cursor, error)

	WithTx(tx *gorm.DB) Repository
}

// ListFilter narrows and pages a distribution listing.
type ListFilter struct {
	PartnerID *uuid.UUID
	Status    *enums.DistributionStatus
	Page      pagination.Params
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetPartner(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *repository) ListActivePartners(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&partners).
		Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

// SumPeriodTotals gathers revenue, COGS, operational costs and returns for
// orders delivered inside the window.
func (r *repository) SumPeriodTotals(ctx context.Context, start, end time.Time) (PeriodTotals, error) {
	var totals PeriodTotals
	tx := r.db.WithContext(ctx)

	type orderSums struct {
		Revenue    int64
		COGS       int64
		OrderCount int64
		Missing    int64
	}
	var sums orderSums
	err := tx.
		Model(&models.OrderLineItem{}).
		Select(`
			COALESCE(SUM(order_line_items.total_cents), 0) AS revenue,
			COALESCE(SUM(COALESCE(order_line_items.total_cost_cents, order_line_items.cost_per_unit_cents * order_line_items.qty)), 0) AS cogs,
			COUNT(DISTINCT orders.id) AS order_count,
			COUNT(*) FILTER (WHERE order_line_items.cost_per_unit_cents IS NULL) AS missing`).
		Joins("JOIN orders ON orders.id = order_line_items.order_id").
		Where("orders.status = ?", enums.OrderStatusDelivered).
		Where("orders.delivered_at >= ? AND orders.delivered_at < ?", start, end).
		Scan(&sums).
		Error
	if err != nil {
		return totals, err
	}
	totals.RevenueCents = sums.Revenue
	totals.COGSCents = sums.COGS
	totals.DeliveredOrderCount = sums.OrderCount
	totals.MissingSnapshotItems = sums.Missing

	err = tx.
		Model(&models.OperationalCost{}).
		Where("incurred_on >= ? AND incurred_on < ?", start, end).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totals.OperationalCostsCents).
		Error
	if err != nil {
		return totals, err
	}

	err = tx.
		Model(&models.OrderReturn{}).
		Where("returned_on >= ? AND returned_on < ?", start, end).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&totals.ReturnsCents).
		Error
	if err != nil {
		return totals, err
	}

	return totals, nil
}

func (r *repository) FindDistributionByPeriod(ctx context.Context, partnerID uuid.UUID, start, end time.Time) (*models.ProfitDistribution, error) {
	var dist models.ProfitDistribution
	err := r.db.WithContext(ctx).
		Where("partner_id = ? AND period_start = ? AND period_end = ?", partnerID, start, end).
		First(&dist).
		Error
	if err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *repository) CreateDistribution(ctx context.Context, dist *models.ProfitDistribution) error {
	return r.db.WithContext(ctx).Create(dist).Error
}

func (r *repository) GetDistribution(ctx context.Context, id uuid.UUID) (*models.ProfitDistribution, error) {
	var dist models.ProfitDistribution
	if err := r.db.WithContext(ctx).First(&dist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dist, nil
}

func (r *repository) SaveDistribution(ctx context.Context, dist *models.ProfitDistribution) error {
	return r.db.WithContext(ctx).Save(dist).Error
}

// ListDistributions pages newest-first with a keyset cursor. The second
// return value is the cursor for the next page, nil when this is the last.
func (r *repository) ListDistributions(ctx context.Context, filter ListFilter) ([]models.ProfitDistribution, *pagination.Cursor, error) {
	tx := r.db.WithContext(ctx).Model(&models.ProfitDistribution{})
	if filter.PartnerID != nil {
		tx = tx.Where("partner_id = ?", *filter.PartnerID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}

	cursor, err := pagination.ParseCursor(filter.Page.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		tx = tx.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(filter.Page.Limit)
	var dists []models.ProfitDistribution
	err = tx.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Page.Limit)).
		Find(&dists).
		Error
	if err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if len(dists) > limit {
		dists = dists[:limit]
		last := dists[len(dists)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return dists, next, nil
}
