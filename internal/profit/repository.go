package profit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/wholesale-backend/pkg/db/models"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
)

// OrderRepository exposes the order and product reads and snapshot writes
// the profit-report service needs.
type OrderRepository interface {
	GetOrderWithItems(context.Context, uuid.UUID) (*models.Order, error)
	GetProductsByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	ListOrdersMissingSnapshots(context.Context, int) ([]uuid.UUID, error)
	UpdateLineItemSnapshot(context.Context, *models.OrderLineItem) error
	UpdateOrderProfit(context.Context, uuid.UUID, int, float64) error
	UpsertReport(context.Context, *models.ProfitReport) error
	GetReportByOrderID(context.Context, uuid.UUID) (*models.ProfitReport, error)
	WithTx(tx *gorm.DB) OrderRepository
}

// Repository is the GORM-backed implementation.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) OrderRepository {
	return &Repository{db: tx}
}

// GetOrderWithItems loads the order header and its line items.
func (r *Repository) GetOrderWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetProductsByIDs loads the products referenced by order line items, keyed
// by id. Missing products are simply absent from the map.
func (r *Repository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	result := make(map[uuid.UUID]*models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for i := range products {
		result[products[i].ID] = &products[i]
	}
	return result, nil
}

// ListOrdersMissingSnapshots returns delivered orders that still have line
// items without frozen cost snapshots.
func (r *Repository) ListOrdersMissingSnapshots(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Distinct("order_line_items.order_id").
		Joins("JOIN orders ON orders.id = order_line_items.order_id").
		Where("orders.status = ?", enums.OrderStatusDelivered).
		Where("order_line_items.cost_per_unit_cents IS NULL OR order_line_items.total_profit_cents IS NULL").
		Limit(limit).
		Pluck("order_line_items.order_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateLineItemSnapshot persists the frozen financial columns of one item.
func (r *Repository) UpdateLineItemSnapshot(ctx context.Context, item *models.OrderLineItem) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"cost_per_unit_cents":   item.CostPerUnitCents,
			"total_cost_cents":      item.TotalCostCents,
			"profit_per_unit_cents": item.ProfitPerUnitCents,
			"total_profit_cents":    item.TotalProfitCents,
			"platform_profit_cents": item.PlatformProfitCents,
			"seller_profit_cents":   item.SellerProfitCents,
			"profit_margin_pct":     item.ProfitMarginPct,
		}).
		Error
}

// UpdateOrderProfit writes the order-level aggregate profit columns.
func (r *Repository) UpdateOrderProfit(ctx context.Context, orderID uuid.UUID, totalProfitCents int, marginPct float64) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"total_profit_cents": totalProfitCents,
			"profit_margin_pct":  marginPct,
		}).
		Error
}

// UpsertReport writes the profit report, replacing any previous report for
// the same order.
func (r *Repository) UpsertReport(ctx context.Context, report *models.ProfitReport) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"revenue_cents",
				"total_cost_cents",
				"gross_profit_cents",
				"platform_profit_cents",
				"seller_profit_cents",
				"profit_margin_pct",
				"item_count",
				"notices",
				"generated_at",
			}),
		}).
		Create(report).
		Error
}

// GetReportByOrderID loads the persisted report for an order.
func (r *Repository) GetReportByOrderID(ctx context.Context, orderID uuid.UUID) (*models.ProfitReport, error) {
	var report models.ProfitReport
	if err := r.db.WithContext(ctx).First(&report, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
