package profit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wholesale-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/wholesale-backend/pkg/errors"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// Service generates and serves per-order profit reports.
type Service interface {
	GenerateReport(ctx context.Context, orderID uuid.UUID) (*ReportDTO, error)
	GetReport(ctx context.Context, orderID uuid.UUID) (*ReportDTO, error)
	BackfillSnapshots(ctx context.Context, limit int) (int, error)
}

// TxRunner runs a function inside a database transaction. Satisfied by
// *db.Client.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ReportDTO is the API-facing profit report for one order.
type ReportDTO struct {
	OrderID             uuid.UUID `json:"order_id"`
	RevenueCents        int64     `json:"revenue_cents"`
	TotalCostCents      int64     `json:"total_cost_cents"`
	GrossProfitCents    int64     `json:"gross_profit_cents"`
	PlatformProfitCents int64     `json:"platform_profit_cents"`
	SellerProfitCents   int64     `json:"seller_profit_cents"`
	ProfitMarginPct     float64   `json:"profit_margin_pct"`
	ItemCount           int       `json:"item_count"`
	Notices             []string  `json:"notices,omitempty"`
	GeneratedAt         time.Time `json:"generated_at"`
}

type service struct {
	tx   TxRunner
	repo OrderRepository
	logg *logger.Logger
}

// NewService wires the profit-report service.
func NewService(tx TxRunner, repo OrderRepository, logg *logger.Logger) Service {
	return &service{tx: tx, repo: repo, logg: logg}
}

// GenerateReport computes an order's profit report from line-item snapshots,
// freezing snapshots for any legacy items that still lack them. Items with a
// persisted snapshot are never recomputed from current product costs, so
// historical figures survive later cost changes.
func (s *service) GenerateReport(ctx context.Context, orderID uuid.UUID) (*ReportDTO, error) {
	var dto *ReportDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.GetOrderWithItems(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		report, notices, err := s.buildReport(ctx, repo, order)
		if err != nil {
			return err
		}

		if err := repo.UpsertReport(ctx, report); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist profit report")
		}
		totalProfit := int(report.GrossProfitCents)
		if err := repo.UpdateOrderProfit(ctx, orderID, totalProfit, report.ProfitMarginPct); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order profit")
		}

		dto = reportToDTO(report, notices)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithOrderID(ctx, orderID.String())
	s.logg.Info(ctx, "profit report generated")
	return dto, nil
}

// buildReport walks the order's line items, using frozen snapshots where
// present and computing-then-freezing where absent.
func (s *service) buildReport(ctx context.Context, repo OrderRepository, order *models.Order) (*models.ProfitReport, []string, error) {
	productIDs := make([]uuid.UUID, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		if !item.HasProfitSnapshot() && item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}

	products, err := repo.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	notices := []string{}
	breakdowns := make([]Breakdown, 0, len(order.LineItems))

	for i := range order.LineItems {
		item := &order.LineItems[i]

		if item.HasProfitSnapshot() {
			breakdowns = append(breakdowns, breakdownFromSnapshot(item))
			continue
		}

		config, notice := costConfigForItem(item, products)
		if notice != "" {
			notices = append(notices, notice)
		}

		breakdown := CalculateItem(item.Qty, config)
		freezeSnapshot(item, breakdown)
		if err := repo.UpdateLineItemSnapshot(ctx, item); err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "freeze line item snapshot")
		}
		breakdowns = append(breakdowns, breakdown)
	}

	total := AggregateOrder(breakdowns)

	report := &models.ProfitReport{
		OrderID:             order.ID,
		RevenueCents:        money.Cents(total.Revenue),
		TotalCostCents:      money.Cents(total.TotalCost),
		GrossProfitCents:    money.Cents(total.GrossProfit),
		PlatformProfitCents: money.Cents(total.PlatformProfit),
		SellerProfitCents:   money.Cents(total.SellerProfit),
		ProfitMarginPct:     total.ProfitMargin.Round(3).InexactFloat64(),
		ItemCount:           len(order.LineItems),
	}
	if len(notices) > 0 {
		joined := strings.Join(notices, "\n")
		report.Notices = &joined
	}
	return report, notices, nil
}

// costConfigForItem derives a cost config for an item without a snapshot.
// Missing cost data produces a notice rather than a silent zero-cost profit.
func costConfigForItem(item *models.OrderLineItem, products map[uuid.UUID]*models.Product) (CostConfig, string) {
	config := CostConfig{
		UnitPrice: money.FromCents(int64(item.UnitPriceCents)),
	}

	var product *models.Product
	if item.ProductID != nil {
		product = products[*item.ProductID]
	}
	if product == nil {
		return config, fmt.Sprintf(
			"line item %q has no cost snapshot and its product is gone; COGS may be understated", item.Name)
	}

	if product.CostPerUnitCents != nil {
		config.CostPerUnit = money.FromCents(int64(*product.CostPerUnitCents))
	} else {
		config.CostPerUnit = money.FromCents(int64(product.BasePriceCents))
	}
	if product.ShippingCostCents != nil {
		config.ShippingCost = money.FromCents(int64(*product.ShippingCostCents))
	}
	if product.HandlingCostCents != nil {
		config.HandlingCost = money.FromCents(int64(*product.HandlingCostCents))
	}
	config.PlatformProfitPct = decimal.NewFromFloat(product.PlatformProfitPct)
	config.SellerCommissionPct = decimal.NewFromFloat(product.SellerCommissionPct)

	notice := ""
	if product.CostPerUnitCents == nil {
		notice = fmt.Sprintf(
			"line item %q has no tracked unit cost; falling back to the product base price", item.Name)
	}
	return config, notice
}

// breakdownFromSnapshot reconstructs a breakdown from frozen item columns.
// The split and the total cost are part of the snapshot, so regeneration
// reproduces the original report exactly. Legacy rows frozen before the
// split columns existed attribute the gross profit to the platform side;
// the conserved totals are unaffected.
func breakdownFromSnapshot(item *models.OrderLineItem) Breakdown {
	qtyDec := decimal.NewFromInt(int64(item.Qty))
	revenue := money.FromCents(int64(item.UnitPriceCents)).Mul(qtyDec)
	grossProfit := money.FromCents(int64(*item.TotalProfitCents))

	totalCost := money.FromCents(int64(*item.CostPerUnitCents)).Mul(qtyDec)
	if item.TotalCostCents != nil {
		totalCost = money.FromCents(int64(*item.TotalCostCents))
	}

	platformProfit := grossProfit
	sellerProfit := decimal.Zero
	if item.PlatformProfitCents != nil && item.SellerProfitCents != nil {
		platformProfit = money.FromCents(int64(*item.PlatformProfitCents))
		sellerProfit = money.FromCents(int64(*item.SellerProfitCents))
	}

	return Breakdown{
		Revenue:        revenue,
		TotalCost:      totalCost,
		GrossProfit:    grossProfit,
		PlatformProfit: platformProfit,
		SellerProfit:   sellerProfit,
		ProfitMargin:   money.RatioPercent(grossProfit, revenue),
	}
}

// freezeSnapshot writes the computed financials back onto the item the one
// and only time they are derived from live product data. The total cost and
// the platform/seller split are frozen alongside the per-unit figures so the
// report survives regeneration unchanged.
func freezeSnapshot(item *models.OrderLineItem, breakdown Breakdown) {
	qtyDec := decimal.NewFromInt(int64(max(item.Qty, 1)))
	costPerUnit := int(money.Cents(breakdown.TotalCost.DivRound(qtyDec, 2)))
	profitPerUnit := int(money.Cents(breakdown.GrossProfit.DivRound(qtyDec, 2)))
	totalCost := int(money.Cents(breakdown.TotalCost))
	totalProfit := int(money.Cents(breakdown.GrossProfit))
	platformProfit := int(money.Cents(breakdown.PlatformProfit))
	sellerProfit := int(money.Cents(breakdown.SellerProfit))
	margin := breakdown.ProfitMargin.Round(3).InexactFloat64()

	item.CostPerUnitCents = &costPerUnit
	item.TotalCostCents = &totalCost
	item.ProfitPerUnitCents = &profitPerUnit
	item.TotalProfitCents = &totalProfit
	item.PlatformProfitCents = &platformProfit
	item.SellerProfitCents = &sellerProfit
	item.ProfitMarginPct = &margin
}

func (s *service) GetReport(ctx context.Context, orderID uuid.UUID) (*ReportDTO, error) {
	report, err := s.repo.GetReportByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profit report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profit report")
	}

	var notices []string
	if report.Notices != nil {
		notices = strings.Split(*report.Notices, "\n")
	}
	return reportToDTO(report, notices), nil
}

// BackfillSnapshots regenerates reports for delivered orders whose items
// still lack snapshots. Used by the nightly worker.
func (s *service) BackfillSnapshots(ctx context.Context, limit int) (int, error) {
	ids, err := s.repo.ListOrdersMissingSnapshots(ctx, limit)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders missing snapshots")
	}

	processed := 0
	for _, id := range ids {
		if _, err := s.GenerateReport(ctx, id); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

func reportToDTO(report *models.ProfitReport, notices []string) *ReportDTO {
	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}
	return &ReportDTO{
		OrderID:             report.OrderID,
		RevenueCents:        report.RevenueCents,
		TotalCostCents:      report.TotalCostCents,
		GrossProfitCents:    report.GrossProfitCents,
		PlatformProfitCents: report.PlatformProfitCents,
		SellerProfitCents:   report.SellerProfitCents,
		ProfitMarginPct:     report.ProfitMarginPct,
		ItemCount:           report.ItemCount,
		Notices:             notices,
		GeneratedAt:         generatedAt,
	}
}
