package payouts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// PeriodTotals is the raw pre-summed financial data for a date range, as
// read by the repository. All values are integer cents.
type PeriodTotals struct {
	RevenueCents          int64
	COGSCents             int64
	OperationalCostsCents int64
	ReturnsCents          int64
	DeliveredOrderCount   int64
	MissingSnapshotItems  int64
}

// PeriodProfit is the computed net-profit picture for a period. Notices
// flag data-quality problems without failing the computation.
type PeriodProfit struct {
	PeriodStart      time.Time
	PeriodEnd        time.Time
	TotalRevenue     decimal.Decimal
	COGS             decimal.Decimal
	OperationalCosts decimal.Decimal
	Returns          decimal.Decimal
	EstimatedTax     decimal.Decimal
	TotalCosts       decimal.Decimal
	NetProfit        decimal.Decimal
	Notices          []string
}

// ComputePeriodProfit turns raw period totals into a net-profit breakdown.
// Estimated tax is taken as a percentage of revenue. An empty period is not
// an error; it yields zero aggregates and an informational notice.
func ComputePeriodProfit(start, end time.Time, totals PeriodTotals, estimatedTaxPercent float64) PeriodProfit {
	revenue := money.FromCents(totals.RevenueCents)
	cogs := money.FromCents(totals.COGSCents)
	opCosts := money.FromCents(totals.OperationalCostsCents)
	returns := money.FromCents(totals.ReturnsCents)
	tax := money.Percent(revenue, money.PercentFromFloat(estimatedTaxPercent))

	totalCosts := cogs.Add(opCosts).Add(returns).Add(tax)

	result := PeriodProfit{
		PeriodStart:      start,
		PeriodEnd:        end,
		TotalRevenue:     revenue,
		COGS:             cogs,
		OperationalCosts: opCosts,
		Returns:          returns,
		EstimatedTax:     tax,
		TotalCosts:       totalCosts,
		NetProfit:        revenue.Sub(totalCosts),
		Notices:          []string{},
	}

	if totals.DeliveredOrderCount == 0 {
		result.Notices = append(result.Notices, fmt.Sprintf(
			"no delivered orders between %s and %s; aggregates are zero",
			start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	if totals.MissingSnapshotItems > 0 {
		result.Notices = append(result.Notices, fmt.Sprintf(
			"%d line items in the period lack cost snapshots; COGS may be understated",
			totals.MissingSnapshotItems))
	}

	return result
}

// DistributionAmount computes a partner's cut of period net profit, clamped
// at zero. A partner never owes money back through a distribution.
func DistributionAmount(netProfit decimal.Decimal, sharePct float64) decimal.Decimal {
	share := money.Percent(netProfit, money.PercentFromFloat(sharePct))
	return money.ClampNonNegative(share)
}
