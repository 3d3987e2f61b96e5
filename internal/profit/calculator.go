package profit

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// CostConfig carries everything needed to split one line item's profit.
// CostPerUnit defaults to the product's base price when no dedicated cost is
// tracked; shipping and handling default to zero.
type CostConfig struct {
	UnitPrice           decimal.Decimal
	CostPerUnit         decimal.Decimal
	ShippingCost        decimal.Decimal
	HandlingCost        decimal.Decimal
	PlatformProfitPct   decimal.Decimal
	SellerCommissionPct decimal.Decimal
}

// Breakdown is the profit split for one line item or one whole order.
type Breakdown struct {
	Revenue             decimal.Decimal
	TotalCost           decimal.Decimal
	GrossProfit         decimal.Decimal
	PlatformProfit      decimal.Decimal
	SellerProfit        decimal.Decimal
	ProfitMargin        decimal.Decimal
	PlatformProfitPct   decimal.Decimal
	SellerCommissionPct decimal.Decimal
}

// CalculateItem splits one line item's gross profit between seller and
// platform. The seller's cut is computed first and the platform takes the
// exact remainder, so the two always sum to gross profit with no rounding
// leakage.
func CalculateItem(qty int, config CostConfig) Breakdown {
	qtyDec := decimal.NewFromInt(int64(qty))

	revenue := config.UnitPrice.Mul(qtyDec)
	unitCost := config.CostPerUnit.Add(config.ShippingCost).Add(config.HandlingCost)
	totalCost := unitCost.Mul(qtyDec)
	grossProfit := revenue.Sub(totalCost)

	platformCut := money.Percent(grossProfit, config.PlatformProfitPct)
	remaining := grossProfit.Sub(platformCut)
	sellerProfit := money.Percent(remaining, config.SellerCommissionPct)
	platformProfit := platformCut.Add(remaining.Sub(sellerProfit))

	return Breakdown{
		Revenue:             revenue,
		TotalCost:           totalCost,
		GrossProfit:         grossProfit,
		PlatformProfit:      platformProfit,
		SellerProfit:        sellerProfit,
		ProfitMargin:        money.RatioPercent(grossProfit, revenue),
		PlatformProfitPct:   config.PlatformProfitPct,
		SellerCommissionPct: config.SellerCommissionPct,
	}
}

// AggregateOrder sums per-item breakdowns into an order-level one. The
// order margin is recomputed from the aggregate revenue and profit rather
// than averaged across items, which would misweight differently priced
// lines.
func AggregateOrder(items []Breakdown) Breakdown {
	var total Breakdown
	for _, item := range items {
		total.Revenue = total.Revenue.Add(item.Revenue)
		total.TotalCost = total.TotalCost.Add(item.TotalCost)
		total.GrossProfit = total.GrossProfit.Add(item.GrossProfit)
		total.PlatformProfit = total.PlatformProfit.Add(item.PlatformProfit)
		total.SellerProfit = total.SellerProfit.Add(item.SellerProfit)
	}
	total.ProfitMargin = money.RatioPercent(total.GrossProfit, total.Revenue)
	return total
}
