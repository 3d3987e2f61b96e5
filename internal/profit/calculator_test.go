package profit

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateItemSplitsSellerFirst(t *testing.T) {
	// selling 100, cost 80, qty 1 -> gross 20; 30% commission on the
	// remainder after a 0% platform cut -> seller 6, platform 14
	breakdown := CalculateItem(1, CostConfig{
		UnitPrice:           decimal.NewFromInt(100),
		CostPerUnit:         decimal.NewFromInt(80),
		SellerCommissionPct: decimal.NewFromInt(30),
	})

	if !breakdown.GrossProfit.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected gross profit 20, got %s", breakdown.GrossProfit)
	}
	if !breakdown.SellerProfit.Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected seller profit 6, got %s", breakdown.SellerProfit)
	}
	if !breakdown.PlatformProfit.Equal(decimal.NewFromInt(14)) {
		t.Errorf("expected platform profit 14, got %s", breakdown.PlatformProfit)
	}
}

func TestCalculateItemSplitConservation(t *testing.T) {
	percents := []int64{0, 1, 13, 20, 33, 50, 77, 100}

	for _, platformPct := range percents {
		for _, commissionPct := range percents {
			breakdown := CalculateItem(7, CostConfig{
				UnitPrice:           decimal.NewFromFloat(99.99),
				CostPerUnit:         decimal.NewFromFloat(61.37),
				ShippingCost:        decimal.NewFromFloat(2.5),
				PlatformProfitPct:   decimal.NewFromInt(platformPct),
				SellerCommissionPct: decimal.NewFromInt(commissionPct),
			})

			sum := breakdown.PlatformProfit.Add(breakdown.SellerProfit)
			if !sum.Equal(breakdown.GrossProfit) {
				t.Errorf("platform %d%% commission %d%%: split %s does not conserve gross %s",
					platformPct, commissionPct, sum, breakdown.GrossProfit)
			}
		}
	}
}

func TestCalculateItemEndToEndScenario(t *testing.T) {
	// unit price 85 resolved upstream, cost 80, qty 150, platform 20%
	breakdown := CalculateItem(150, CostConfig{
		UnitPrice:         decimal.NewFromInt(85),
		CostPerUnit:       decimal.NewFromInt(80),
		PlatformProfitPct: decimal.NewFromInt(20),
	})

	if !breakdown.Revenue.Equal(decimal.NewFromInt(12750)) {
		t.Errorf("expected revenue 12750, got %s", breakdown.Revenue)
	}
	if !breakdown.GrossProfit.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected gross profit 750, got %s", breakdown.GrossProfit)
	}
	// no seller commission: the platform absorbs the full remainder
	if !breakdown.SellerProfit.IsZero() {
		t.Errorf("expected zero seller profit, got %s", breakdown.SellerProfit)
	}
	if !breakdown.PlatformProfit.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected final platform profit 750, got %s", breakdown.PlatformProfit)
	}
}

func TestCalculateItemZeroRevenueGuardsMargin(t *testing.T) {
	breakdown := CalculateItem(10, CostConfig{
		UnitPrice:   decimal.Zero,
		CostPerUnit: decimal.NewFromInt(5),
	})

	if !breakdown.ProfitMargin.IsZero() {
		t.Errorf("expected zero margin on zero revenue, got %s", breakdown.ProfitMargin)
	}
}

func TestCalculateItemIncludesShippingAndHandling(t *testing.T) {
	breakdown := CalculateItem(10, CostConfig{
		UnitPrice:    decimal.NewFromInt(100),
		CostPerUnit:  decimal.NewFromInt(80),
		ShippingCost: decimal.NewFromInt(3),
		HandlingCost: decimal.NewFromInt(2),
	})

	if !breakdown.TotalCost.Equal(decimal.NewFromInt(850)) {
		t.Errorf("expected total cost 850, got %s", breakdown.TotalCost)
	}
	if !breakdown.GrossProfit.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected gross profit 150, got %s", breakdown.GrossProfit)
	}
}

func TestAggregateOrderRecomputesMargin(t *testing.T) {
	// two items with margins 50% and 10%; the naive average would be 30%
	// but the aggregate margin is weighted by revenue
	items := []Breakdown{
		{
			Revenue:     decimal.NewFromInt(100),
			TotalCost:   decimal.NewFromInt(50),
			GrossProfit: decimal.NewFromInt(50),
		},
		{
			Revenue:     decimal.NewFromInt(1000),
			TotalCost:   decimal.NewFromInt(900),
			GrossProfit: decimal.NewFromInt(100),
		},
	}

	total := AggregateOrder(items)
	if !total.Revenue.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("expected revenue 1100, got %s", total.Revenue)
	}
	if !total.GrossProfit.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected gross profit 150, got %s", total.GrossProfit)
	}

	want := decimal.NewFromInt(150).Div(decimal.NewFromInt(1100)).Mul(decimal.NewFromInt(100))
	if !total.ProfitMargin.Equal(want) {
		t.Errorf("expected margin %s, got %s", want, total.ProfitMargin)
	}
}

func TestAggregateOrderEmpty(t *testing.T) {
	total := AggregateOrder(nil)
	if !total.Revenue.IsZero() || !total.ProfitMargin.IsZero() {
		t.Errorf("expected zeroed aggregate, got %+v", total)
	}
}
