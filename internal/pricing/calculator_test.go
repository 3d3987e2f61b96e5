package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wholesale-backend/pkg/enums"
)

func testProduct() ProductPricing {
	return ProductPricing{
		BasePrice:      decimal.NewFromInt(80),
		WholesalePrice: decimal.NewFromInt(100),
		MOQ:            intPtr(10),
		StockQty:       500,
		Tiers:          testTiers(),
	}
}

func TestCalculateBelowMOQReturnsZeroedSentinel(t *testing.T) {
	calc := Calculate(testProduct(), 5)

	if calc.MeetsMinimum {
		t.Fatal("expected MeetsMinimum false below MOQ")
	}
	if !calc.UnitPrice.IsZero() || !calc.TotalPrice.IsZero() {
		t.Errorf("expected zeroed prices, got unit %s total %s", calc.UnitPrice, calc.TotalPrice)
	}
	if calc.MinimumRequired != 10 {
		t.Errorf("expected minimum required 10, got %d", calc.MinimumRequired)
	}
	if calc.AppliedTier != nil {
		t.Error("expected no applied tier on a rejected quote")
	}
}

func TestCalculateNoTierFallsBackToWholesale(t *testing.T) {
	product := testProduct()
	product.Tiers = nil

	calc := Calculate(product, 20)
	if calc.PriceType != enums.PriceTypeWholesale {
		t.Errorf("expected wholesale price type, got %s", calc.PriceType)
	}
	if !calc.UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected unit price 100, got %s", calc.UnitPrice)
	}
	if !calc.Savings.IsZero() {
		t.Errorf("expected zero savings at the base wholesale rate, got %s", calc.Savings)
	}
}

func TestCalculateSavingsArithmetic(t *testing.T) {
	calc := Calculate(testProduct(), 50)

	if !calc.UnitPrice.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected tier price 90, got %s", calc.UnitPrice)
	}
	if !calc.Savings.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected savings 500, got %s", calc.Savings)
	}
	if !calc.SavingsPercentage.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected savings percentage 10, got %s", calc.SavingsPercentage)
	}
}

func TestCalculateEndToEndScenario(t *testing.T) {
	calc := Calculate(testProduct(), 150)

	if !calc.MeetsMinimum {
		t.Fatal("expected the order to meet minimum")
	}
	if calc.PriceType != enums.PriceTypeTier {
		t.Errorf("expected tier pricing, got %s", calc.PriceType)
	}
	if !calc.UnitPrice.Equal(decimal.NewFromInt(85)) {
		t.Errorf("expected unit price 85, got %s", calc.UnitPrice)
	}
	if !calc.TotalPrice.Equal(decimal.NewFromInt(12750)) {
		t.Errorf("expected total 12750, got %s", calc.TotalPrice)
	}
	if !calc.Savings.Equal(decimal.NewFromInt(2250)) {
		t.Errorf("expected savings 2250, got %s", calc.Savings)
	}
	if !calc.SavingsPercentage.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected savings percentage 15, got %s", calc.SavingsPercentage)
	}
}

func TestCalculateZeroWholesalePriceGuardsPercentage(t *testing.T) {
	product := ProductPricing{
		BasePrice:      decimal.Zero,
		WholesalePrice: decimal.Zero,
		StockQty:       10,
	}

	calc := Calculate(product, 5)
	if !calc.SavingsPercentage.IsZero() {
		t.Errorf("expected zero savings percentage on a zero base total, got %s", calc.SavingsPercentage)
	}
}

func TestCalculateNilMOQDefaultsToOne(t *testing.T) {
	product := testProduct()
	product.MOQ = nil

	calc := Calculate(product, 1)
	if !calc.MeetsMinimum {
		t.Error("expected qty 1 to meet a nil MOQ")
	}
	if calc.MinimumRequired != 1 {
		t.Errorf("expected minimum required 1, got %d", calc.MinimumRequired)
	}
}
