package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/wholesale-backend/pkg/errors"
)

func TestValidateTierConfigAcceptsWellFormedTiers(t *testing.T) {
	tiers := []Tier{
		{MinQty: 10, MaxQty: intPtr(49), UnitPrice: decimal.NewFromInt(95), DiscountPercent: decPtr(5)},
		{MinQty: 50, MaxQty: intPtr(99), UnitPrice: decimal.NewFromInt(90), DiscountPercent: decPtr(10)},
		{MinQty: 100, UnitPrice: decimal.NewFromInt(85), DiscountPercent: decPtr(15)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), intPtr(10), tiers)
	if !result.IsValid {
		t.Fatalf("expected valid config, got errors: %v", result.Errors)
	}
}

func TestValidateTierConfigAccumulatesAllViolations(t *testing.T) {
	// wholesale below base, bad MOQ, tier above wholesale and overlapping ranges
	tiers := []Tier{
		{MinQty: 10, MaxQty: intPtr(60), UnitPrice: decimal.NewFromInt(120)},
		{MinQty: 50, MaxQty: intPtr(99), UnitPrice: decimal.NewFromInt(90)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(100), decimal.NewFromInt(95), intPtr(0), tiers)
	if result.IsValid {
		t.Fatal("expected invalid config")
	}
	if len(result.Errors) < 4 {
		t.Fatalf("expected every violation reported, got %d: %v", len(result.Errors), result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	for _, fragment := range []string{"95", "100", "overlap", "minimum order quantity"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("expected errors to mention %q, got: %v", fragment, result.Errors)
		}
	}
}

func TestValidateTierConfigNegativeMarginTier(t *testing.T) {
	tiers := []Tier{
		{MinQty: 10, UnitPrice: decimal.NewFromInt(70)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), nil, tiers)
	if result.IsValid {
		t.Fatal("expected tier priced below base cost to fail")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "negative margin") {
		t.Errorf("expected a negative margin error, got: %v", result.Errors)
	}
}

func TestValidateTierConfigDiscountConsistency(t *testing.T) {
	tiers := []Tier{
		// 10% off 100 should be 90, not 92
		{MinQty: 10, UnitPrice: decimal.NewFromInt(92), DiscountPercent: decPtr(10)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), nil, tiers)
	if result.IsValid {
		t.Fatal("expected discount mismatch to fail")
	}
	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "92") || !strings.Contains(joined, "90") {
		t.Errorf("expected both provided and expected price in error, got: %v", result.Errors)
	}
}

func TestValidateTierConfigDiscountWithinTolerance(t *testing.T) {
	tiers := []Tier{
		{MinQty: 10, UnitPrice: decimal.NewFromFloat(89.995), DiscountPercent: decPtr(10)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), nil, tiers)
	if !result.IsValid {
		t.Fatalf("expected sub-cent discount drift to pass, got: %v", result.Errors)
	}
}

func TestValidateTierConfigMonotonicity(t *testing.T) {
	tiers := []Tier{
		{MinQty: 10, MaxQty: intPtr(49), UnitPrice: decimal.NewFromInt(90)},
		{MinQty: 50, UnitPrice: decimal.NewFromInt(95)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), nil, tiers)
	if result.IsValid {
		t.Fatal("expected increasing tier price to fail")
	}
	if !strings.Contains(strings.Join(result.Errors, "\n"), "must not increase") {
		t.Errorf("expected monotonicity error, got: %v", result.Errors)
	}
}

func TestValidateTierConfigMaxBelowMin(t *testing.T) {
	tiers := []Tier{
		{MinQty: 50, MaxQty: intPtr(20), UnitPrice: decimal.NewFromInt(90)},
	}

	result := ValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), nil, tiers)
	if result.IsValid {
		t.Fatal("expected max below min to fail")
	}
}

func TestMustValidateTierConfigFoldsErrors(t *testing.T) {
	err := MustValidateTierConfig(decimal.NewFromInt(100), decimal.NewFromInt(95), intPtr(0), nil)
	if err == nil {
		t.Fatal("expected combined error")
	}

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation-coded error, got %v", err)
	}
	details, ok := appErr.Details().([]string)
	if !ok || len(details) < 2 {
		t.Fatalf("expected the full error list in details, got %v", appErr.Details())
	}

	if err := MustValidateTierConfig(decimal.NewFromInt(80), decimal.NewFromInt(100), nil, nil); err != nil {
		t.Fatalf("expected valid config to pass, got %v", err)
	}
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
