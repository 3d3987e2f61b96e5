package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testTiers() []Tier {
	return []Tier{
		{MinQty: 10, MaxQty: intPtr(49), UnitPrice: decimal.NewFromInt(95)},
		{MinQty: 50, MaxQty: intPtr(99), UnitPrice: decimal.NewFromInt(90)},
		{MinQty: 100, UnitPrice: decimal.NewFromInt(85)},
	}
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestResolveTierSelectsContainingRange(t *testing.T) {
	tiers := testTiers()

	cases := []struct {
		qty       int
		wantPrice int64
	}{
		{qty: 10, wantPrice: 95},
		{qty: 49, wantPrice: 95},
		{qty: 50, wantPrice: 90},
		{qty: 99, wantPrice: 90},
		{qty: 100, wantPrice: 85},
		{qty: 1000, wantPrice: 85},
	}

	for _, tc := range cases {
		tier := ResolveTier(tiers, tc.qty)
		if tier == nil {
			t.Fatalf("qty %d: expected a tier, got none", tc.qty)
		}
		if !tier.UnitPrice.Equal(decimal.NewFromInt(tc.wantPrice)) {
			t.Errorf("qty %d: expected price %d, got %s", tc.qty, tc.wantPrice, tier.UnitPrice)
		}
	}
}

func TestResolveTierBelowLowestReturnsNone(t *testing.T) {
	if tier := ResolveTier(testTiers(), 5); tier != nil {
		t.Errorf("expected no tier for qty 5, got min qty %d", tier.MinQty)
	}
	if tier := ResolveTier(nil, 50); tier != nil {
		t.Errorf("expected no tier for empty tier list")
	}
}

func TestResolveTierOverlapPrefersHighestMinQty(t *testing.T) {
	overlapping := []Tier{
		{MinQty: 10, MaxQty: intPtr(100), UnitPrice: decimal.NewFromInt(95)},
		{MinQty: 50, MaxQty: intPtr(100), UnitPrice: decimal.NewFromInt(90)},
	}

	tier := ResolveTier(overlapping, 60)
	if tier == nil || tier.MinQty != 50 {
		t.Fatalf("expected the min qty 50 tier to win the overlap, got %+v", tier)
	}
}

func TestResolveTierDoesNotMutateInput(t *testing.T) {
	tiers := testTiers()
	selected := ResolveTier(tiers, 150)
	if selected == nil {
		t.Fatal("expected a tier")
	}
	selected.UnitPrice = decimal.NewFromInt(1)
	if !tiers[2].UnitPrice.Equal(decimal.NewFromInt(85)) {
		t.Error("resolver must return a copy, not a pointer into the input slice")
	}
}
