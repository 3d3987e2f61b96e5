package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromCentsRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 99, 100, 12750, -500}
	for _, cents := range cases {
		if got := Cents(FromCents(cents)); got != cents {
			t.Fatalf("round trip for %d produced %d", cents, got)
		}
	}
}

func TestCentsRoundsHalfUp(t *testing.T) {
	if got := Cents(decimal.RequireFromString("10.005")); got != 1001 {
		t.Fatalf("expected 1001, got %d", got)
	}
	if got := Cents(decimal.RequireFromString("10.004")); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
}

func TestRatioPercentZeroDenominator(t *testing.T) {
	got := RatioPercent(decimal.NewFromInt(500), decimal.Zero)
	if !got.IsZero() {
		t.Fatalf("expected zero on zero denominator, got %s", got)
	}
}

func TestRatioPercent(t *testing.T) {
	got := RatioPercent(decimal.NewFromInt(2250), decimal.NewFromInt(15000))
	if !got.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected 15, got %s", got)
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(750), decimal.NewFromInt(20))
	if !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150, got %s", got)
	}
}

func TestClampNonNegative(t *testing.T) {
	if got := ClampNonNegative(decimal.NewFromInt(-42)); !got.IsZero() {
		t.Fatalf("expected clamp to zero, got %s", got)
	}
	positive := decimal.NewFromInt(42)
	if got := ClampNonNegative(positive); !got.Equal(positive) {
		t.Fatalf("expected passthrough, got %s", got)
	}
}
