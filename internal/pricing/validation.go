package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"go.uber.org/multierr"

	pkgerrors "github.com/angelmondragon/wholesale-backend/pkg/errors"
	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// discountTolerance absorbs rounding noise between a tier's stored price and
// the price implied by its discount percentage.
var discountTolerance = decimal.NewFromFloat(0.01)

// ValidationResult accumulates every tier-configuration violation so an
// operator can fix all of them in one pass.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateTierConfig checks a draft product's pricing configuration for
// internal consistency. It never returns an error value: every violation is
// collected into the result.
func ValidateTierConfig(basePrice, wholesalePrice decimal.Decimal, moq *int, tiers []Tier) ValidationResult {
	errs := []string{}

	if !wholesalePrice.GreaterThan(basePrice) {
		margin := wholesalePrice.Sub(basePrice)
		errs = append(errs, fmt.Sprintf(
			"wholesale price (%s) must exceed base price (%s); margin would be %s",
			wholesalePrice, basePrice, margin))
	}

	if moq != nil && *moq <= 0 {
		errs = append(errs, fmt.Sprintf("minimum order quantity must be positive, got %d", *moq))
	}

	ordered := make([]Tier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinQty < ordered[j].MinQty
	})

	for i, tier := range ordered {
		label := fmt.Sprintf("tier %d (min qty %d)", i+1, tier.MinQty)

		if !tier.UnitPrice.GreaterThan(basePrice) {
			errs = append(errs, fmt.Sprintf(
				"%s: price %s must exceed base price %s to avoid a negative margin",
				label, tier.UnitPrice, basePrice))
		}
		if tier.UnitPrice.GreaterThan(wholesalePrice) {
			errs = append(errs, fmt.Sprintf(
				"%s: price %s exceeds wholesale price %s",
				label, tier.UnitPrice, wholesalePrice))
		}
		if tier.MinQty <= 0 {
			errs = append(errs, fmt.Sprintf("%s: min quantity must be positive", label))
		}
		if tier.MaxQty != nil && *tier.MaxQty < tier.MinQty {
			errs = append(errs, fmt.Sprintf(
				"%s: max quantity %d is below min quantity %d",
				label, *tier.MaxQty, tier.MinQty))
		}

		if tier.DiscountPercent != nil {
			discount := *tier.DiscountPercent
			if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
				errs = append(errs, fmt.Sprintf(
					"%s: discount %s%% is outside the 0-100 range", label, discount))
			} else {
				expected := wholesalePrice.Sub(money.Percent(wholesalePrice, discount))
				if tier.UnitPrice.Sub(expected).Abs().GreaterThan(discountTolerance) {
					errs = append(errs, fmt.Sprintf(
						"%s: price %s does not match the %s%% discount off wholesale price (expected %s)",
						label, tier.UnitPrice, discount, expected))
				}
			}
		}
	}

	for i := 0; i < len(ordered)-1; i++ {
		current, next := ordered[i], ordered[i+1]
		if current.MaxQty != nil && *current.MaxQty >= next.MinQty {
			errs = append(errs, fmt.Sprintf(
				"tier ranges overlap: %d-%d and %d+", current.MinQty, *current.MaxQty, next.MinQty))
		}
		if next.UnitPrice.GreaterThan(current.UnitPrice) {
			errs = append(errs, fmt.Sprintf(
				"tier prices must not increase with quantity: %s at min qty %d, then %s at min qty %d",
				current.UnitPrice, current.MinQty, next.UnitPrice, next.MinQty))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// MustValidateTierConfig is the fail-fast variant: it folds every violation
// into a single validation error for call sites that cannot surface a list.
func MustValidateTierConfig(basePrice, wholesalePrice decimal.Decimal, moq *int, tiers []Tier) error {
	result := ValidateTierConfig(basePrice, wholesalePrice, moq, tiers)
	if result.IsValid {
		return nil
	}

	var combined error
	for _, msg := range result.Errors {
		combined = multierr.Append(combined, fmt.Errorf("%s", msg))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "tier configuration is invalid").
		WithDetails(result.Errors)
}
