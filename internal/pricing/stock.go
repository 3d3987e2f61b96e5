package pricing

import (
	"fmt"
	"math"

	"github.com/angelmondragon/wholesale-backend/pkg/config"
)

// StockValidation carries order-line feasibility checks. Errors block the
// order; warnings are advisory and never affect IsValid.
type StockValidation struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateOrder checks a requested quantity against the product's MOQ and
// stock, and attaches the low-stock and next-tier-upsell advisories.
func ValidateOrder(product ProductPricing, qty int, policy config.PolicyConfig) StockValidation {
	errs := []string{}
	warnings := []string{}

	minimum := product.MinimumQty()
	if qty < minimum {
		errs = append(errs, fmt.Sprintf("quantity %d is below the minimum order quantity of %d", qty, minimum))
	}

	switch {
	case product.StockQty == 0:
		errs = append(errs, "product is out of stock")
	case qty > product.StockQty:
		errs = append(errs, fmt.Sprintf("only %d units available, requested %d", product.StockQty, qty))
	}

	// Advisory, not tied to the hard stock check: it also fires when the
	// requested quantity exceeds the stock entirely.
	if product.StockQty > 0 && float64(qty) > float64(product.StockQty)*policy.LowStockRatio {
		warnings = append(warnings, fmt.Sprintf(
			"order consumes most of the remaining stock (%d of %d units)", qty, product.StockQty))
	}

	if hint := nextTierHint(product, qty); hint != "" {
		warnings = append(warnings, hint)
	}

	return StockValidation{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// nextTierHint suggests topping the order up when the next volume tier is
// within reach, defined as at most MOQ additional units away.
func nextTierHint(product ProductPricing, qty int) string {
	current := Calculate(product, qty)
	if !current.MeetsMinimum {
		return ""
	}

	nextMin := math.MaxInt
	var next *Tier
	for i := range product.Tiers {
		tier := product.Tiers[i]
		if tier.MinQty > qty && tier.MinQty < nextMin {
			nextMin = tier.MinQty
			next = &product.Tiers[i]
		}
	}
	if next == nil {
		return ""
	}

	gap := next.MinQty - qty
	if gap > product.MinimumQty() {
		return ""
	}

	upgraded := Calculate(product, next.MinQty)
	extraSavings := upgraded.Savings.Sub(current.Savings)
	if !extraSavings.IsPositive() {
		return ""
	}

	return fmt.Sprintf("ordering %d more units reaches the next volume tier and saves an extra %s",
		gap, extraSavings)
}
