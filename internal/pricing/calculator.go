package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// Calculate produces the wholesale quote for a requested quantity.
//
// Below-MOQ requests return a zeroed Calculation with MeetsMinimum false.
// That is the caller's rejection signal, not an error.
func Calculate(product ProductPricing, qty int) Calculation {
	minimum := product.MinimumQty()

	if qty < minimum {
		return Calculation{
			Quantity:        qty,
			UnitPrice:       decimal.Zero,
			TotalPrice:      decimal.Zero,
			PriceType:       enums.PriceTypeWholesale,
			MeetsMinimum:    false,
			MinimumRequired: minimum,
		}
	}

	unitPrice := product.WholesalePrice
	priceType := enums.PriceTypeWholesale
	appliedTier := ResolveTier(product.Tiers, qty)
	if appliedTier != nil {
		unitPrice = appliedTier.UnitPrice
		priceType = enums.PriceTypeTier
	}

	qtyDec := decimal.NewFromInt(int64(qty))
	totalPrice := unitPrice.Mul(qtyDec)
	baseTotal := product.WholesalePrice.Mul(qtyDec)
	savings := money.ClampNonNegative(baseTotal.Sub(totalPrice))

	return Calculation{
		Quantity:          qty,
		UnitPrice:         unitPrice,
		TotalPrice:        totalPrice,
		AppliedTier:       appliedTier,
		PriceType:         priceType,
		Savings:           savings,
		SavingsPercentage: money.RatioPercent(savings, baseTotal),
		MeetsMinimum:      true,
		MinimumRequired:   minimum,
	}
}
