package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wholesale-backend/pkg/db/models"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// Tier is one quantity band of a product's volume pricing. A nil MaxQty
// means the band is unbounded above.
type Tier struct {
	MinQty          int
	MaxQty          *int
	UnitPrice       decimal.Decimal
	DiscountPercent *decimal.Decimal
}

// Contains reports whether qty falls inside the tier's quantity band.
func (t Tier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == nil || qty <= *t.MaxQty
}

// ProductPricing is the plain pricing view of a product, detached from the
// persistence model so the calculators stay free of GORM concerns.
type ProductPricing struct {
	BasePrice      decimal.Decimal
	WholesalePrice decimal.Decimal
	MOQ            *int
	StockQty       int
	Tiers          []Tier
}

// MinimumQty returns the effective MOQ, defaulting to 1 when none is set.
func (p ProductPricing) MinimumQty() int {
	if p.MOQ == nil || *p.MOQ < 1 {
		return 1
	}
	return *p.MOQ
}

// Calculation is a fully resolved wholesale quote for one quantity. When
// MeetsMinimum is false the money fields are zeroed on purpose: the order
// would be rejected, so no price is quoted.
type Calculation struct {
	Quantity          int
	UnitPrice         decimal.Decimal
	TotalPrice        decimal.Decimal
	AppliedTier       *Tier
	PriceType         enums.PriceType
	Savings           decimal.Decimal
	SavingsPercentage decimal.Decimal
	MeetsMinimum      bool
	MinimumRequired   int
}

// FromModel converts a persisted product into its pricing view.
func FromModel(product *models.Product) ProductPricing {
	pricing := ProductPricing{
		BasePrice:      money.FromCents(int64(product.BasePriceCents)),
		WholesalePrice: money.FromCents(int64(product.WholesalePriceCents)),
		MOQ:            product.MOQ,
		StockQty:       product.StockQty,
		Tiers:          make([]Tier, 0, len(product.VolumeTiers)),
	}
	for _, tier := range product.VolumeTiers {
		converted := Tier{
			MinQty:    tier.MinQty,
			MaxQty:    tier.MaxQty,
			UnitPrice: money.FromCents(int64(tier.UnitPriceCents)),
		}
		if tier.DiscountPercent != nil {
			discount := decimal.NewFromFloat(*tier.DiscountPercent)
			converted.DiscountPercent = &discount
		}
		pricing.Tiers = append(pricing.Tiers, converted)
	}
	return pricing
}
