package enums

// PriceType reports which rate produced a quoted unit price.
type PriceType string

const (
	PriceTypeWholesale PriceType = "wholesale"
	PriceTypeTier      PriceType = "tier"
)
