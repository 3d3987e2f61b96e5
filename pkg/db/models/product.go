package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents the canonical wholesale listing. Money columns hold
// integer cents; percentage columns hold plain numerics.
type Product struct {
	ID                  uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID            uuid.UUID          `gorm:"column:seller_id;type:uuid;not null"`
	SKU                 string             `gorm:"column:sku;not null"`
	Name                string             `gorm:"column:name;not null"`
	Category            *string            `gorm:"column:category"`
	BasePriceCents      int                `gorm:"column:base_price_cents;not null"`
	WholesalePriceCents int                `gorm:"column:wholesale_price_cents;not null"`
	MOQ                 *int               `gorm:"column:moq"`
	StockQty            int                `gorm:"column:stock_qty;not null;default:0"`
	PlatformProfitPct   float64            `gorm:"column:platform_profit_pct;type:numeric(5,2);not null"`
	SellerCommissionPct float64            `gorm:"column:seller_commission_pct;type:numeric(5,2);not null;default:0"`
	CostPerUnitCents    *int               `gorm:"column:cost_per_unit_cents"`
	ShippingCostCents   *int               `gorm:"column:shipping_cost_cents"`
	HandlingCostCents   *int               `gorm:"column:handling_cost_cents"`
	IsActive            bool               `gorm:"column:is_active;not null;default:true"`
	VolumeTiers         []ProductVolumeTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVolumeTier captures tiered pricing per product. A nil MaxQty means
// the tier is unbounded above.
type ProductVolumeTier struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	MinQty          int       `gorm:"column:min_qty;not null"`
	MaxQty          *int      `gorm:"column:max_qty"`
	UnitPriceCents  int       `gorm:"column:unit_price_cents;not null"`
	DiscountPercent *float64  `gorm:"column:discount_percent;type:numeric(5,2)"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
