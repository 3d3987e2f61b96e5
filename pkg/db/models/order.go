package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wholesale-backend/pkg/enums"
)

// Order is the buyer-facing order header. Aggregate profit columns are
// populated once by profit-report generation and read thereafter.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BuyerID           uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null"`
	Status            enums.OrderStatus `gorm:"column:status;type:order_status_enum;not null;default:'pending'"`
	SubtotalCents     int               `gorm:"column:subtotal_cents;not null"`
	TotalCents        int               `gorm:"column:total_cents;not null"`
	TotalProfitCents  *int              `gorm:"column:total_profit_cents"`
	ProfitMarginPct   *float64          `gorm:"column:profit_margin_pct;type:numeric(6,3)"`
	DeliveredAt       *time.Time        `gorm:"column:delivered_at"`
	LineItems         []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem captures the financial snapshot of each item within an order.
// The Cost/Profit columns are frozen at order time: a populated snapshot must
// never be recomputed from the product's current cost, or historical reports
// silently change when costs change.
type OrderLineItem struct {
	ID                  uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ProductID           *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Name                string     `gorm:"column:name;not null"`
	Qty                 int        `gorm:"column:qty;not null"`
	UnitPriceCents      int        `gorm:"column:unit_price_cents;not null"`
	TotalCents          int        `gorm:"column:total_cents;not null"`
	CostPerUnitCents    *int       `gorm:"column:cost_per_unit_cents"`
	TotalCostCents      *int       `gorm:"column:total_cost_cents"`
	ProfitPerUnitCents  *int       `gorm:"column:profit_per_unit_cents"`
	TotalProfitCents    *int       `gorm:"column:total_profit_cents"`
	PlatformProfitCents *int       `gorm:"column:platform_profit_cents"`
	SellerProfitCents   *int       `gorm:"column:seller_profit_cents"`
	ProfitMarginPct     *float64   `gorm:"column:profit_margin_pct;type:numeric(6,3)"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// HasProfitSnapshot reports whether the line item carries frozen financials.
func (i OrderLineItem) HasProfitSnapshot() bool {
	return i.CostPerUnitCents != nil && i.TotalProfitCents != nil
}
