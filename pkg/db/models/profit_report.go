package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfitReport is the persisted result of profit-report generation for one
// order. Regeneration replaces the row but reads line-item snapshots, so the
// numbers stay stable once every item is frozen.
type ProfitReport struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	RevenueCents        int64     `gorm:"column:revenue_cents;not null"`
	TotalCostCents      int64     `gorm:"column:total_cost_cents;not null"`
	GrossProfitCents    int64     `gorm:"column:gross_profit_cents;not null"`
	PlatformProfitCents int64     `gorm:"column:platform_profit_cents;not null"`
	SellerProfitCents   int64     `gorm:"column:seller_profit_cents;not null"`
	ProfitMarginPct     float64   `gorm:"column:profit_margin_pct;type:numeric(6,3);not null"`
	ItemCount           int       `gorm:"column:item_count;not null"`
	Notices             *string   `gorm:"column:notices"`
	GeneratedAt         time.Time `gorm:"column:generated_at;autoCreateTime"`
}
