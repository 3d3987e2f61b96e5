package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wholesale-backend/pkg/enums"
)

// ProfitDistribution is one partner's payout for one period. The unique index
// over (partner_id, period_start, period_end) backs the duplicate-period
// guard; the row is created once and mutated only through status transitions.
type ProfitDistribution struct {
	ID                uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PartnerID         uuid.UUID                `gorm:"column:partner_id;type:uuid;not null;uniqueIndex:uniq_distribution_partner_period"`
	PeriodType        enums.PeriodType         `gorm:"column:period_type;type:period_type_enum;not null"`
	PeriodStart       time.Time                `gorm:"column:period_start;not null;uniqueIndex:uniq_distribution_partner_period"`
	PeriodEnd         time.Time                `gorm:"column:period_end;not null;uniqueIndex:uniq_distribution_partner_period"`
	TotalRevenueCents int64                    `gorm:"column:total_revenue_cents;not null"`
	TotalCostsCents   int64                    `gorm:"column:total_costs_cents;not null"`
	NetProfitCents    int64                    `gorm:"column:net_profit_cents;not null"`
	PartnerSharePct   float64                  `gorm:"column:partner_share_pct;type:numeric(5,2);not null"`
	AmountCents       int64                    `gorm:"column:amount_cents;not null"`
	Status            enums.DistributionStatus `gorm:"column:status;type:distribution_status_enum;not null;default:'pending'"`
	ApprovedAt        *time.Time               `gorm:"column:approved_at"`
	PaidAt            *time.Time               `gorm:"column:paid_at"`
	RejectedAt        *time.Time               `gorm:"column:rejected_at"`
	CreatedAt         time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
