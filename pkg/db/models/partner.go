package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a business co-owner entitled to a percentage of period net profit.
type Partner struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	Email           *string   `gorm:"column:email"`
	ProfitSharePct  float64   `gorm:"column:profit_share_pct;type:numeric(5,2);not null"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
