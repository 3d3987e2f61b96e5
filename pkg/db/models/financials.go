package models

import (
	"time"

	"github.com/google/uuid"
)

// OperationalCost is a dated overhead entry deducted from period profit.
type OperationalCost struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Label       string    `gorm:"column:label;not null"`
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	IncurredOn  time.Time `gorm:"column:incurred_on;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// OrderReturn records refunded value for a delivered order.
type OrderReturn struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	Reason      *string   `gorm:"column:reason"`
	ReturnedOn  time.Time `gorm:"column:returned_on;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
