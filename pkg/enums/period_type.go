package enums

import "fmt"

// PeriodType maps to the period_type_enum enum in Postgres.
type PeriodType string

const (
	PeriodTypeDaily   PeriodType = "daily"
	PeriodTypeWeekly  PeriodType = "weekly"
	PeriodTypeMonthly PeriodType = "monthly"
	PeriodTypeYearly  PeriodType = "yearly"
	PeriodTypeCustom  PeriodType = "custom"
)

var validPeriodTypes = []PeriodType{
	PeriodTypeDaily,
	PeriodTypeWeekly,
	PeriodTypeMonthly,
	PeriodTypeYearly,
	PeriodTypeCustom,
}

// IsValid reports whether the value matches the canonical period type enum.
func (t PeriodType) IsValid() bool {
	for _, candidate := range validPeriodTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePeriodType converts raw input into PeriodType.
func ParsePeriodType(value string) (PeriodType, error) {
	for _, candidate := range validPeriodTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid period type %q", value)
}
