package enums

// PayoutUrgency classifies how stale an unpaid distribution is. Derived on
// read, never persisted.
type PayoutUrgency string

const (
	PayoutUrgencyLow    PayoutUrgency = "low"
	PayoutUrgencyMedium PayoutUrgency = "medium"
	PayoutUrgencyHigh   PayoutUrgency = "high"
)
