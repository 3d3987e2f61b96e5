package enums

import "fmt"

// DistributionStatus maps to the distribution_status_enum enum in Postgres.
type DistributionStatus string

const (
	DistributionStatusPending  DistributionStatus = "pending"
	DistributionStatusApproved DistributionStatus = "approved"
	DistributionStatusPaid     DistributionStatus = "paid"
	DistributionStatusRejected DistributionStatus = "rejected"
)

var validDistributionStatuses = []DistributionStatus{
	DistributionStatusPending,
	DistributionStatusApproved,
	DistributionStatusPaid,
	DistributionStatusRejected,
}

// distributionTransitions captures the allowed status moves. PAID is terminal;
// REJECTED is reachable from PENDING or APPROVED.
var distributionTransitions = map[DistributionStatus][]DistributionStatus{
	DistributionStatusPending:  {DistributionStatusApproved, DistributionStatusRejected},
	DistributionStatusApproved: {DistributionStatusPaid, DistributionStatusRejected},
}

// IsValid reports whether the value matches the canonical distribution enum.
func (s DistributionStatus) IsValid() bool {
	for _, candidate := range validDistributionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
func (s DistributionStatus) CanTransitionTo(next DistributionStatus) bool {
	for _, candidate := range distributionTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseDistributionStatus converts raw input into DistributionStatus.
func ParseDistributionStatus(value string) (DistributionStatus, error) {
	for _, candidate := range validDistributionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid distribution status %q", value)
}
