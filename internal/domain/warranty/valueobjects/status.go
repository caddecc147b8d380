package valueobjects

import "fmt"

// ClaimStatus tracks a warranty claim through review and resolution.
type ClaimStatus string

const (
	StatusOpen     ClaimStatus = "open"
	StatusApproved ClaimStatus = "approved"
	StatusDenied   ClaimStatus = "denied"
	StatusClosed   ClaimStatus = "closed"
)

var claimStatusTransitions = map[ClaimStatus][]ClaimStatus{
	StatusOpen:     {StatusApproved, StatusDenied, StatusClosed},
	StatusApproved: {StatusClosed},
	StatusDenied:   {},
	StatusClosed:   {},
}

func (cs ClaimStatus) String() string {
	return string(cs)
}

func (cs ClaimStatus) IsValid() bool {
	_, ok := claimStatusTransitions[cs]
	return ok
}

func (cs ClaimStatus) CanTransitionTo(newStatus ClaimStatus) bool {
	allowed, ok := claimStatusTransitions[cs]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// IsActive reports whether the claim still counts against the one-active-
// claim-per-part rule.
func (cs ClaimStatus) IsActive() bool {
	return cs == StatusOpen || cs == StatusApproved
}

func NewClaimStatus(s string) (ClaimStatus, error) {
	cs := ClaimStatus(s)
	if !cs.IsValid() {
		return "", fmt.Errorf("invalid claim status: %s", s)
	}
	return cs, nil
}
