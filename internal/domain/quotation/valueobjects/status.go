package valueobjects

import "fmt"

// QuotationStatus tracks a quotation through its lifecycle. Approved,
// rejected and expired are terminal and mutually exclusive; archived marks a
// quotation superseded by a newer one for the same ticket.
type QuotationStatus string

const (
	StatusPending  QuotationStatus = "pending"
	StatusApproved QuotationStatus = "approved"
	StatusRejected QuotationStatus = "rejected"
	StatusExpired  QuotationStatus = "expired"
	StatusArchived QuotationStatus = "archived"
)

var quotationStatusTransitions = map[QuotationStatus][]QuotationStatus{
	StatusPending: {
		StatusApproved,
		StatusRejected,
		StatusExpired,
		StatusArchived,
	},
	StatusApproved: {},
	StatusRejected: {},
	StatusExpired:  {},
	StatusArchived: {},
}

func (qs QuotationStatus) String() string {
	return string(qs)
}

func (qs QuotationStatus) IsValid() bool {
	_, ok := quotationStatusTransitions[qs]
	return ok
}

func (qs QuotationStatus) CanTransitionTo(newStatus QuotationStatus) bool {
	allowed, ok := quotationStatusTransitions[qs]
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

// IsTerminal reports whether the quotation has received a final outcome.
// Archived is not terminal in this sense: it records supersession, not an
// outcome.
func (qs QuotationStatus) IsTerminal() bool {
	return qs == StatusApproved || qs == StatusRejected || qs == StatusExpired
}

func (qs QuotationStatus) IsPending() bool {
	return qs == StatusPending
}

func (qs QuotationStatus) IsApproved() bool {
	return qs == StatusApproved
}

func NewQuotationStatus(s string) (QuotationStatus, error) {
	qs := QuotationStatus(s)
	if !qs.IsValid() {
		return "", fmt.Errorf("invalid quotation status: %s", s)
	}
	return qs, nil
}
