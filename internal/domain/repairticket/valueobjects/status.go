package valueobjects

import "fmt"

// TicketStatus is the ordered repair lifecycle. Ordinals support ">="
// comparisons; once work reaches repairing there is no way back.
type TicketStatus string

const (
	StatusReceived             TicketStatus = "received"
	StatusDiagnosing           TicketStatus = "diagnosing"
	StatusDiagnosed            TicketStatus = "diagnosed"
	StatusAwaitingParts        TicketStatus = "awaiting_parts"
	StatusAwaitingSupplierPart TicketStatus = "awaiting_supplier_part"
	StatusRepairing            TicketStatus = "repairing"
	StatusReadyForPickup       TicketStatus = "ready_for_pickup"
	StatusCompleted            TicketStatus = "completed"
)

var ticketStatusOrdinals = map[TicketStatus]int{
	StatusReceived:             0,
	StatusDiagnosing:           1,
	StatusDiagnosed:            2,
	StatusAwaitingParts:        3,
	StatusAwaitingSupplierPart: 4,
	StatusRepairing:            5,
	StatusReadyForPickup:       6,
	StatusCompleted:            7,
}

var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusReceived: {
		StatusDiagnosing,
	},
	StatusDiagnosing: {
		StatusDiagnosed,
	},
	StatusDiagnosed: {
		StatusAwaitingParts,
		StatusAwaitingSupplierPart,
		StatusRepairing,
	},
	StatusAwaitingParts: {
		StatusAwaitingSupplierPart,
		StatusRepairing,
	},
	StatusAwaitingSupplierPart: {
		StatusAwaitingParts,
		StatusRepairing,
	},
	StatusRepairing: {
		StatusReadyForPickup,
	},
	StatusReadyForPickup: {
		StatusCompleted,
	},
	StatusCompleted: {},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	_, ok := ticketStatusOrdinals[ts]
	return ok
}

// Ordinal returns the position of the status in the lifecycle, -1 for an
// unknown status.
func (ts TicketStatus) Ordinal() int {
	ord, ok := ticketStatusOrdinals[ts]
	if !ok {
		return -1
	}
	return ord
}

// AtLeast reports whether ts has reached the given stage.
func (ts TicketStatus) AtLeast(other TicketStatus) bool {
	return ts.IsValid() && other.IsValid() && ts.Ordinal() >= other.Ordinal()
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowed, ok := ticketStatusTransitions[ts]
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

func (ts TicketStatus) IsRepairing() bool {
	return ts == StatusRepairing
}

func (ts TicketStatus) IsCompleted() bool {
	return ts == StatusCompleted
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
