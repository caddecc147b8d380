package repairticket

import (
	"fmt"
	"time"

	vo "servit/internal/domain/repairticket/valueobjects"
)

const maxAfterPhotos = 3

// RepairTicket is one repair job for one customer device. Status only moves
// through Transition, which appends to the history log in the same step.
type RepairTicket struct {
	id               uint
	ticketNumber     string
	customerName     string
	customerEmail    string
	deviceModel      string
	deviceSerial     string
	issueDescription string
	technician       string
	status           vo.TicketStatus
	statusHistory    []*StatusHistoryEntry
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewRepairTicket(
	customerName string,
	customerEmail string,
	deviceModel string,
	deviceSerial string,
	issueDescription string,
	technician string,
	now time.Time,
) (*RepairTicket, error) {
	if len(customerName) == 0 {
		return nil, fmt.Errorf("customer name is required")
	}
	if len(deviceModel) == 0 {
		return nil, fmt.Errorf("device model is required")
	}
	if len(deviceSerial) == 0 {
		return nil, fmt.Errorf("device serial is required")
	}
	if len(issueDescription) == 0 {
		return nil, fmt.Errorf("issue description is required")
	}
	if len(issueDescription) > 5000 {
		return nil, fmt.Errorf("issue description exceeds maximum length of 5000 characters")
	}

	return &RepairTicket{
		customerName:     customerName,
		customerEmail:    customerEmail,
		deviceModel:      deviceModel,
		deviceSerial:     deviceSerial,
		issueDescription: issueDescription,
		technician:       technician,
		status:           vo.StatusReceived,
		statusHistory:    []*StatusHistoryEntry{},
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructRepairTicket(
	id uint,
	ticketNumber string,
	customerName string,
	customerEmail string,
	deviceModel string,
	deviceSerial string,
	issueDescription string,
	technician string,
	status vo.TicketStatus,
	version int,
	createdAt, updatedAt time.Time,
) (*RepairTicket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(ticketNumber) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &RepairTicket{
		id:               id,
		ticketNumber:     ticketNumber,
		customerName:     customerName,
		customerEmail:    customerEmail,
		deviceModel:      deviceModel,
		deviceSerial:     deviceSerial,
		issueDescription: issueDescription,
		technician:       technician,
		status:           status,
		statusHistory:    []*StatusHistoryEntry{},
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (t *RepairTicket) ID() uint                 { return t.id }
func (t *RepairTicket) TicketNumber() string     { return t.ticketNumber }
func (t *RepairTicket) CustomerName() string     { return t.customerName }
func (t *RepairTicket) CustomerEmail() string    { return t.customerEmail }
func (t *RepairTicket) DeviceModel() string      { return t.deviceModel }
func (t *RepairTicket) DeviceSerial() string     { return t.deviceSerial }
func (t *RepairTicket) IssueDescription() string { return t.issueDescription }
func (t *RepairTicket) Technician() string       { return t.technician }
func (t *RepairTicket) Status() vo.TicketStatus  { return t.status }
func (t *RepairTicket) Version() int             { return t.version }
func (t *RepairTicket) CreatedAt() time.Time     { return t.createdAt }
func (t *RepairTicket) UpdatedAt() time.Time     { return t.updatedAt }

func (t *RepairTicket) StatusHistory() []*StatusHistoryEntry {
	historyCopy := make([]*StatusHistoryEntry, len(t.statusHistory))
	copy(historyCopy, t.statusHistory)
	return historyCopy
}

func (t *RepairTicket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *RepairTicket) SetTicketNumber(number string) error {
	if len(t.ticketNumber) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.ticketNumber = number
	return nil
}

// AttachHistory rehydrates the status log after loading from persistence.
func (t *RepairTicket) AttachHistory(entries []*StatusHistoryEntry) {
	t.statusHistory = entries
}

// Transition moves the ticket to newStatus and appends a history entry.
// Photos are only accepted on the move to ready_for_pickup ("after" photos,
// at least one, at most three). The quotation-approval guard for repairing
// lives in the use case because it needs the quotation repository.
func (t *RepairTicket) Transition(newStatus vo.TicketStatus, notes string, actor string, photos []string, now time.Time) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if len(actor) == 0 {
		return fmt.Errorf("actor is required")
	}
	if !t.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	if len(photos) > 0 {
		if newStatus != vo.StatusReadyForPickup {
			return fmt.Errorf("after photos are only accepted when moving to %s", vo.StatusReadyForPickup)
		}
		if len(photos) > maxAfterPhotos {
			return fmt.Errorf("at most %d after photos are allowed", maxAfterPhotos)
		}
	}

	entry, err := NewStatusHistoryEntry(t.id, newStatus, notes, actor, photos, now)
	if err != nil {
		return err
	}

	t.status = newStatus
	t.statusHistory = append(t.statusHistory, entry)
	t.updatedAt = now
	t.version++
	return nil
}

// LastHistoryEntry returns the newest history row, nil when the log is empty.
func (t *RepairTicket) LastHistoryEntry() *StatusHistoryEntry {
	if len(t.statusHistory) == 0 {
		return nil
	}
	return t.statusHistory[len(t.statusHistory)-1]
}
