package repairticket

import (
	"fmt"
	"time"

	vo "servit/internal/domain/repairticket/valueobjects"
)

// StatusHistoryEntry is one append-only row of a ticket's status log. The log
// is monotonically increasing in timestamp and its last entry always matches
// the ticket's current status.
type StatusHistoryEntry struct {
	id        uint
	ticketID  uint
	status    vo.TicketStatus
	notes     string
	actor     string
	photos    []string
	createdAt time.Time
}

func NewStatusHistoryEntry(
	ticketID uint,
	status vo.TicketStatus,
	notes string,
	actor string,
	photos []string,
	now time.Time,
) (*StatusHistoryEntry, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if len(actor) == 0 {
		return nil, fmt.Errorf("actor is required")
	}

	return &StatusHistoryEntry{
		ticketID:  ticketID,
		status:    status,
		notes:     notes,
		actor:     actor,
		photos:    photos,
		createdAt: now,
	}, nil
}

func ReconstructStatusHistoryEntry(
	id uint,
	ticketID uint,
	status vo.TicketStatus,
	notes string,
	actor string,
	photos []string,
	createdAt time.Time,
) (*StatusHistoryEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("history entry ID cannot be zero")
	}
	entry, err := NewStatusHistoryEntry(ticketID, status, notes, actor, photos, createdAt)
	if err != nil {
		return nil, err
	}
	entry.id = id
	return entry, nil
}

func (e *StatusHistoryEntry) ID() uint                { return e.id }
func (e *StatusHistoryEntry) TicketID() uint          { return e.ticketID }
func (e *StatusHistoryEntry) Status() vo.TicketStatus { return e.status }
func (e *StatusHistoryEntry) Notes() string           { return e.notes }
func (e *StatusHistoryEntry) Actor() string           { return e.actor }
func (e *StatusHistoryEntry) CreatedAt() time.Time    { return e.createdAt }

func (e *StatusHistoryEntry) Photos() []string {
	photosCopy := make([]string, len(e.photos))
	copy(photosCopy, e.photos)
	return photosCopy
}

func (e *StatusHistoryEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("history entry ID cannot be zero")
	}
	e.id = id
	return nil
}
