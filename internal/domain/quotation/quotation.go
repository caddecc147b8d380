// Package quotation models repair cost proposals sent to customers. A
// quotation offers one or more candidate parts; the customer (or a
// technician acting on their behalf) selects exactly one when approving.
package quotation

import (
	"fmt"
	"time"

	vo "servit/internal/domain/quotation/valueobjects"
	shared "servit/internal/domain/shared/valueobjects"
)

type Quotation struct {
	id                 uint
	quotationID        string
	repairTicketNumber string
	candidatePartIDs   []uint
	selectedPartID     *uint
	laborCost          shared.Money
	totalCost          *shared.Money
	status             vo.QuotationStatus
	expiresAt          time.Time
	nextReminderAt     *time.Time
	lastReminderSentAt *time.Time
	reminderSendCount  int
	summarySentAt      *time.Time
	approvedByOverride bool
	overrideNotes      string
	overriddenAt       *time.Time
	respondedAt        *time.Time
	respondedBy        string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

func NewQuotation(
	quotationID string,
	repairTicketNumber string,
	candidatePartIDs []uint,
	laborCost shared.Money,
	expiresAt time.Time,
	firstReminderAt time.Time,
	now time.Time,
) (*Quotation, error) {
	if len(quotationID) == 0 {
		return nil, fmt.Errorf("quotation ID is required")
	}
	if len(repairTicketNumber) == 0 {
		return nil, fmt.Errorf("repair ticket number is required")
	}
	if len(candidatePartIDs) == 0 {
		return nil, fmt.Errorf("at least one candidate part is required")
	}
	seen := make(map[uint]struct{}, len(candidatePartIDs))
	for _, partID := range candidatePartIDs {
		if partID == 0 {
			return nil, fmt.Errorf("candidate part ID cannot be zero")
		}
		if _, dup := seen[partID]; dup {
			return nil, fmt.Errorf("duplicate candidate part ID: %d", partID)
		}
		seen[partID] = struct{}{}
	}
	if laborCost.IsNegative() {
		return nil, fmt.Errorf("labor cost cannot be negative")
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	reminderAt := firstReminderAt
	return &Quotation{
		quotationID:        quotationID,
		repairTicketNumber: repairTicketNumber,
		candidatePartIDs:   candidatePartIDs,
		laborCost:          laborCost,
		status:             vo.StatusPending,
		expiresAt:          expiresAt,
		nextReminderAt:     &reminderAt,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructQuotation(
	id uint,
	quotationID string,
	repairTicketNumber string,
	candidatePartIDs []uint,
	selectedPartID *uint,
	laborCost shared.Money,
	totalCost *shared.Money,
	status vo.QuotationStatus,
	expiresAt time.Time,
	nextReminderAt *time.Time,
	lastReminderSentAt *time.Time,
	reminderSendCount int,
	summarySentAt *time.Time,
	approvedByOverride bool,
	overrideNotes string,
	overriddenAt *time.Time,
	respondedAt *time.Time,
	respondedBy string,
	version int,
	createdAt, updatedAt time.Time,
) (*Quotation, error) {
	if id == 0 {
		return nil, fmt.Errorf("quotation ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if len(candidatePartIDs) == 0 {
		return nil, fmt.Errorf("at least one candidate part is required")
	}

	return &Quotation{
		id:                 id,
		quotationID:        quotationID,
		repairTicketNumber: repairTicketNumber,
		candidatePartIDs:   candidatePartIDs,
		selectedPartID:     selectedPartID,
		laborCost:          laborCost,
		totalCost:          totalCost,
		status:             status,
		expiresAt:          expiresAt,
		nextReminderAt:     nextReminderAt,
		lastReminderSentAt: lastReminderSentAt,
		reminderSendCount:  reminderSendCount,
		summarySentAt:      summarySentAt,
		approvedByOverride: approvedByOverride,
		overrideNotes:      overrideNotes,
		overriddenAt:       overriddenAt,
		respondedAt:        respondedAt,
		respondedBy:        respondedBy,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (q *Quotation) ID() uint                       { return q.id }
func (q *Quotation) QuotationID() string            { return q.quotationID }
func (q *Quotation) RepairTicketNumber() string     { return q.repairTicketNumber }
func (q *Quotation) SelectedPartID() *uint          { return q.selectedPartID }
func (q *Quotation) LaborCost() shared.Money        { return q.laborCost }
func (q *Quotation) TotalCost() *shared.Money       { return q.totalCost }
func (q *Quotation) Status() vo.QuotationStatus     { return q.status }
func (q *Quotation) ExpiresAt() time.Time           { return q.expiresAt }
func (q *Quotation) NextReminderAt() *time.Time     { return q.nextReminderAt }
func (q *Quotation) LastReminderSentAt() *time.Time { return q.lastReminderSentAt }
func (q *Quotation) ReminderSendCount() int         { return q.reminderSendCount }
func (q *Quotation) SummarySentAt() *time.Time      { return q.summarySentAt }
func (q *Quotation) ApprovedByOverride() bool       { return q.approvedByOverride }
func (q *Quotation) OverrideNotes() string          { return q.overrideNotes }
func (q *Quotation) OverriddenAt() *time.Time       { return q.overriddenAt }
func (q *Quotation) RespondedAt() *time.Time        { return q.respondedAt }
func (q *Quotation) RespondedBy() string            { return q.respondedBy }
func (q *Quotation) Version() int                   { return q.version }
func (q *Quotation) CreatedAt() time.Time           { return q.createdAt }
func (q *Quotation) UpdatedAt() time.Time           { return q.updatedAt }

func (q *Quotation) CandidatePartIDs() []uint {
	idsCopy := make([]uint, len(q.candidatePartIDs))
	copy(idsCopy, q.candidatePartIDs)
	return idsCopy
}

func (q *Quotation) SetID(id uint) error {
	if q.id != 0 {
		return fmt.Errorf("quotation ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("quotation ID cannot be zero")
	}
	q.id = id
	return nil
}

func (q *Quotation) HasCandidate(partID uint) bool {
	for _, id := range q.candidatePartIDs {
		if id == partID {
			return true
		}
	}
	return false
}

// Approve records the customer's decision and the selected part. The total
// is labor plus the single selected part's cost; unselected candidates are
// not charged.
func (q *Quotation) Approve(selectedPartID uint, partCost shared.Money, actor string, now time.Time) error {
	if err := q.ensurePending(vo.StatusApproved); err != nil {
		return err
	}
	if !q.HasCandidate(selectedPartID) {
		return fmt.Errorf("part %d is not a candidate on this quotation", selectedPartID)
	}
	if len(actor) == 0 {
		return fmt.Errorf("actor is required")
	}

	total := q.laborCost.Add(partCost)
	q.selectedPartID = &selectedPartID
	q.totalCost = &total
	q.status = vo.StatusApproved
	q.respondedAt = &now
	q.respondedBy = actor
	q.clearScheduling()
	q.touch(now)
	return nil
}

// ApproveWithOverride lets a technician approve on the customer's behalf,
// for example after a verbal confirmation at the counter. Notes explaining
// the override are mandatory.
func (q *Quotation) ApproveWithOverride(selectedPartID uint, partCost shared.Money, actor, notes string, now time.Time) error {
	if len(notes) == 0 {
		return fmt.Errorf("override notes are required")
	}
	if err := q.Approve(selectedPartID, partCost, actor, now); err != nil {
		return err
	}
	q.approvedByOverride = true
	q.overrideNotes = notes
	q.overriddenAt = &now
	return nil
}

func (q *Quotation) Deny(actor string, now time.Time) error {
	if err := q.ensurePending(vo.StatusRejected); err != nil {
		return err
	}
	if len(actor) == 0 {
		return fmt.Errorf("actor is required")
	}
	q.status = vo.StatusRejected
	q.respondedAt = &now
	q.respondedBy = actor
	q.clearScheduling()
	q.touch(now)
	return nil
}

func (q *Quotation) Expire(now time.Time) error {
	if err := q.ensurePending(vo.StatusExpired); err != nil {
		return err
	}
	q.status = vo.StatusExpired
	q.clearScheduling()
	q.touch(now)
	return nil
}

// Archive marks this quotation superseded by a newer one for the same
// ticket.
func (q *Quotation) Archive(now time.Time) error {
	if err := q.ensurePending(vo.StatusArchived); err != nil {
		return err
	}
	q.status = vo.StatusArchived
	q.clearScheduling()
	q.touch(now)
	return nil
}

// IsExpired reports whether a pending quotation has passed its deadline.
// Terminal quotations never report expired; Expire is the only move that
// records the outcome.
func (q *Quotation) IsExpired(now time.Time) bool {
	return q.status.IsPending() && !now.Before(q.expiresAt)
}

// ShouldRemind reports whether a reminder is due. An overdue quotation is
// never reminded: expiry takes precedence.
func (q *Quotation) ShouldRemind(now time.Time) bool {
	if !q.status.IsPending() || q.IsExpired(now) {
		return false
	}
	return q.nextReminderAt != nil && !now.Before(*q.nextReminderAt)
}

// MarkReminderSent records a sent reminder and schedules the next one.
func (q *Quotation) MarkReminderSent(nextReminderDelay time.Duration, now time.Time) error {
	if !q.status.IsPending() {
		return fmt.Errorf("cannot record a reminder on a %s quotation", q.status)
	}
	next := now.Add(nextReminderDelay)
	q.lastReminderSentAt = &now
	q.reminderSendCount++
	q.nextReminderAt = &next
	q.touch(now)
	return nil
}

// MarkSummarySent records that the post-approval summary was sent. It is
// sent at most once per quotation.
func (q *Quotation) MarkSummarySent(now time.Time) error {
	if q.summarySentAt != nil {
		return fmt.Errorf("summary was already sent at %s", q.summarySentAt.Format(time.RFC3339))
	}
	if !q.status.IsApproved() {
		return fmt.Errorf("summary is only sent for approved quotations")
	}
	q.summarySentAt = &now
	q.touch(now)
	return nil
}

func (q *Quotation) ensurePending(target vo.QuotationStatus) error {
	if !q.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition quotation from %s to %s", q.status, target)
	}
	return nil
}

func (q *Quotation) clearScheduling() {
	q.nextReminderAt = nil
}

func (q *Quotation) touch(now time.Time) {
	q.updatedAt = now
	q.version++
}
