// Package warranty models warranty claims and the classifier that routes a
// checked-in part into the right workflow.
package warranty

import (
	"fmt"
	"time"

	vo "servit/internal/domain/warranty/valueobjects"
)

// Claim is one warranty claim against one part. A part may have at most one
// active (open or approved) claim at a time; the use case enforces that
// against the repository.
type Claim struct {
	id               uint
	claimID          string
	partID           *uint
	partSerial       string
	ticketNumber     string
	kind             vo.ClaimKind
	status           vo.ClaimStatus
	issueDescription string
	tampered         bool
	resolutionNotes  string
	resolvedBy       string
	resolvedAt       *time.Time
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewClaim(
	claimID string,
	partID *uint,
	partSerial string,
	ticketNumber string,
	kind vo.ClaimKind,
	issueDescription string,
	tampered bool,
	now time.Time,
) (*Claim, error) {
	if len(claimID) == 0 {
		return nil, fmt.Errorf("claim ID is required")
	}
	if len(partSerial) == 0 {
		return nil, fmt.Errorf("part serial is required")
	}
	if len(ticketNumber) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid claim kind")
	}
	if len(issueDescription) == 0 {
		return nil, fmt.Errorf("issue description is required")
	}

	return &Claim{
		claimID:          claimID,
		partID:           partID,
		partSerial:       partSerial,
		ticketNumber:     ticketNumber,
		kind:             kind,
		status:           vo.StatusOpen,
		issueDescription: issueDescription,
		tampered:         tampered,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructClaim(
	id uint,
	claimID string,
	partID *uint,
	partSerial string,
	ticketNumber string,
	kind vo.ClaimKind,
	status vo.ClaimStatus,
	issueDescription string,
	tampered bool,
	resolutionNotes string,
	resolvedBy string,
	resolvedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Claim, error) {
	if id == 0 {
		return nil, fmt.Errorf("claim ID cannot be zero")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid claim kind")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid claim status")
	}

	return &Claim{
		id:               id,
		claimID:          claimID,
		partID:           partID,
		partSerial:       partSerial,
		ticketNumber:     ticketNumber,
		kind:             kind,
		status:           status,
		issueDescription: issueDescription,
		tampered:         tampered,
		resolutionNotes:  resolutionNotes,
		resolvedBy:       resolvedBy,
		resolvedAt:       resolvedAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (c *Claim) ID() uint                 { return c.id }
func (c *Claim) ClaimID() string          { return c.claimID }
func (c *Claim) PartID() *uint            { return c.partID }
func (c *Claim) PartSerial() string       { return c.partSerial }
func (c *Claim) TicketNumber() string     { return c.ticketNumber }
func (c *Claim) Kind() vo.ClaimKind       { return c.kind }
func (c *Claim) Status() vo.ClaimStatus   { return c.status }
func (c *Claim) IssueDescription() string { return c.issueDescription }
func (c *Claim) Tampered() bool           { return c.tampered }
func (c *Claim) ResolutionNotes() string  { return c.resolutionNotes }
func (c *Claim) ResolvedBy() string       { return c.resolvedBy }
func (c *Claim) ResolvedAt() *time.Time   { return c.resolvedAt }
func (c *Claim) Version() int             { return c.version }
func (c *Claim) CreatedAt() time.Time     { return c.createdAt }
func (c *Claim) UpdatedAt() time.Time     { return c.updatedAt }

func (c *Claim) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("claim ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("claim ID cannot be zero")
	}
	c.id = id
	return nil
}

// Approve resolves an open claim in the customer's favor. Admin-review
// claims get here when an admin confirms the replacement.
func (c *Claim) Approve(actor, notes string, now time.Time) error {
	if !c.status.CanTransitionTo(vo.StatusApproved) {
		return fmt.Errorf("cannot approve a %s claim", c.status)
	}
	if len(actor) == 0 {
		return fmt.Errorf("actor is required")
	}
	c.status = vo.StatusApproved
	c.resolutionNotes = notes
	c.resolvedBy = actor
	c.resolvedAt = &now
	c.touch(now)
	return nil
}

// Deny resolves an open claim against the customer. Notes are mandatory so
// the denial reason is on record.
func (c *Claim) Deny(actor, notes string, now time.Time) error {
	if !c.status.CanTransitionTo(vo.StatusDenied) {
		return fmt.Errorf("cannot deny a %s claim", c.status)
	}
	if len(actor) == 0 {
		return fmt.Errorf("actor is required")
	}
	if len(notes) == 0 {
		return fmt.Errorf("denial notes are required")
	}
	c.status = vo.StatusDenied
	c.resolutionNotes = notes
	c.resolvedBy = actor
	c.resolvedAt = &now
	c.touch(now)
	return nil
}

// Close finishes the claim once the replacement or repair completed.
func (c *Claim) Close(actor string, now time.Time) error {
	if !c.status.CanTransitionTo(vo.StatusClosed) {
		return fmt.Errorf("cannot close a %s claim", c.status)
	}
	if len(actor) == 0 {
		return fmt.Errorf("actor is required")
	}
	c.status = vo.StatusClosed
	c.resolvedBy = actor
	c.resolvedAt = &now
	c.touch(now)
	return nil
}

func (c *Claim) touch(now time.Time) {
	c.updatedAt = now
	c.version++
}
