package quotation

import (
	"context"
	"time"

	vo "servit/internal/domain/quotation/valueobjects"
)

type Filter struct {
	Status       *vo.QuotationStatus
	TicketNumber *string
	Page         int
	PageSize     int
}

type Repository interface {
	Create(ctx context.Context, q *Quotation) error
	Update(ctx context.Context, q *Quotation) error
	FindByID(ctx context.Context, id uint) (*Quotation, error)
	FindByQuotationID(ctx context.Context, quotationID string) (*Quotation, error)
	FindPendingByTicket(ctx context.Context, ticketNumber string) ([]*Quotation, error)
	FindLatestByTicket(ctx context.Context, ticketNumber string) (*Quotation, error)
	List(ctx context.Context, filter Filter) ([]*Quotation, int64, error)

	// FindDuePending returns pending quotations whose expiry or next
	// reminder is at or before now.
	FindDuePending(ctx context.Context, now time.Time, limit int) ([]*Quotation, error)

	// UpdateIfPending persists q only when the stored row is still
	// pending. It reports false, without error, when another writer got
	// there first.
	UpdateIfPending(ctx context.Context, q *Quotation) (bool, error)
}
