package repairticket

import (
	"context"
	"time"

	vo "servit/internal/domain/repairticket/valueobjects"
)

type Filter struct {
	Status       *vo.TicketStatus
	Technician   *string
	CustomerName *string
	Page         int
	PageSize     int
}

type Repository interface {
	Create(ctx context.Context, ticket *RepairTicket) error
	Update(ctx context.Context, ticket *RepairTicket) error
	FindByID(ctx context.Context, id uint) (*RepairTicket, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*RepairTicket, error)
	List(ctx context.Context, filter Filter) ([]*RepairTicket, int64, error)

	AppendHistory(ctx context.Context, entry *StatusHistoryEntry) error
	FindHistory(ctx context.Context, ticketID uint) ([]*StatusHistoryEntry, error)
}

// NumberGenerator issues customer-facing ticket numbers in the form
// RT-YYYYMMDD-NNNN, where NNNN restarts at 0001 each day.
type NumberGenerator interface {
	Next(ctx context.Context, day time.Time) (string, error)
}
