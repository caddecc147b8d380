package inventory

import "context"

// Repository is append-only: ledger rows are saved and queried, never
// mutated or removed.
type Repository interface {
	Save(ctx context.Context, tx *Transaction) error
	FindByPartID(ctx context.Context, partID uint) ([]*Transaction, error)
	FindByQuotationID(ctx context.Context, quotationID string) ([]*Transaction, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) ([]*Transaction, error)
}
