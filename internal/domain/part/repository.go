package part

import (
	"context"
)

// Repository persists parts. FindByIDForUpdate must acquire a row lock so a
// read-check-write sequence on one part is linearizable with respect to
// concurrent reservations; it is only valid inside a transaction.
type Repository interface {
	Save(ctx context.Context, p *Part) error
	Update(ctx context.Context, p *Part) error
	FindByID(ctx context.Context, id uint) (*Part, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*Part, error)
	FindBySerialNumber(ctx context.Context, serialNumber string) (*Part, error)
	List(ctx context.Context, filter Filter) ([]*Part, int64, error)
	// FindReplacementCandidate returns a free, eligible unit sharing the
	// given part number with positive available stock, or a not-found error.
	FindReplacementCandidate(ctx context.Context, partNumber string, excludeID uint) (*Part, error)
}

// Filter narrows part listings. Soft-deleted parts are always excluded.
type Filter struct {
	PartNumber    *string
	SerialNumber  *string
	PartType      *string
	OnlyAvailable bool
	Page          int
	PageSize      int
}
