package warranty

import (
	"context"

	vo "servit/internal/domain/warranty/valueobjects"
)

type Filter struct {
	Status   *vo.ClaimStatus
	Kind     *vo.ClaimKind
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, claim *Claim) error
	Update(ctx context.Context, claim *Claim) error
	FindByID(ctx context.Context, id uint) (*Claim, error)
	FindByClaimID(ctx context.Context, claimID string) (*Claim, error)

	// FindActiveByPartID returns the open or approved claim for the part,
	// or a not-found error when none exists.
	FindActiveByPartID(ctx context.Context, partID uint) (*Claim, error)
	List(ctx context.Context, filter Filter) ([]*Claim, int64, error)
}
