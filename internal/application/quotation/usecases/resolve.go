package usecases

import (
	"context"
	"time"

	"servit/internal/domain/part"
	"servit/internal/domain/quotation"
	apperrors "servit/internal/shared/errors"
)

// detachCandidateParts frees the candidate parts of a resolved quotation so
// they become eligible for future quotations. exceptPartID, when set, keeps
// that part attached (the selected unit of an approved quotation).
func detachCandidateParts(
	txCtx context.Context,
	partRepo part.Repository,
	q *quotation.Quotation,
	exceptPartID *uint,
	now time.Time,
) error {
	for _, partID := range q.CandidatePartIDs() {
		if exceptPartID != nil && partID == *exceptPartID {
			continue
		}
		p, err := partRepo.FindByIDForUpdate(txCtx, partID)
		if err != nil {
			// A retired candidate no longer blocks resolution.
			if apperrors.IsNotFoundError(err) {
				continue
			}
			return err
		}
		p.DetachQuotation(now)
		if err := partRepo.Update(txCtx, p); err != nil {
			return err
		}
	}
	return nil
}
