package usecases

import (
	"context"

	"servit/internal/application/shared"
	"servit/internal/domain/part"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type RetirePartCommand struct {
	PartID uint
	Actor  string
}

// RetirePartUseCase soft-deletes a part. The unit disappears from listings
// and candidate searches; ledger rows referencing it stay on record. Parts
// with active reservations cannot be retired.
type RetirePartUseCase struct {
	partRepo  part.Repository
	txManager shared.TransactionManager
	clock     clock.Clock
	logger    logger.Interface
}

func NewRetirePartUseCase(
	partRepo part.Repository,
	txManager shared.TransactionManager,
	clk clock.Clock,
	log logger.Interface,
) *RetirePartUseCase {
	return &RetirePartUseCase{
		partRepo:  partRepo,
		txManager: txManager,
		clock:     clk,
		logger:    log,
	}
}

func (uc *RetirePartUseCase) Execute(ctx context.Context, cmd RetirePartCommand) error {
	if cmd.PartID == 0 {
		return apperrors.NewValidationError("part ID is required")
	}
	if cmd.Actor == "" {
		return apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.partRepo.FindByIDForUpdate(txCtx, cmd.PartID)
		if err != nil {
			return err
		}
		if err := p.SoftDelete(now); err != nil {
			return apperrors.NewInvalidStateError("cannot retire part", err.Error())
		}
		return uc.partRepo.Update(txCtx, p)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("part retired", "part_id", cmd.PartID, "actor", cmd.Actor)
	return nil
}
