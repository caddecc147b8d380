package usecases

import (
	"context"
	"fmt"

	"servit/internal/application/shared"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

type DenyClaimCommand struct {
	ClaimID string
	Actor   string
	Notes   string
}

// DenyClaimUseCase resolves a claim against the customer. The denial reason
// is mandatory and is relayed to the customer.
type DenyClaimUseCase struct {
	claimRepo warranty.Repository
	txManager shared.TransactionManager
	notifier  services.NotificationGateway
	clock     clock.Clock
	logger    logger.Interface
}

func NewDenyClaimUseCase(
	claimRepo warranty.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	clk clock.Clock,
	log logger.Interface,
) *DenyClaimUseCase {
	return &DenyClaimUseCase{
		claimRepo: claimRepo,
		txManager: txManager,
		notifier:  notifier,
		clock:     clk,
		logger:    log,
	}
}

func (uc *DenyClaimUseCase) Execute(ctx context.Context, cmd DenyClaimCommand) error {
	if cmd.ClaimID == "" {
		return apperrors.NewValidationError("claim ID is required")
	}
	if cmd.Actor == "" {
		return apperrors.NewValidationError("actor is required")
	}
	if cmd.Notes == "" {
		return apperrors.NewValidationError("denial notes are required")
	}

	now := uc.clock.Now()

	var ticketNumber string
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		claim, err := uc.claimRepo.FindByClaimID(txCtx, cmd.ClaimID)
		if err != nil {
			return err
		}
		if err := claim.Deny(cmd.Actor, cmd.Notes, now); err != nil {
			return apperrors.NewInvalidStateError("cannot deny claim", err.Error())
		}
		ticketNumber = claim.TicketNumber()
		return uc.claimRepo.Update(txCtx, claim)
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("warranty claim denied", "claim_id", cmd.ClaimID, "actor", cmd.Actor)

	claimID := cmd.ClaimID
	notes := cmd.Notes
	goroutine.SafeGo(uc.logger, "claim-denied-notify", func() {
		message := fmt.Sprintf("warranty claim %s was denied: %s", claimID, notes)
		if err := uc.notifier.Notify(context.Background(), services.AudienceCustomer, ticketNumber, message); err != nil {
			uc.logger.Warnw("failed to deliver denial notification", "claim_id", claimID, "error", err)
		}
	})

	return nil
}
