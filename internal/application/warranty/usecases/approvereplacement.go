package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"servit/internal/application/shared"
	"servit/internal/domain/inventory"
	invvo "servit/internal/domain/inventory/valueobjects"
	"servit/internal/domain/part"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	wvo "servit/internal/domain/warranty/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

type ApproveReplacementCommand struct {
	ClaimID string
	Actor   string
	Notes   string
}

type ApproveReplacementResult struct {
	ClaimID           string
	ReplacementPartID uint
	ReplacementSerial string
	Reference         string
}

// ApproveReplacementUseCase executes a warranty replacement: a free unit
// with the same part number is reserved for the claim's ticket in the same
// transaction that approves the claim. With no unit in stock the claim
// stays open and the admin is told to order from the supplier.
type ApproveReplacementUseCase struct {
	claimRepo         warranty.Repository
	partRepo          part.Repository
	ledger            inventory.Repository
	txManager         shared.TransactionManager
	notifier          services.NotificationGateway
	publisher         events.EventPublisher
	clock             clock.Clock
	lowStockThreshold int
	logger            logger.Interface
}

func NewApproveReplacementUseCase(
	claimRepo warranty.Repository,
	partRepo part.Repository,
	ledger inventory.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	lowStockThreshold int,
	log logger.Interface,
) *ApproveReplacementUseCase {
	return &ApproveReplacementUseCase{
		claimRepo:         claimRepo,
		partRepo:          partRepo,
		ledger:            ledger,
		txManager:         txManager,
		notifier:          notifier,
		publisher:         publisher,
		clock:             clk,
		lowStockThreshold: lowStockThreshold,
		logger:            log,
	}
}

func (uc *ApproveReplacementUseCase) Execute(ctx context.Context, cmd ApproveReplacementCommand) (*ApproveReplacementResult, error) {
	if cmd.ClaimID == "" {
		return nil, apperrors.NewValidationError("claim ID is required")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()
	reference := uuid.NewString()

	var (
		replacement     *part.Part
		ticketNumber    string
		beforeAvailable int
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		claim, err := uc.claimRepo.FindByClaimID(txCtx, cmd.ClaimID)
		if err != nil {
			return err
		}
		if claim.Status() != wvo.StatusOpen {
			return apperrors.NewInvalidStateError(
				fmt.Sprintf("claim is %s and cannot be approved for replacement", claim.Status()))
		}
		if claim.Kind() != wvo.KindAutoReplacement && claim.Kind() != wvo.KindPendingAdminReview {
			return apperrors.NewInvalidStateError(
				fmt.Sprintf("a %s claim does not qualify for replacement", claim.Kind()))
		}
		if claim.PartID() == nil {
			return apperrors.NewInvalidStateError("claim has no inventory part on record")
		}

		original, err := uc.partRepo.FindByID(txCtx, *claim.PartID())
		if err != nil {
			return err
		}

		candidate, err := uc.partRepo.FindReplacementCandidate(txCtx, original.PartNumber(), original.ID())
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return apperrors.NewInsufficientStockError(
					fmt.Sprintf("no replacement unit in stock for part number %s", original.PartNumber()))
			}
			return err
		}
		locked, err := uc.partRepo.FindByIDForUpdate(txCtx, candidate.ID())
		if err != nil {
			return err
		}

		stockBefore := locked.CurrentStock()
		reservedBefore := locked.ReservedQuantity()
		beforeAvailable = locked.AvailableStock()
		ticketNumber = claim.TicketNumber()

		if err := locked.Reserve(1, ticketNumber, now); err != nil {
			if strings.Contains(err.Error(), "insufficient") {
				return apperrors.NewInsufficientStockError(
					fmt.Sprintf("no replacement unit in stock for part number %s", original.PartNumber()))
			}
			return apperrors.NewInvalidStateError("cannot reserve replacement unit", err.Error())
		}
		if err := uc.partRepo.Update(txCtx, locked); err != nil {
			return err
		}

		entry, err := inventory.NewTransaction(
			reference,
			invvo.TypeReserve,
			invvo.ReasonWarrantyAutoReplacement,
			locked.ID(),
			-1,
			stockBefore, locked.CurrentStock(),
			reservedBefore, locked.ReservedQuantity(),
			cmd.Actor,
			&ticketNumber,
			nil,
			now,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to build ledger entry", err.Error())
		}
		if err := uc.ledger.Save(txCtx, entry); err != nil {
			return err
		}

		if err := claim.Approve(cmd.Actor, cmd.Notes, now); err != nil {
			return apperrors.NewInvalidStateError("cannot approve claim", err.Error())
		}
		if err := uc.claimRepo.Update(txCtx, claim); err != nil {
			return err
		}

		replacement = locked
		return nil
	})
	if err != nil {
		if apperrors.IsInsufficientStockError(err) {
			uc.surfaceNoStock(cmd.ClaimID, err)
		}
		return nil, err
	}

	uc.logger.Infow("warranty replacement approved",
		"claim_id", cmd.ClaimID,
		"replacement_part_id", replacement.ID(),
		"replacement_serial", replacement.SerialNumber(),
		"reference", reference,
	)

	shared.NotifyStockLevel(uc.logger, uc.notifier, uc.publisher, uc.lowStockThreshold, replacement, beforeAvailable, ticketNumber, now)

	serial := replacement.SerialNumber()
	ticket := ticketNumber
	goroutine.SafeGo(uc.logger, "replacement-approved-notify", func() {
		bg := context.Background()
		if err := uc.notifier.Notify(bg, services.AudienceTechnician, ticket,
			fmt.Sprintf("replacement unit %s is reserved for the warranty swap", serial)); err != nil {
			uc.logger.Warnw("failed to deliver replacement notification", "claim_id", cmd.ClaimID, "error", err)
		}
		if err := uc.notifier.Notify(bg, services.AudienceCustomer, ticket,
			"your warranty replacement was approved and is being prepared"); err != nil {
			uc.logger.Warnw("failed to deliver replacement notification", "claim_id", cmd.ClaimID, "error", err)
		}
	})

	return &ApproveReplacementResult{
		ClaimID:           cmd.ClaimID,
		ReplacementPartID: replacement.ID(),
		ReplacementSerial: replacement.SerialNumber(),
		Reference:         reference,
	}, nil
}

func (uc *ApproveReplacementUseCase) surfaceNoStock(claimID string, cause error) {
	message := fmt.Sprintf("warranty claim %s cannot be fulfilled from stock; order a supplier replacement (%v)", claimID, cause)
	goroutine.SafeGo(uc.logger, "replacement-no-stock-notify", func() {
		if err := uc.notifier.Notify(context.Background(), services.AudienceAdmin, "", message); err != nil {
			uc.logger.Warnw("failed to surface replacement stockout", "claim_id", claimID, "error", err)
		}
	})
}
