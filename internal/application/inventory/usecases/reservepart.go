// Package usecases implements the inventory application services: stock
// reservation, release, adjustment, intake and retirement. Each use case
// mutates the part and writes the matching ledger row in one transaction.
package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"servit/internal/application/shared"
	"servit/internal/domain/inventory"
	invvo "servit/internal/domain/inventory/valueobjects"
	"servit/internal/domain/part"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type ReservePartCommand struct {
	PartID       uint
	Quantity     int
	TicketNumber string
	Actor        string
	Reason       invvo.Reason
	QuotationID  *string
}

type ReservePartResult struct {
	PartID           uint
	SerialNumber     string
	ReservedQuantity int
	AvailableStock   int
	Reference        string
}

type ReservePartUseCase struct {
	partRepo          part.Repository
	ledger            inventory.Repository
	txManager         shared.TransactionManager
	notifier          services.NotificationGateway
	publisher         events.EventPublisher
	clock             clock.Clock
	lowStockThreshold int
	logger            logger.Interface
}

func NewReservePartUseCase(
	partRepo part.Repository,
	ledger inventory.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	lowStockThreshold int,
	log logger.Interface,
) *ReservePartUseCase {
	return &ReservePartUseCase{
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

func (uc *ReservePartUseCase) Execute(ctx context.Context, cmd ReservePartCommand) (*ReservePartResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	reference := uuid.NewString()

	var (
		reserved        *part.Part
		beforeAvailable int
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.partRepo.FindByIDForUpdate(txCtx, cmd.PartID)
		if err != nil {
			return err
		}

		stockBefore := p.CurrentStock()
		reservedBefore := p.ReservedQuantity()
		beforeAvailable = p.AvailableStock()

		if err := p.Reserve(cmd.Quantity, cmd.TicketNumber, now); err != nil {
			if strings.Contains(err.Error(), "insufficient") {
				return apperrors.NewInsufficientStockError("cannot reserve part", err.Error())
			}
			return apperrors.NewInvalidStateError("cannot reserve part", err.Error())
		}
		if err := uc.partRepo.Update(txCtx, p); err != nil {
			return err
		}

		entry, err := inventory.NewTransaction(
			reference,
			invvo.TypeReserve,
			cmd.Reason,
			p.ID(),
			-cmd.Quantity,
			stockBefore, p.CurrentStock(),
			reservedBefore, p.ReservedQuantity(),
			cmd.Actor,
			&cmd.TicketNumber,
			cmd.QuotationID,
			now,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to build ledger entry", err.Error())
		}
		if err := uc.ledger.Save(txCtx, entry); err != nil {
			return err
		}

		reserved = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("part reserved",
		"part_id", reserved.ID(),
		"serial_number", reserved.SerialNumber(),
		"quantity", cmd.Quantity,
		"ticket_number", cmd.TicketNumber,
		"reference", reference,
	)

	if uc.publisher != nil {
		event := part.NewStockReservedEvent(reserved.ID(), reserved.SerialNumber(), cmd.Quantity, cmd.TicketNumber, now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish stock reserved event", "part_id", reserved.ID(), "error", err)
		}
	}
	shared.NotifyStockLevel(uc.logger, uc.notifier, uc.publisher, uc.lowStockThreshold, reserved, beforeAvailable, cmd.TicketNumber, now)

	return &ReservePartResult{
		PartID:           reserved.ID(),
		SerialNumber:     reserved.SerialNumber(),
		ReservedQuantity: reserved.ReservedQuantity(),
		AvailableStock:   reserved.AvailableStock(),
		Reference:        reference,
	}, nil
}

func (uc *ReservePartUseCase) validateCommand(cmd ReservePartCommand) error {
	if cmd.PartID == 0 {
		return apperrors.NewValidationError("part ID is required")
	}
	if cmd.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive")
	}
	if cmd.TicketNumber == "" {
		return apperrors.NewValidationError("ticket number is required")
	}
	if cmd.Actor == "" {
		return apperrors.NewValidationError("actor is required")
	}
	return nil
}
