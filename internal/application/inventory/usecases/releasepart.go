package usecases

import (
	"context"

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

type ReleasePartCommand struct {
	PartID   uint
	Quantity int
	Actor    string
	Reason   invvo.Reason
}

type ReleasePartResult struct {
	PartID           uint
	SerialNumber     string
	ReleasedQuantity int
	AvailableStock   int
	Reference        string
}

// ReleasePartUseCase frees reserved units, for example when a ticket is
// cancelled or a quotation is superseded. Releasing more than is reserved
// clamps rather than failing, so a double release is harmless.
type ReleasePartUseCase struct {
	partRepo          part.Repository
	ledger            inventory.Repository
	txManager         shared.TransactionManager
	notifier          services.NotificationGateway
	publisher         events.EventPublisher
	clock             clock.Clock
	lowStockThreshold int
	logger            logger.Interface
}

func NewReleasePartUseCase(
	partRepo part.Repository,
	ledger inventory.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	lowStockThreshold int,
	log logger.Interface,
) *ReleasePartUseCase {
	return &ReleasePartUseCase{
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

func (uc *ReleasePartUseCase) Execute(ctx context.Context, cmd ReleasePartCommand) (*ReleasePartResult, error) {
	if cmd.PartID == 0 {
		return nil, apperrors.NewValidationError("part ID is required")
	}
	if cmd.Quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()
	reference := uuid.NewString()

	var (
		released        *part.Part
		releasedQty     int
		beforeAvailable int
		ticketNumber    *string
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.partRepo.FindByIDForUpdate(txCtx, cmd.PartID)
		if err != nil {
			return err
		}

		stockBefore := p.CurrentStock()
		reservedBefore := p.ReservedQuantity()
		beforeAvailable = p.AvailableStock()
		ticketNumber = p.ReservedForTicket()

		releasedQty, err = p.Release(cmd.Quantity, now)
		if err != nil {
			return apperrors.NewInvalidStateError("cannot release part", err.Error())
		}
		if err := uc.partRepo.Update(txCtx, p); err != nil {
			return err
		}

		entry, err := inventory.NewTransaction(
			reference,
			invvo.TypeRelease,
			cmd.Reason,
			p.ID(),
			releasedQty,
			stockBefore, p.CurrentStock(),
			reservedBefore, p.ReservedQuantity(),
			cmd.Actor,
			ticketNumber,
			nil,
			now,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to build ledger entry", err.Error())
		}
		if err := uc.ledger.Save(txCtx, entry); err != nil {
			return err
		}

		released = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("reservation released",
		"part_id", released.ID(),
		"serial_number", released.SerialNumber(),
		"requested", cmd.Quantity,
		"released", releasedQty,
		"reference", reference,
	)

	if uc.publisher != nil {
		event := part.NewStockReleasedEvent(released.ID(), released.SerialNumber(), releasedQty, now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish stock released event", "part_id", released.ID(), "error", err)
		}
	}
	refTicket := ""
	if ticketNumber != nil {
		refTicket = *ticketNumber
	}
	shared.NotifyStockLevel(uc.logger, uc.notifier, uc.publisher, uc.lowStockThreshold, released, beforeAvailable, refTicket, now)

	return &ReleasePartResult{
		PartID:           released.ID(),
		SerialNumber:     released.SerialNumber(),
		ReleasedQuantity: releasedQty,
		AvailableStock:   released.AvailableStock(),
		Reference:        reference,
	}, nil
}
