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

type AdjustStockCommand struct {
	PartID uint
	Delta  int
	Actor  string
	Notes  string
}

type AdjustStockResult struct {
	PartID         uint
	SerialNumber   string
	CurrentStock   int
	AvailableStock int
	Reference      string
}

// AdjustStockUseCase applies a manual stock correction. The adjustment may
// not drive stock negative or below the reserved quantity.
type AdjustStockUseCase struct {
	partRepo          part.Repository
	ledger            inventory.Repository
	txManager         shared.TransactionManager
	notifier          services.NotificationGateway
	publisher         events.EventPublisher
	clock             clock.Clock
	lowStockThreshold int
	logger            logger.Interface
}

func NewAdjustStockUseCase(
	partRepo part.Repository,
	ledger inventory.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	lowStockThreshold int,
	log logger.Interface,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
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

func (uc *AdjustStockUseCase) Execute(ctx context.Context, cmd AdjustStockCommand) (*AdjustStockResult, error) {
	if cmd.PartID == 0 {
		return nil, apperrors.NewValidationError("part ID is required")
	}
	if cmd.Delta == 0 {
		return nil, apperrors.NewValidationError("adjustment delta cannot be zero")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()
	reference := uuid.NewString()

	var (
		adjusted        *part.Part
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

		if err := p.AdjustStock(cmd.Delta, now); err != nil {
			if strings.Contains(err.Error(), "negative") || strings.Contains(err.Error(), "reserved") {
				return apperrors.NewInsufficientStockError("cannot adjust stock", err.Error())
			}
			return apperrors.NewValidationError("cannot adjust stock", err.Error())
		}
		if err := uc.partRepo.Update(txCtx, p); err != nil {
			return err
		}

		entry, err := inventory.NewTransaction(
			reference,
			invvo.TypeAdjustment,
			invvo.ReasonManualAdjustment,
			p.ID(),
			cmd.Delta,
			stockBefore, p.CurrentStock(),
			reservedBefore, p.ReservedQuantity(),
			cmd.Actor,
			nil,
			nil,
			now,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to build ledger entry", err.Error())
		}
		if err := uc.ledger.Save(txCtx, entry); err != nil {
			return err
		}

		adjusted = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("stock adjusted",
		"part_id", adjusted.ID(),
		"serial_number", adjusted.SerialNumber(),
		"delta", cmd.Delta,
		"current_stock", adjusted.CurrentStock(),
		"notes", cmd.Notes,
		"reference", reference,
	)

	if uc.publisher != nil {
		event := part.NewStockAdjustedEvent(adjusted.ID(), adjusted.SerialNumber(), cmd.Delta, adjusted.CurrentStock(), now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish stock adjusted event", "part_id", adjusted.ID(), "error", err)
		}
	}
	shared.NotifyStockLevel(uc.logger, uc.notifier, uc.publisher, uc.lowStockThreshold, adjusted, beforeAvailable, "", now)

	return &AdjustStockResult{
		PartID:         adjusted.ID(),
		SerialNumber:   adjusted.SerialNumber(),
		CurrentStock:   adjusted.CurrentStock(),
		AvailableStock: adjusted.AvailableStock(),
		Reference:      reference,
	}, nil
}
