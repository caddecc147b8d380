package usecases

import (
	"context"

	"servit/internal/application/shared"
	"servit/internal/domain/inventory"
	"servit/internal/domain/part"
	"servit/internal/domain/quotation"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type OverrideQuotationCommand struct {
	QuotationID    string
	SelectedPartID uint
	Actor          string
	Notes          string
}

// OverrideQuotationUseCase lets a technician approve a quotation on the
// customer's behalf, bypassing the one-time code. Notes documenting how the
// customer consented are mandatory and kept on the quotation.
type OverrideQuotationUseCase struct {
	approver
}

func NewOverrideQuotationUseCase(
	quotationRepo quotation.Repository,
	partRepo part.Repository,
	ledger inventory.Repository,
	claimRepo warranty.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	cfg Config,
	log logger.Interface,
) *OverrideQuotationUseCase {
	return &OverrideQuotationUseCase{
		approver: approver{
			quotationRepo: quotationRepo,
			partRepo:      partRepo,
			ledger:        ledger,
			claimRepo:     claimRepo,
			txManager:     txManager,
			notifier:      notifier,
			publisher:     publisher,
			clock:         clk,
			cfg:           cfg,
			logger:        log,
		},
	}
}

func (uc *OverrideQuotationUseCase) Execute(ctx context.Context, cmd OverrideQuotationCommand) (*ApproveQuotationResult, error) {
	if cmd.QuotationID == "" {
		return nil, apperrors.NewValidationError("quotation ID is required")
	}
	if cmd.SelectedPartID == 0 {
		return nil, apperrors.NewValidationError("selected part ID is required")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}
	if cmd.Notes == "" {
		return nil, apperrors.NewValidationError("override notes are required")
	}

	return uc.approve(ctx, cmd.QuotationID, cmd.SelectedPartID, cmd.Actor, cmd.Notes)
}
