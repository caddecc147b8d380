package usecases

import (
	"context"
	"fmt"

	"servit/internal/application/shared"
	"servit/internal/domain/part"
	"servit/internal/domain/quotation"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

type DenyQuotationCommand struct {
	QuotationID string
	Actor       string
	Reason      string
}

// DenyQuotationUseCase records a customer's rejection. Candidate parts are
// freed and the technician is told the repair will not proceed on these
// terms.
type DenyQuotationUseCase struct {
	quotationRepo quotation.Repository
	partRepo      part.Repository
	txManager     shared.TransactionManager
	notifier      services.NotificationGateway
	publisher     events.EventPublisher
	clock         clock.Clock
	logger        logger.Interface
}

func NewDenyQuotationUseCase(
	quotationRepo quotation.Repository,
	partRepo part.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	log logger.Interface,
) *DenyQuotationUseCase {
	return &DenyQuotationUseCase{
		quotationRepo: quotationRepo,
		partRepo:      partRepo,
		txManager:     txManager,
		notifier:      notifier,
		publisher:     publisher,
		clock:         clk,
		logger:        log,
	}
}

func (uc *DenyQuotationUseCase) Execute(ctx context.Context, cmd DenyQuotationCommand) error {
	if cmd.QuotationID == "" {
		return apperrors.NewValidationError("quotation ID is required")
	}
	if cmd.Actor == "" {
		return apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()

	var denied *quotation.Quotation
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		q, err := uc.quotationRepo.FindByQuotationID(txCtx, cmd.QuotationID)
		if err != nil {
			return err
		}
		if !q.Status().IsPending() {
			return apperrors.NewInvalidStateError(
				fmt.Sprintf("quotation is %s and can no longer be denied", q.Status()))
		}

		if err := q.Deny(cmd.Actor, now); err != nil {
			return apperrors.NewInvalidStateError("cannot deny quotation", err.Error())
		}
		stillPending, err := uc.quotationRepo.UpdateIfPending(txCtx, q)
		if err != nil {
			return err
		}
		if !stillPending {
			return apperrors.NewConflictError("quotation was resolved by another request")
		}

		if err := detachCandidateParts(txCtx, uc.partRepo, q, nil, now); err != nil {
			return err
		}
		denied = q
		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("quotation denied",
		"quotation_id", denied.QuotationID(),
		"ticket_number", denied.RepairTicketNumber(),
		"actor", cmd.Actor,
		"reason", cmd.Reason,
	)

	if uc.publisher != nil {
		event := quotation.NewQuotationDeniedEvent(denied.QuotationID(), denied.RepairTicketNumber(), now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish quotation denied event", "quotation_id", denied.QuotationID(), "error", err)
		}
	}

	ticketNumber := denied.RepairTicketNumber()
	quotationID := denied.QuotationID()
	goroutine.SafeGo(uc.logger, "quotation-denied-notify", func() {
		message := fmt.Sprintf("quotation %s was declined by the customer", quotationID)
		if err := uc.notifier.Notify(context.Background(), services.AudienceTechnician, ticketNumber, message); err != nil {
			uc.logger.Warnw("failed to deliver denial notification", "quotation_id", quotationID, "error", err)
		}
	})

	return nil
}
