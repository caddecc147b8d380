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
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

const batchLimit = 200

// ExpireQuotationsUseCase is the scheduler pass that closes out pending
// quotations past their deadline. It runs before the reminder pass each
// tick so an overdue quotation is expired, never reminded. A failure on one
// quotation is logged and does not stop the sweep.
type ExpireQuotationsUseCase struct {
	quotationRepo quotation.Repository
	partRepo      part.Repository
	txManager     shared.TransactionManager
	notifier      services.NotificationGateway
	publisher     events.EventPublisher
	clock         clock.Clock
	logger        logger.Interface
}

func NewExpireQuotationsUseCase(
	quotationRepo quotation.Repository,
	partRepo part.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	log logger.Interface,
) *ExpireQuotationsUseCase {
	return &ExpireQuotationsUseCase{
		quotationRepo: quotationRepo,
		partRepo:      partRepo,
		txManager:     txManager,
		notifier:      notifier,
		publisher:     publisher,
		clock:         clk,
		logger:        log,
	}
}

func (uc *ExpireQuotationsUseCase) Name() string {
	return "expire-quotations"
}

// Execute expires every due pending quotation and returns how many were
// expired.
func (uc *ExpireQuotationsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()

	due, err := uc.quotationRepo.FindDuePending(ctx, now, batchLimit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, q := range due {
		if !q.IsExpired(now) {
			continue
		}
		if err := uc.expireOne(ctx, q); err != nil {
			uc.logger.Errorw("failed to expire quotation",
				"quotation_id", q.QuotationID(),
				"ticket_number", q.RepairTicketNumber(),
				"error", err,
			)
			continue
		}
		expired++
	}

	if expired > 0 {
		uc.logger.Infow("expired overdue quotations", "count", expired)
	}
	return expired, nil
}

func (uc *ExpireQuotationsUseCase) expireOne(ctx context.Context, q *quotation.Quotation) error {
	now := uc.clock.Now()

	var won bool
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := q.Expire(now); err != nil {
			return err
		}
		stillPending, err := uc.quotationRepo.UpdateIfPending(txCtx, q)
		if err != nil {
			return err
		}
		if !stillPending {
			// A customer response won the race; nothing to do.
			return nil
		}
		won = true
		return detachCandidateParts(txCtx, uc.partRepo, q, nil, now)
	})
	if err != nil || !won {
		return err
	}

	if uc.publisher != nil {
		event := quotation.NewQuotationExpiredEvent(q.QuotationID(), q.RepairTicketNumber(), now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish quotation expired event", "quotation_id", q.QuotationID(), "error", err)
		}
	}

	quotationID := q.QuotationID()
	ticketNumber := q.RepairTicketNumber()
	goroutine.SafeGo(uc.logger, "quotation-expired-notify", func() {
		bg := context.Background()
		if err := uc.notifier.Notify(bg, services.AudienceCustomer, ticketNumber,
			fmt.Sprintf("quotation %s has expired; contact the shop for a new one", quotationID)); err != nil {
			uc.logger.Warnw("failed to deliver expiry notification", "quotation_id", quotationID, "error", err)
		}
		if err := uc.notifier.Notify(bg, services.AudienceTechnician, ticketNumber,
			fmt.Sprintf("quotation %s expired without a customer response", quotationID)); err != nil {
			uc.logger.Warnw("failed to deliver expiry notification", "quotation_id", quotationID, "error", err)
		}
	})

	return nil
}
