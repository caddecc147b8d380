package usecases

import (
	"context"
	"fmt"
	"time"

	"servit/internal/application/shared"
	"servit/internal/domain/quotation"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/clock"
	"servit/internal/shared/logger"
)

// ProcessRemindersUseCase is the scheduler pass that nudges customers about
// pending quotations. Quotations that are already overdue are skipped; the
// expiry pass owns those.
type ProcessRemindersUseCase struct {
	quotationRepo quotation.Repository
	txManager     shared.TransactionManager
	notifier      services.NotificationGateway
	clock         clock.Clock
	reminderDelay time.Duration
	logger        logger.Interface
}

func NewProcessRemindersUseCase(
	quotationRepo quotation.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	clk clock.Clock,
	cfg Config,
	log logger.Interface,
) *ProcessRemindersUseCase {
	return &ProcessRemindersUseCase{
		quotationRepo: quotationRepo,
		txManager:     txManager,
		notifier:      notifier,
		clock:         clk,
		reminderDelay: time.Duration(cfg.ReminderDelayHours) * time.Hour,
		logger:        log,
	}
}

func (uc *ProcessRemindersUseCase) Name() string {
	return "quotation-reminders"
}

// Execute sends due reminders and returns how many went out. The reminder
// is recorded before it is delivered, so a crash cannot double-send within
// one scheduling window.
func (uc *ProcessRemindersUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.clock.Now()

	due, err := uc.quotationRepo.FindDuePending(ctx, now, batchLimit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, q := range due {
		if !q.ShouldRemind(now) {
			continue
		}
		if err := uc.remindOne(ctx, q); err != nil {
			uc.logger.Errorw("failed to process reminder",
				"quotation_id", q.QuotationID(),
				"ticket_number", q.RepairTicketNumber(),
				"error", err,
			)
			continue
		}
		sent++
	}

	if sent > 0 {
		uc.logger.Infow("sent quotation reminders", "count", sent)
	}
	return sent, nil
}

func (uc *ProcessRemindersUseCase) remindOne(ctx context.Context, q *quotation.Quotation) error {
	now := uc.clock.Now()

	var won bool
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := q.MarkReminderSent(uc.reminderDelay, now); err != nil {
			return err
		}
		stillPending, err := uc.quotationRepo.UpdateIfPending(txCtx, q)
		if err != nil {
			return err
		}
		won = stillPending
		return nil
	})
	if err != nil || !won {
		return err
	}

	message := fmt.Sprintf("reminder: quotation %s is awaiting your response until %s",
		q.QuotationID(), q.ExpiresAt().Format("2006-01-02"))
	if err := uc.notifier.Notify(ctx, services.AudienceCustomer, q.RepairTicketNumber(), message); err != nil {
		uc.logger.Warnw("failed to deliver reminder",
			"quotation_id", q.QuotationID(), "error", err)
	}
	return nil
}
