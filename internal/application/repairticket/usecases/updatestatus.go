package usecases

import (
	"context"
	"fmt"

	"servit/internal/application/shared"
	"servit/internal/domain/quotation"
	"servit/internal/domain/repairticket"
	vo "servit/internal/domain/repairticket/valueobjects"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

type UpdateStatusCommand struct {
	TicketNumber string
	NewStatus    string
	Notes        string
	Actor        string
	Photos       []string
}

type UpdateStatusResult struct {
	TicketNumber string
	Status       string
	NoOp         bool
}

// UpdateStatusUseCase advances a ticket through its lifecycle. Moving to
// repairing requires an approved quotation with a selected part; reaching
// repairing also triggers the one-time cost summary to the customer.
// Entering awaiting_parts announces the pending quotation awaiting the
// customer's approval; asking for an awaiting status the ticket is already
// in is a harmless no-op that still repeats that notice.
type UpdateStatusUseCase struct {
	ticketRepo    repairticket.Repository
	quotationRepo quotation.Repository
	txManager     shared.TransactionManager
	notifier      services.NotificationGateway
	publisher     events.EventPublisher
	clock         clock.Clock
	logger        logger.Interface
}

func NewUpdateStatusUseCase(
	ticketRepo repairticket.Repository,
	quotationRepo quotation.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	log logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		ticketRepo:    ticketRepo,
		quotationRepo: quotationRepo,
		txManager:     txManager,
		notifier:      notifier,
		publisher:     publisher,
		clock:         clk,
		logger:        log,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	if cmd.TicketNumber == "" {
		return nil, apperrors.NewValidationError("ticket number is required")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}
	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid status", err.Error())
	}

	now := uc.clock.Now()

	var (
		ticket        *repairticket.RepairTicket
		fromStatus    vo.TicketStatus
		summaryQuote  *quotation.Quotation
		awaitingQuote *quotation.Quotation
		noOp          bool
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.FindByTicketNumber(txCtx, cmd.TicketNumber)
		if err != nil {
			return err
		}
		fromStatus = t.Status()

		// Repeating an awaiting status, e.g. a second parts order notice,
		// is accepted without a duplicate history entry.
		if fromStatus == newStatus &&
			(newStatus == vo.StatusAwaitingParts || newStatus == vo.StatusAwaitingSupplierPart) {
			ticket = t
			noOp = true
			if newStatus == vo.StatusAwaitingParts {
				q, err := uc.pendingQuotation(txCtx, cmd.TicketNumber)
				if err != nil {
					return err
				}
				awaitingQuote = q
			}
			return nil
		}

		if newStatus.IsRepairing() {
			if err := uc.requireApprovedQuotation(txCtx, cmd.TicketNumber); err != nil {
				return err
			}
		}

		if err := t.Transition(newStatus, cmd.Notes, cmd.Actor, cmd.Photos, now); err != nil {
			return apperrors.NewInvalidStateError("cannot change ticket status", err.Error())
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if entry := t.LastHistoryEntry(); entry != nil {
			if err := uc.ticketRepo.AppendHistory(txCtx, entry); err != nil {
				return err
			}
		}

		// Parking the ticket on parts means a quotation is out for approval;
		// the notice names it, and is skipped when none is pending.
		if newStatus == vo.StatusAwaitingParts {
			q, err := uc.pendingQuotation(txCtx, cmd.TicketNumber)
			if err != nil {
				return err
			}
			awaitingQuote = q
		}

		// Once work has started the customer gets the agreed cost summary,
		// exactly once per quotation.
		if newStatus.AtLeast(vo.StatusRepairing) {
			q, err := uc.quotationRepo.FindLatestByTicket(txCtx, cmd.TicketNumber)
			if err == nil && q.Status().IsApproved() && q.SummarySentAt() == nil {
				if err := q.MarkSummarySent(now); err == nil {
					if err := uc.quotationRepo.Update(txCtx, q); err != nil {
						return err
					}
					summaryQuote = q
				}
			}
		}

		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if noOp {
		uc.notifyCustomer(cmd.TicketNumber, newStatus, nil, awaitingQuote)
		return &UpdateStatusResult{TicketNumber: cmd.TicketNumber, Status: ticket.Status().String(), NoOp: true}, nil
	}

	uc.logger.Infow("ticket status changed",
		"ticket_number", cmd.TicketNumber,
		"from", fromStatus.String(),
		"to", newStatus.String(),
		"actor", cmd.Actor,
	)

	if uc.publisher != nil {
		event := repairticket.NewTicketStatusChangedEvent(cmd.TicketNumber, fromStatus.String(), newStatus.String(), cmd.Actor, now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish status changed event", "ticket_number", cmd.TicketNumber, "error", err)
		}
		if newStatus.IsCompleted() {
			if err := uc.publisher.Publish(repairticket.NewTicketCompletedEvent(cmd.TicketNumber, now)); err != nil {
				uc.logger.Warnw("failed to publish ticket completed event", "ticket_number", cmd.TicketNumber, "error", err)
			}
		}
	}

	uc.notifyCustomer(cmd.TicketNumber, newStatus, summaryQuote, awaitingQuote)

	return &UpdateStatusResult{TicketNumber: cmd.TicketNumber, Status: newStatus.String()}, nil
}

// pendingQuotation returns the newest pending quotation for the ticket, or
// nil when nothing is out for approval.
func (uc *UpdateStatusUseCase) pendingQuotation(ctx context.Context, ticketNumber string) (*quotation.Quotation, error) {
	pending, err := uc.quotationRepo.FindPendingByTicket(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}
	return pending[len(pending)-1], nil
}

func (uc *UpdateStatusUseCase) requireApprovedQuotation(txCtx context.Context, ticketNumber string) error {
	q, err := uc.quotationRepo.FindLatestByTicket(txCtx, ticketNumber)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return apperrors.NewInvalidStateError("repair requires an approved quotation")
		}
		return err
	}
	if !q.Status().IsApproved() || q.SelectedPartID() == nil {
		return apperrors.NewInvalidStateError(
			fmt.Sprintf("repair requires an approved quotation; latest is %s", q.Status()))
	}
	return nil
}

func (uc *UpdateStatusUseCase) notifyCustomer(ticketNumber string, status vo.TicketStatus, summaryQuote, awaitingQuote *quotation.Quotation) {
	var messages []string
	switch status {
	case vo.StatusAwaitingParts:
		if awaitingQuote != nil {
			messages = append(messages,
				fmt.Sprintf("quotation %s is awaiting your approval before parts can be ordered", awaitingQuote.QuotationID()))
		}
	case vo.StatusAwaitingSupplierPart:
		messages = append(messages, "a replacement part was ordered from the supplier")
	case vo.StatusReadyForPickup:
		messages = append(messages, "your device is repaired and ready for pickup")
	case vo.StatusCompleted:
		messages = append(messages, "thank you, your repair is complete")
	}
	if summaryQuote != nil {
		total := summaryQuote.TotalCost()
		if total != nil {
			messages = append(messages,
				fmt.Sprintf("repair started on quotation %s; agreed total %s", summaryQuote.QuotationID(), total.String()))
		}
	}
	if len(messages) == 0 {
		return
	}

	goroutine.SafeGo(uc.logger, "ticket-status-notify", func() {
		for _, message := range messages {
			if err := uc.notifier.Notify(context.Background(), services.AudienceCustomer, ticketNumber, message); err != nil {
				uc.logger.Warnw("failed to deliver status notification", "ticket_number", ticketNumber, "error", err)
			}
		}
	})
}
