// Package usecases implements the repair ticket application services:
// device check-in, status progression and ticket queries.
package usecases

import (
	"context"
	"fmt"
	"time"

	"servit/internal/application/shared"
	"servit/internal/domain/repairticket"
	vo "servit/internal/domain/repairticket/valueobjects"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/logger"
)

type CreateTicketCommand struct {
	CustomerName     string
	CustomerEmail    string
	DeviceModel      string
	DeviceSerial     string
	IssueDescription string
	Technician       string
	Actor            string
}

type CreateTicketResult struct {
	TicketID     uint
	TicketNumber string
	Status       string
	CreatedAt    time.Time
}

// CreateTicketUseCase checks a device in. The ticket starts in received with
// an opening history entry, and the customer gets the ticket number for
// tracking.
type CreateTicketUseCase struct {
	ticketRepo repairticket.Repository
	numberGen  repairticket.NumberGenerator
	txManager  shared.TransactionManager
	notifier   services.NotificationGateway
	publisher  events.EventPublisher
	clock      clock.Clock
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo repairticket.Repository,
	numberGen repairticket.NumberGenerator,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	log logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		numberGen:  numberGen,
		txManager:  txManager,
		notifier:   notifier,
		publisher:  publisher,
		clock:      clk,
		logger:     log,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()
	ticket, err := repairticket.NewRepairTicket(
		cmd.CustomerName,
		cmd.CustomerEmail,
		cmd.DeviceModel,
		cmd.DeviceSerial,
		cmd.IssueDescription,
		cmd.Technician,
		now,
	)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid ticket", err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := uc.numberGen.Next(txCtx, now)
		if err != nil {
			return apperrors.NewInternalError("failed to allocate ticket number", err.Error())
		}
		if err := ticket.SetTicketNumber(number); err != nil {
			return apperrors.NewInternalError("failed to set ticket number", err.Error())
		}
		if err := uc.ticketRepo.Create(txCtx, ticket); err != nil {
			return err
		}

		opening, err := repairticket.NewStatusHistoryEntry(ticket.ID(), vo.StatusReceived, "device checked in", cmd.Actor, nil, now)
		if err != nil {
			return apperrors.NewInternalError("failed to build opening history entry", err.Error())
		}
		return uc.ticketRepo.AppendHistory(txCtx, opening)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("repair ticket created",
		"ticket_number", ticket.TicketNumber(),
		"customer", cmd.CustomerName,
		"device_model", cmd.DeviceModel,
	)

	if uc.publisher != nil {
		event := repairticket.NewTicketCreatedEvent(ticket.TicketNumber(), cmd.CustomerName, cmd.DeviceModel, now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish ticket created event", "ticket_number", ticket.TicketNumber(), "error", err)
		}
	}

	ticketNumber := ticket.TicketNumber()
	goroutine.SafeGo(uc.logger, "ticket-created-notify", func() {
		message := fmt.Sprintf("your device was received; track your repair with ticket %s", ticketNumber)
		if err := uc.notifier.Notify(context.Background(), services.AudienceCustomer, ticketNumber, message); err != nil {
			uc.logger.Warnw("failed to deliver check-in notification", "ticket_number", ticketNumber, "error", err)
		}
	})

	return &CreateTicketResult{
		TicketID:     ticket.ID(),
		TicketNumber: ticket.TicketNumber(),
		Status:       ticket.Status().String(),
		CreatedAt:    ticket.CreatedAt(),
	}, nil
}
