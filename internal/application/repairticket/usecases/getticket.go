package usecases

import (
	"context"
	"time"

	"servit/internal/domain/repairticket"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type GetTicketCommand struct {
	TicketNumber string
}

type HistoryEntryView struct {
	Status    string
	Notes     string
	Actor     string
	Photos    []string
	CreatedAt time.Time
}

type TicketDetails struct {
	TicketID         uint
	TicketNumber     string
	CustomerName     string
	CustomerEmail    string
	DeviceModel      string
	DeviceSerial     string
	IssueDescription string
	Technician       string
	Status           string
	History          []HistoryEntryView
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type GetTicketUseCase struct {
	ticketRepo repairticket.Repository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo repairticket.Repository, log logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{ticketRepo: ticketRepo, logger: log}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*TicketDetails, error) {
	if cmd.TicketNumber == "" {
		return nil, apperrors.NewValidationError("ticket number is required")
	}

	ticket, err := uc.ticketRepo.FindByTicketNumber(ctx, cmd.TicketNumber)
	if err != nil {
		return nil, err
	}
	history, err := uc.ticketRepo.FindHistory(ctx, ticket.ID())
	if err != nil {
		return nil, err
	}

	views := make([]HistoryEntryView, 0, len(history))
	for _, entry := range history {
		views = append(views, HistoryEntryView{
			Status:    entry.Status().String(),
			Notes:     entry.Notes(),
			Actor:     entry.Actor(),
			Photos:    entry.Photos(),
			CreatedAt: entry.CreatedAt(),
		})
	}

	return &TicketDetails{
		TicketID:         ticket.ID(),
		TicketNumber:     ticket.TicketNumber(),
		CustomerName:     ticket.CustomerName(),
		CustomerEmail:    ticket.CustomerEmail(),
		DeviceModel:      ticket.DeviceModel(),
		DeviceSerial:     ticket.DeviceSerial(),
		IssueDescription: ticket.IssueDescription(),
		Technician:       ticket.Technician(),
		Status:           ticket.Status().String(),
		History:          views,
		CreatedAt:        ticket.CreatedAt(),
		UpdatedAt:        ticket.UpdatedAt(),
	}, nil
}
