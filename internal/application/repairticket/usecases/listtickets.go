package usecases

import (
	"context"
	"time"

	"servit/internal/domain/repairticket"
	vo "servit/internal/domain/repairticket/valueobjects"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils"
)

type ListTicketsCommand struct {
	Status       *string
	Technician   *string
	CustomerName *string
	Page         int
	PageSize     int
}

type TicketSummary struct {
	TicketNumber string
	CustomerName string
	DeviceModel  string
	Technician   string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListTicketsResult struct {
	Tickets    []TicketSummary
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListTicketsUseCase struct {
	ticketRepo repairticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo repairticket.Repository, log logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: log}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error) {
	filter := repairticket.Filter{
		Technician:   cmd.Technician,
		CustomerName: cmd.CustomerName,
	}
	if cmd.Status != nil {
		status, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid ticket status", err.Error())
		}
		filter.Status = &status
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	filter.Page = pagination.Page
	filter.PageSize = pagination.PageSize

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		summaries = append(summaries, TicketSummary{
			TicketNumber: t.TicketNumber(),
			CustomerName: t.CustomerName(),
			DeviceModel:  t.DeviceModel(),
			Technician:   t.Technician(),
			Status:       t.Status().String(),
			CreatedAt:    t.CreatedAt(),
			UpdatedAt:    t.UpdatedAt(),
		})
	}

	return &ListTicketsResult{
		Tickets:    summaries,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}, nil
}
