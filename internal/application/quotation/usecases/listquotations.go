package usecases

import (
	"context"
	"time"

	"servit/internal/domain/quotation"
	vo "servit/internal/domain/quotation/valueobjects"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils"
)

type ListQuotationsCommand struct {
	Status       *string
	TicketNumber *string
	Page         int
	PageSize     int
}

type QuotationSummary struct {
	QuotationID    string
	TicketNumber   string
	Status         string
	LaborCostCents int64
	TotalCostCents *int64
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

type ListQuotationsResult struct {
	Quotations []QuotationSummary
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListQuotationsUseCase struct {
	quotationRepo quotation.Repository
	logger        logger.Interface
}

func NewListQuotationsUseCase(quotationRepo quotation.Repository, log logger.Interface) *ListQuotationsUseCase {
	return &ListQuotationsUseCase{quotationRepo: quotationRepo, logger: log}
}

func (uc *ListQuotationsUseCase) Execute(ctx context.Context, cmd ListQuotationsCommand) (*ListQuotationsResult, error) {
	filter := quotation.Filter{TicketNumber: cmd.TicketNumber}
	if cmd.Status != nil {
		status, err := vo.NewQuotationStatus(*cmd.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid quotation status", err.Error())
		}
		filter.Status = &status
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	filter.Page = pagination.Page
	filter.PageSize = pagination.PageSize

	quotations, total, err := uc.quotationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]QuotationSummary, 0, len(quotations))
	for _, q := range quotations {
		var totalCents *int64
		if q.TotalCost() != nil {
			v := q.TotalCost().AmountInCents()
			totalCents = &v
		}
		summaries = append(summaries, QuotationSummary{
			QuotationID:    q.QuotationID(),
			TicketNumber:   q.RepairTicketNumber(),
			Status:         q.Status().String(),
			LaborCostCents: q.LaborCost().AmountInCents(),
			TotalCostCents: totalCents,
			ExpiresAt:      q.ExpiresAt(),
			CreatedAt:      q.CreatedAt(),
		})
	}

	return &ListQuotationsResult{
		Quotations: summaries,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}, nil
}
