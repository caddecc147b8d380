package usecases

import (
	"context"
	"time"

	"servit/internal/domain/quotation"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type GetQuotationCommand struct {
	QuotationID string
}

type QuotationDetails struct {
	QuotationID        string
	TicketNumber       string
	Status             string
	CandidatePartIDs   []uint
	SelectedPartID     *uint
	LaborCostCents     int64
	TotalCostCents     *int64
	ExpiresAt          time.Time
	NextReminderAt     *time.Time
	LastReminderSentAt *time.Time
	ReminderSendCount  int
	SummarySentAt      *time.Time
	ApprovedByOverride bool
	OverrideNotes      string
	RespondedAt        *time.Time
	RespondedBy        string
	CreatedAt          time.Time
}

type GetQuotationUseCase struct {
	quotationRepo quotation.Repository
	logger        logger.Interface
}

func NewGetQuotationUseCase(quotationRepo quotation.Repository, log logger.Interface) *GetQuotationUseCase {
	return &GetQuotationUseCase{quotationRepo: quotationRepo, logger: log}
}

func (uc *GetQuotationUseCase) Execute(ctx context.Context, cmd GetQuotationCommand) (*QuotationDetails, error) {
	if cmd.QuotationID == "" {
		return nil, apperrors.NewValidationError("quotation ID is required")
	}

	q, err := uc.quotationRepo.FindByQuotationID(ctx, cmd.QuotationID)
	if err != nil {
		return nil, err
	}

	var totalCents *int64
	if q.TotalCost() != nil {
		v := q.TotalCost().AmountInCents()
		totalCents = &v
	}

	return &QuotationDetails{
		QuotationID:        q.QuotationID(),
		TicketNumber:       q.RepairTicketNumber(),
		Status:             q.Status().String(),
		CandidatePartIDs:   q.CandidatePartIDs(),
		SelectedPartID:     q.SelectedPartID(),
		LaborCostCents:     q.LaborCost().AmountInCents(),
		TotalCostCents:     totalCents,
		ExpiresAt:          q.ExpiresAt(),
		NextReminderAt:     q.NextReminderAt(),
		LastReminderSentAt: q.LastReminderSentAt(),
		ReminderSendCount:  q.ReminderSendCount(),
		SummarySentAt:      q.SummarySentAt(),
		ApprovedByOverride: q.ApprovedByOverride(),
		OverrideNotes:      q.OverrideNotes(),
		RespondedAt:        q.RespondedAt(),
		RespondedBy:        q.RespondedBy(),
		CreatedAt:          q.CreatedAt(),
	}, nil
}
