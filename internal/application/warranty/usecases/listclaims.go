package usecases

import (
	"context"
	"time"

	"servit/internal/domain/warranty"
	vo "servit/internal/domain/warranty/valueobjects"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils"
)

type ListClaimsCommand struct {
	Status   *string
	Kind     *string
	Page     int
	PageSize int
}

type ClaimSummary struct {
	ClaimID    string
	PartSerial string
	Kind       string
	Status     string
	Tampered   bool
	ResolvedBy string
	ResolvedAt *time.Time
	CreatedAt  time.Time
}

type ListClaimsResult struct {
	Claims     []ClaimSummary
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ListClaimsUseCase backs the admin review queue: filtering by
// pending_admin_review kind surfaces the claims a person has to decide.
type ListClaimsUseCase struct {
	claimRepo warranty.Repository
	logger    logger.Interface
}

func NewListClaimsUseCase(claimRepo warranty.Repository, log logger.Interface) *ListClaimsUseCase {
	return &ListClaimsUseCase{claimRepo: claimRepo, logger: log}
}

func (uc *ListClaimsUseCase) Execute(ctx context.Context, cmd ListClaimsCommand) (*ListClaimsResult, error) {
	filter := warranty.Filter{}
	if cmd.Status != nil {
		status, err := vo.NewClaimStatus(*cmd.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid claim status", err.Error())
		}
		filter.Status = &status
	}
	if cmd.Kind != nil {
		kind, err := vo.NewClaimKind(*cmd.Kind)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid claim kind", err.Error())
		}
		filter.Kind = &kind
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	filter.Page = pagination.Page
	filter.PageSize = pagination.PageSize

	claims, total, err := uc.claimRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClaimSummary, 0, len(claims))
	for _, c := range claims {
		summaries = append(summaries, ClaimSummary{
			ClaimID:    c.ClaimID(),
			PartSerial: c.PartSerial(),
			Kind:       c.Kind().String(),
			Status:     c.Status().String(),
			Tampered:   c.Tampered(),
			ResolvedBy: c.ResolvedBy(),
			ResolvedAt: c.ResolvedAt(),
			CreatedAt:  c.CreatedAt(),
		})
	}

	return &ListClaimsResult{
		Claims:     summaries,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}, nil
}
