package usecases

import (
	"context"

	"servit/internal/domain/part"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils"
)

type ListPartsCommand struct {
	PartNumber    *string
	SerialNumber  *string
	PartType      *string
	OnlyAvailable bool
	Page          int
	PageSize      int
}

type PartSummary struct {
	PartID            uint
	PartNumber        string
	SerialNumber      string
	Name              string
	PartType          string
	UnitCostCents     int64
	CurrentStock      int
	ReservedQuantity  int
	AvailableStock    int
	IsReserved        bool
	ReservedForTicket *string
}

type ListPartsResult struct {
	Parts      []PartSummary
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListPartsUseCase struct {
	partRepo part.Repository
	logger   logger.Interface
}

func NewListPartsUseCase(partRepo part.Repository, log logger.Interface) *ListPartsUseCase {
	return &ListPartsUseCase{partRepo: partRepo, logger: log}
}

func (uc *ListPartsUseCase) Execute(ctx context.Context, cmd ListPartsCommand) (*ListPartsResult, error) {
	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	parts, total, err := uc.partRepo.List(ctx, part.Filter{
		PartNumber:    cmd.PartNumber,
		SerialNumber:  cmd.SerialNumber,
		PartType:      cmd.PartType,
		OnlyAvailable: cmd.OnlyAvailable,
		Page:          pagination.Page,
		PageSize:      pagination.PageSize,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]PartSummary, 0, len(parts))
	for _, p := range parts {
		summaries = append(summaries, PartSummary{
			PartID:            p.ID(),
			PartNumber:        p.PartNumber(),
			SerialNumber:      p.SerialNumber(),
			Name:              p.Name(),
			PartType:          p.PartType().String(),
			UnitCostCents:     p.UnitCost().AmountInCents(),
			CurrentStock:      p.CurrentStock(),
			ReservedQuantity:  p.ReservedQuantity(),
			AvailableStock:    p.AvailableStock(),
			IsReserved:        p.IsReserved(),
			ReservedForTicket: p.ReservedForTicket(),
		})
	}

	return &ListPartsResult{
		Parts:      summaries,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}, nil
}
