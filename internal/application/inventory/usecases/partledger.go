package usecases

import (
	"context"
	"time"

	"servit/internal/domain/inventory"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type PartLedgerCommand struct {
	PartID uint
}

type LedgerEntry struct {
	Reference      string
	Type           string
	Reason         string
	QuantityDelta  int
	StockBefore    int
	StockAfter     int
	ReservedBefore int
	ReservedAfter  int
	Actor          string
	TicketNumber   *string
	QuotationID    *string
	CreatedAt      time.Time
}

type PartLedgerResult struct {
	PartID  uint
	Entries []LedgerEntry
}

// PartLedgerUseCase returns the full audit trail for one part, oldest first.
type PartLedgerUseCase struct {
	ledger inventory.Repository
	logger logger.Interface
}

func NewPartLedgerUseCase(ledger inventory.Repository, log logger.Interface) *PartLedgerUseCase {
	return &PartLedgerUseCase{ledger: ledger, logger: log}
}

func (uc *PartLedgerUseCase) Execute(ctx context.Context, cmd PartLedgerCommand) (*PartLedgerResult, error) {
	if cmd.PartID == 0 {
		return nil, apperrors.NewValidationError("part ID is required")
	}

	rows, err := uc.ledger.FindByPartID(ctx, cmd.PartID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LedgerEntry{
			Reference:      row.Reference(),
			Type:           row.Type().String(),
			Reason:         row.Reason().String(),
			QuantityDelta:  row.QuantityDelta(),
			StockBefore:    row.StockBefore(),
			StockAfter:     row.StockAfter(),
			ReservedBefore: row.ReservedBefore(),
			ReservedAfter:  row.ReservedAfter(),
			Actor:          row.Actor(),
			TicketNumber:   row.TicketNumber(),
			QuotationID:    row.QuotationID(),
			CreatedAt:      row.CreatedAt(),
		})
	}

	return &PartLedgerResult{PartID: cmd.PartID, Entries: entries}, nil
}
