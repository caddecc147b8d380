package usecases

import (
	"context"

	"github.com/google/uuid"

	"servit/internal/application/shared"
	"servit/internal/domain/inventory"
	invvo "servit/internal/domain/inventory/valueobjects"
	"servit/internal/domain/part"
	partvo "servit/internal/domain/part/valueobjects"
	sharedvo "servit/internal/domain/shared/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type IntakePartCommand struct {
	PartNumber       string
	SerialNumber     string
	Name             string
	PartType         string
	UnitCostCents    int64
	Currency         string
	InitialStock     int
	SupplierOrderRef string
	Actor            string
}

type IntakePartResult struct {
	PartID       uint
	SerialNumber string
	CurrentStock int
	Reference    string
}

// IntakePartUseCase registers a new physical unit in inventory, typically
// from a supplier delivery. The opening stock is recorded as an intake row
// in the ledger so the audit trail starts at the part's first day.
type IntakePartUseCase struct {
	partRepo  part.Repository
	ledger    inventory.Repository
	txManager shared.TransactionManager
	clock     clock.Clock
	logger    logger.Interface
}

func NewIntakePartUseCase(
	partRepo part.Repository,
	ledger inventory.Repository,
	txManager shared.TransactionManager,
	clk clock.Clock,
	log logger.Interface,
) *IntakePartUseCase {
	return &IntakePartUseCase{
		partRepo:  partRepo,
		ledger:    ledger,
		txManager: txManager,
		clock:     clk,
		logger:    log,
	}
}

func (uc *IntakePartUseCase) Execute(ctx context.Context, cmd IntakePartCommand) (*IntakePartResult, error) {
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}
	partType, err := partvo.NewPartType(cmd.PartType)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid part type", err.Error())
	}
	if cmd.InitialStock <= 0 {
		return nil, apperrors.NewValidationError("initial stock must be positive")
	}

	now := uc.clock.Now()
	reference := uuid.NewString()

	p, err := part.NewPart(cmd.PartNumber, cmd.SerialNumber, cmd.Name, partType,
		sharedvo.NewMoney(cmd.UnitCostCents, cmd.Currency), cmd.InitialStock, now)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid part", err.Error())
	}
	if cmd.SupplierOrderRef != "" {
		if err := p.SetSupplierOrderRef(cmd.SupplierOrderRef, now); err != nil {
			return nil, apperrors.NewValidationError("invalid supplier order reference", err.Error())
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.partRepo.Save(txCtx, p); err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.NewConflictError("a part with this serial number already exists", cmd.SerialNumber)
			}
			return err
		}

		entry, err := inventory.NewTransaction(
			reference,
			invvo.TypeIntake,
			invvo.ReasonPartIntake,
			p.ID(),
			cmd.InitialStock,
			0, p.CurrentStock(),
			0, 0,
			cmd.Actor,
			nil,
			nil,
			now,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to build ledger entry", err.Error())
		}
		return uc.ledger.Save(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("part taken into inventory",
		"part_id", p.ID(),
		"part_number", p.PartNumber(),
		"serial_number", p.SerialNumber(),
		"initial_stock", cmd.InitialStock,
		"reference", reference,
	)

	return &IntakePartResult{
		PartID:       p.ID(),
		SerialNumber: p.SerialNumber(),
		CurrentStock: p.CurrentStock(),
		Reference:    reference,
	}, nil
}
