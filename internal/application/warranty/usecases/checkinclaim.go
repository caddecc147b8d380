// Package usecases implements the warranty application services: check-in
// classification, auto-replacement execution and claim denial.
package usecases

import (
	"context"
	"fmt"

	"servit/internal/application/shared"
	"servit/internal/domain/part"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	wvo "servit/internal/domain/warranty/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/id"
	"servit/internal/shared/logger"
)

type CheckInClaimCommand struct {
	TicketNumber     string
	SerialNumber     string
	IssueDescription string
	Tampered         bool
	Actor            string
}

type CheckInClaimResult struct {
	ClaimID    string
	Kind       string
	StatusCode string
	Message    string
	Chargeable bool
}

// CheckInClaimUseCase classifies a warranty check-in and opens the claim.
// The verdict routes the device: automatic replacement, free repair, admin
// review, or chargeable repair.
type CheckInClaimUseCase struct {
	claimRepo warranty.Repository
	partRepo  part.Repository
	txManager shared.TransactionManager
	notifier  services.NotificationGateway
	clock     clock.Clock
	cfg       warranty.ClassifierConfig
	logger    logger.Interface
}

func NewCheckInClaimUseCase(
	claimRepo warranty.Repository,
	partRepo part.Repository,
	txManager shared.TransactionManager,
	notifier services.NotificationGateway,
	clk clock.Clock,
	cfg warranty.ClassifierConfig,
	log logger.Interface,
) *CheckInClaimUseCase {
	return &CheckInClaimUseCase{
		claimRepo: claimRepo,
		partRepo:  partRepo,
		txManager: txManager,
		notifier:  notifier,
		clock:     clk,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *CheckInClaimUseCase) Execute(ctx context.Context, cmd CheckInClaimCommand) (*CheckInClaimResult, error) {
	if cmd.TicketNumber == "" {
		return nil, apperrors.NewValidationError("ticket number is required")
	}
	if cmd.SerialNumber == "" {
		return nil, apperrors.NewValidationError("serial number is required")
	}
	if cmd.IssueDescription == "" {
		return nil, apperrors.NewValidationError("issue description is required")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}

	now := uc.clock.Now()
	claimID, err := id.GenerateWithPrefix(id.PrefixWarranty, id.DefaultLength)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate claim ID", err.Error())
	}

	var verdict warranty.Verdict
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var partID *uint
		p, err := uc.partRepo.FindBySerialNumber(txCtx, cmd.SerialNumber)
		if err != nil {
			if !apperrors.IsNotFoundError(err) {
				return err
			}
			p = nil
		}
		if p != nil {
			pid := p.ID()
			partID = &pid
			if existing, err := uc.claimRepo.FindActiveByPartID(txCtx, p.ID()); err == nil {
				return apperrors.NewConflictError(
					fmt.Sprintf("part %s already has active claim %s", cmd.SerialNumber, existing.ClaimID()))
			} else if !apperrors.IsNotFoundError(err) {
				return err
			}
		}

		verdict = warranty.Classify(p, cmd.Tampered, uc.cfg, now)

		claim, err := warranty.NewClaim(claimID, partID, cmd.SerialNumber, cmd.TicketNumber,
			verdict.Kind, cmd.IssueDescription, cmd.Tampered, now)
		if err != nil {
			return apperrors.NewValidationError("invalid claim", err.Error())
		}
		return uc.claimRepo.Create(txCtx, claim)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("warranty claim opened",
		"claim_id", claimID,
		"ticket_number", cmd.TicketNumber,
		"serial_number", cmd.SerialNumber,
		"kind", verdict.Kind.String(),
	)

	uc.notifyVerdict(cmd.TicketNumber, claimID, verdict)

	return &CheckInClaimResult{
		ClaimID:    claimID,
		Kind:       verdict.Kind.String(),
		StatusCode: verdict.StatusCode,
		Message:    verdict.Message,
		Chargeable: verdict.Kind.IsChargeable(),
	}, nil
}

func (uc *CheckInClaimUseCase) notifyVerdict(ticketNumber, claimID string, verdict warranty.Verdict) {
	audience := services.AudienceCustomer
	if verdict.Kind == wvo.KindPendingAdminReview {
		audience = services.AudienceAdmin
	}
	goroutine.SafeGo(uc.logger, "claim-verdict-notify", func() {
		message := fmt.Sprintf("warranty claim %s: %s", claimID, verdict.Message)
		if err := uc.notifier.Notify(context.Background(), audience, ticketNumber, message); err != nil {
			uc.logger.Warnw("failed to deliver claim verdict", "claim_id", claimID, "error", err)
		}
	})
}
