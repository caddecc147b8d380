package usecases

import (
	"context"
	"fmt"
	"time"

	"servit/internal/application/shared"
	"servit/internal/domain/part"
	"servit/internal/domain/quotation"
	"servit/internal/domain/repairticket"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	sharedvo "servit/internal/domain/shared/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/id"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils/setutil"
)

type CreateQuotationCommand struct {
	TicketNumber     string
	CandidatePartIDs []uint
	LaborCostCents   int64
	Currency         string
	Actor            string
}

type CreateQuotationResult struct {
	QuotationID      string
	TicketNumber     string
	CandidatePartIDs []uint
	ExpiresAt        time.Time
}

// CreateQuotationUseCase issues a new quotation for a ticket. Candidate
// parts must be free, stocked, standard units; any pending quotation for the
// same ticket is archived so at most one is open at a time.
type CreateQuotationUseCase struct {
	quotationRepo quotation.Repository
	partRepo      part.Repository
	ticketRepo    repairticket.Repository
	txManager     shared.TransactionManager
	otpStore      ApprovalOTPStore
	notifier      services.NotificationGateway
	publisher     events.EventPublisher
	clock         clock.Clock
	cfg           Config
	logger        logger.Interface
}

func NewCreateQuotationUseCase(
	quotationRepo quotation.Repository,
	partRepo part.Repository,
	ticketRepo repairticket.Repository,
	txManager shared.TransactionManager,
	otpStore ApprovalOTPStore,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	cfg Config,
	log logger.Interface,
) *CreateQuotationUseCase {
	return &CreateQuotationUseCase{
		quotationRepo: quotationRepo,
		partRepo:      partRepo,
		ticketRepo:    ticketRepo,
		txManager:     txManager,
		otpStore:      otpStore,
		notifier:      notifier,
		publisher:     publisher,
		clock:         clk,
		cfg:           cfg,
		logger:        log,
	}
}

func (uc *CreateQuotationUseCase) Execute(ctx context.Context, cmd CreateQuotationCommand) (*CreateQuotationResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	quotationID, err := id.GenerateWithPrefix(id.PrefixQuotation, id.DefaultLength)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate quotation ID", err.Error())
	}

	expiresAt := now.Add(time.Duration(uc.cfg.ExpiryDays) * 24 * time.Hour)
	firstReminderAt := now.Add(time.Duration(uc.cfg.ReminderDelayHours) * time.Hour)

	var created *quotation.Quotation
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.ticketRepo.FindByTicketNumber(txCtx, cmd.TicketNumber); err != nil {
			return err
		}

		// Any still-pending quotation for this ticket is superseded.
		pending, err := uc.quotationRepo.FindPendingByTicket(txCtx, cmd.TicketNumber)
		if err != nil {
			return err
		}
		for _, prior := range pending {
			if err := prior.Archive(now); err != nil {
				return apperrors.NewInvalidStateError("cannot archive prior quotation", err.Error())
			}
			archived, err := uc.quotationRepo.UpdateIfPending(txCtx, prior)
			if err != nil {
				return err
			}
			if archived {
				if err := uc.detachCandidates(txCtx, prior, nil, now); err != nil {
					return err
				}
			}
		}

		q, err := quotation.NewQuotation(
			quotationID,
			cmd.TicketNumber,
			cmd.CandidatePartIDs,
			sharedvo.NewMoney(cmd.LaborCostCents, cmd.Currency),
			expiresAt,
			firstReminderAt,
			now,
		)
		if err != nil {
			return apperrors.NewValidationError("invalid quotation", err.Error())
		}

		for _, partID := range cmd.CandidatePartIDs {
			p, err := uc.partRepo.FindByIDForUpdate(txCtx, partID)
			if err != nil {
				return err
			}
			if err := p.EligibleForQuotation(); err != nil {
				return apperrors.NewInvalidStateError("part is not eligible as a candidate", err.Error())
			}
			if p.AvailableStock() < 1 {
				return apperrors.NewInsufficientStockError(
					fmt.Sprintf("part %s has no available stock", p.SerialNumber()))
			}
			if err := p.AttachQuotation(quotationID, now); err != nil {
				return apperrors.NewInvalidStateError("cannot attach part to quotation", err.Error())
			}
			if err := uc.partRepo.Update(txCtx, p); err != nil {
				return err
			}
		}

		if err := uc.quotationRepo.Create(txCtx, q); err != nil {
			return err
		}
		created = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("quotation created",
		"quotation_id", quotationID,
		"ticket_number", cmd.TicketNumber,
		"candidates", len(cmd.CandidatePartIDs),
		"expires_at", expiresAt,
	)

	if uc.publisher != nil {
		event := quotation.NewQuotationCreatedEvent(quotationID, cmd.TicketNumber, now)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish quotation created event", "quotation_id", quotationID, "error", err)
		}
	}

	goroutine.SafeGo(uc.logger, "quotation-created-notify", func() {
		bg := context.Background()
		code, err := uc.otpStore.Generate(bg, quotationID)
		if err != nil {
			uc.logger.Errorw("failed to generate approval code", "quotation_id", quotationID, "error", err)
			return
		}
		message := fmt.Sprintf("a repair quotation %s is ready for your review; use code %s to approve", quotationID, code)
		if err := uc.notifier.Notify(bg, services.AudienceCustomer, cmd.TicketNumber, message); err != nil {
			uc.logger.Warnw("failed to deliver quotation notification", "quotation_id", quotationID, "error", err)
		}
	})

	return &CreateQuotationResult{
		QuotationID:      created.QuotationID(),
		TicketNumber:     created.RepairTicketNumber(),
		CandidatePartIDs: created.CandidatePartIDs(),
		ExpiresAt:        created.ExpiresAt(),
	}, nil
}

// detachCandidates frees candidate parts when a quotation resolves. The
// selected part, if any, keeps its link.
func (uc *CreateQuotationUseCase) detachCandidates(txCtx context.Context, q *quotation.Quotation, exceptPartID *uint, now time.Time) error {
	return detachCandidateParts(txCtx, uc.partRepo, q, exceptPartID, now)
}

func (uc *CreateQuotationUseCase) validateCommand(cmd CreateQuotationCommand) error {
	if cmd.TicketNumber == "" {
		return apperrors.NewValidationError("ticket number is required")
	}
	if len(cmd.CandidatePartIDs) == 0 {
		return apperrors.NewValidationError("at least one candidate part is required")
	}
	seen := setutil.NewUintSetWithCap(len(cmd.CandidatePartIDs))
	for _, partID := range cmd.CandidatePartIDs {
		if seen.Has(partID) {
			return apperrors.NewValidationError(fmt.Sprintf("candidate part %d is listed twice", partID))
		}
		seen.Add(partID)
	}
	if cmd.LaborCostCents < 0 {
		return apperrors.NewValidationError("labor cost cannot be negative")
	}
	if cmd.Actor == "" {
		return apperrors.NewValidationError("actor is required")
	}
	return nil
}
