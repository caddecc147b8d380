package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"servit/internal/application/shared"
	"servit/internal/domain/inventory"
	invvo "servit/internal/domain/inventory/valueobjects"
	"servit/internal/domain/part"
	"servit/internal/domain/quotation"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	wvo "servit/internal/domain/warranty/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/goroutine"
	"servit/internal/shared/id"
	"servit/internal/shared/logger"
)

type ApproveQuotationCommand struct {
	QuotationID    string
	SelectedPartID uint
	OTPCode        string
	Actor          string
}

type ApproveQuotationResult struct {
	QuotationID    string
	TicketNumber   string
	SelectedPartID uint
	TotalCostCents int64
	WarrantyID     string
	Reference      string
}

// ApproveQuotationUseCase records the customer's approval. The one-time code
// sent with the quotation must check out; on success the selected part is
// reserved for the ticket, stamped as customer purchased with its warranty
// window and a warranty record opened for it, and the remaining candidates
// are freed. The code is only discarded after the approval has committed.
type ApproveQuotationUseCase struct {
	approver
	otpStore ApprovalOTPStore
}

// approver holds the transactional approval sequence shared with the
// technician override path.
type approver struct {
	quotationRepo quotation.Repository
	partRepo      part.Repository
	ledger        inventory.Repository
	claimRepo     warranty.Repository
	txManager     shared.TransactionManager
	notifier      services.NotificationGateway
	publisher     events.EventPublisher
	clock         clock.Clock
	cfg           Config
	logger        logger.Interface
}

func NewApproveQuotationUseCase(
	quotationRepo quotation.Repository,
	partRepo part.Repository,
	ledger inventory.Repository,
	claimRepo warranty.Repository,
	txManager shared.TransactionManager,
	otpStore ApprovalOTPStore,
	notifier services.NotificationGateway,
	publisher events.EventPublisher,
	clk clock.Clock,
	cfg Config,
	log logger.Interface,
) *ApproveQuotationUseCase {
	return &ApproveQuotationUseCase{
		approver: approver{
			quotationRepo: quotationRepo,
			partRepo:      partRepo,
			ledger:        ledger,
			claimRepo:     claimRepo,
			txManager:     txManager,
			notifier:      notifier,
			publisher:     publisher,
			clock:         clk,
			cfg:           cfg,
			logger:        log,
		},
		otpStore: otpStore,
	}
}

func (uc *ApproveQuotationUseCase) Execute(ctx context.Context, cmd ApproveQuotationCommand) (*ApproveQuotationResult, error) {
	if cmd.QuotationID == "" {
		return nil, apperrors.NewValidationError("quotation ID is required")
	}
	if cmd.SelectedPartID == 0 {
		return nil, apperrors.NewValidationError("selected part ID is required")
	}
	if cmd.OTPCode == "" {
		return nil, apperrors.NewValidationError("approval code is required")
	}
	if cmd.Actor == "" {
		return nil, apperrors.NewValidationError("actor is required")
	}

	if err := uc.otpStore.Verify(ctx, cmd.QuotationID, cmd.OTPCode); err != nil {
		return nil, apperrors.NewValidationError("invalid or expired approval code", err.Error())
	}

	result, err := uc.approve(ctx, cmd.QuotationID, cmd.SelectedPartID, cmd.Actor, "")
	if err != nil {
		return nil, err
	}

	if err := uc.otpStore.Consume(ctx, cmd.QuotationID); err != nil {
		uc.logger.Warnw("failed to discard approval code", "quotation_id", cmd.QuotationID, "error", err)
	}

	return result, nil
}

// approve runs the approval transaction. Non-empty overrideNotes marks the
// approval as a technician override.
func (a *approver) approve(ctx context.Context, quotationID string, selectedPartID uint, actor, overrideNotes string) (*ApproveQuotationResult, error) {
	now := a.clock.Now()
	reference := uuid.NewString()
	warrantyID, err := id.GenerateWithPrefix(id.PrefixWarranty, id.DefaultLength)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate warranty ID", err.Error())
	}

	var (
		approved        *quotation.Quotation
		selected        *part.Part
		beforeAvailable int
	)
	err = a.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		q, err := a.quotationRepo.FindByQuotationID(txCtx, quotationID)
		if err != nil {
			return err
		}
		if !q.Status().IsPending() {
			return apperrors.NewInvalidStateError(
				fmt.Sprintf("quotation is %s and can no longer be approved", q.Status()))
		}
		if q.IsExpired(now) {
			return apperrors.NewInvalidStateError("quotation has expired and can no longer be approved")
		}

		p, err := a.partRepo.FindByIDForUpdate(txCtx, selectedPartID)
		if err != nil {
			return err
		}

		// A part can carry only one active warranty, so a unit still under an
		// unresolved claim cannot be sold again.
		if _, err := a.claimRepo.FindActiveByPartID(txCtx, p.ID()); err == nil {
			return apperrors.NewConflictError("selected part already carries an active warranty")
		} else if !apperrors.IsNotFoundError(err) {
			return err
		}

		stockBefore := p.CurrentStock()
		reservedBefore := p.ReservedQuantity()
		beforeAvailable = p.AvailableStock()
		ticketNumber := q.RepairTicketNumber()

		if err := p.Reserve(1, ticketNumber, now); err != nil {
			if strings.Contains(err.Error(), "insufficient") {
				return apperrors.NewInsufficientStockError("selected part is out of stock", err.Error())
			}
			return apperrors.NewInvalidStateError("cannot reserve selected part", err.Error())
		}
		warrantyUntil := now.Add(time.Duration(a.cfg.CustomerWarrantyDays) * 24 * time.Hour)
		if err := p.MarkCustomerPurchased(now, warrantyUntil, now); err != nil {
			return apperrors.NewInvalidStateError("cannot mark part as purchased", err.Error())
		}

		if overrideNotes != "" {
			err = q.ApproveWithOverride(selectedPartID, p.UnitCost(), actor, overrideNotes, now)
		} else {
			err = q.Approve(selectedPartID, p.UnitCost(), actor, now)
		}
		if err != nil {
			return apperrors.NewInvalidStateError("cannot approve quotation", err.Error())
		}

		stillPending, err := a.quotationRepo.UpdateIfPending(txCtx, q)
		if err != nil {
			return err
		}
		if !stillPending {
			return apperrors.NewConflictError("quotation was resolved by another request")
		}

		if err := a.partRepo.Update(txCtx, p); err != nil {
			return err
		}

		pid := p.ID()
		coverage, err := warranty.NewClaim(warrantyID, &pid, p.SerialNumber(), ticketNumber,
			wvo.KindInWarrantyRepair,
			fmt.Sprintf("warranty coverage opened by approval of quotation %s", q.QuotationID()),
			false, now)
		if err != nil {
			return apperrors.NewInternalError("failed to build warranty record", err.Error())
		}
		if err := a.claimRepo.Create(txCtx, coverage); err != nil {
			return err
		}

		qid := q.QuotationID()
		entry, err := inventory.NewTransaction(
			reference,
			invvo.TypeReserve,
			invvo.ReasonQuotationApproved,
			p.ID(),
			-1,
			stockBefore, p.CurrentStock(),
			reservedBefore, p.ReservedQuantity(),
			actor,
			&ticketNumber,
			&qid,
			now,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to build ledger entry", err.Error())
		}
		if err := a.ledger.Save(txCtx, entry); err != nil {
			return err
		}

		if err := detachCandidateParts(txCtx, a.partRepo, q, &selectedPartID, now); err != nil {
			return err
		}

		approved = q
		selected = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	ticketNumber := approved.RepairTicketNumber()

	a.logger.Infow("quotation approved",
		"quotation_id", approved.QuotationID(),
		"ticket_number", ticketNumber,
		"selected_part_id", selectedPartID,
		"warranty_id", warrantyID,
		"override", overrideNotes != "",
		"reference", reference,
	)

	if a.publisher != nil {
		event := quotation.NewQuotationApprovedEvent(
			approved.QuotationID(), ticketNumber, selectedPartID, overrideNotes != "", now)
		if err := a.publisher.Publish(event); err != nil {
			a.logger.Warnw("failed to publish quotation approved event", "quotation_id", approved.QuotationID(), "error", err)
		}
	}

	shared.NotifyStockLevel(a.logger, a.notifier, a.publisher, a.cfg.LowStockThreshold, selected, beforeAvailable, ticketNumber, now)

	serial := selected.SerialNumber()
	goroutine.SafeGo(a.logger, "quotation-approved-notify", func() {
		message := fmt.Sprintf("quotation %s approved; part %s is reserved and the repair may start", approved.QuotationID(), serial)
		if err := a.notifier.Notify(context.Background(), services.AudienceTechnician, ticketNumber, message); err != nil {
			a.logger.Warnw("failed to deliver approval notification", "quotation_id", approved.QuotationID(), "error", err)
		}
	})

	var totalCents int64
	if approved.TotalCost() != nil {
		totalCents = approved.TotalCost().AmountInCents()
	}
	return &ApproveQuotationResult{
		QuotationID:    approved.QuotationID(),
		TicketNumber:   ticketNumber,
		SelectedPartID: selectedPartID,
		TotalCostCents: totalCents,
		WarrantyID:     warrantyID,
		Reference:      reference,
	}, nil
}
