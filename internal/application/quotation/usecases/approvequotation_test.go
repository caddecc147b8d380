package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invvo "servit/internal/domain/inventory/valueobjects"
	"servit/internal/domain/part"
	qvo "servit/internal/domain/quotation/valueobjects"
	"servit/internal/domain/warranty"
	wvo "servit/internal/domain/warranty/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
)

// approvalFixture wires a pending quotation with two candidate parts through
// the create use case so the approval path starts from a realistic state.
type approvalFixture struct {
	quotations  *mockQuotationRepo
	parts       *mockPartStore
	ledger      *mockLedger
	claims      *mockClaimRepo
	otp         *mockOTPStore
	clk         *clock.Fake
	quotationID string
	partID1     uint
	partID2     uint
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	quotations := newMockQuotationRepo()
	parts := newMockPartStore()
	tickets := newMockTicketRepo()
	otp := newMockOTPStore()
	seedTicket(t, tickets, "RT-20260829-0001")
	p1 := seedPart(t, parts, "SN-0001", 3)
	p2 := seedPart(t, parts, "SN-0002", 1)

	create := NewCreateQuotationUseCase(quotations, parts, tickets, &mockTxManager{},
		otp, &mockNotifier{}, nil, clk, testConfig(), testLogger())
	result, err := create.Execute(context.Background(), CreateQuotationCommand{
		TicketNumber:     "RT-20260829-0001",
		CandidatePartIDs: []uint{p1.ID(), p2.ID()},
		LaborCostCents:   150000,
		Actor:            "tech-01",
	})
	require.NoError(t, err)

	otp.seed(result.QuotationID, "123456")
	return &approvalFixture{
		quotations:  quotations,
		parts:       parts,
		ledger:      &mockLedger{},
		claims:      newMockClaimRepo(),
		otp:         otp,
		clk:         clk,
		quotationID: result.QuotationID,
		partID1:     p1.ID(),
		partID2:     p2.ID(),
	}
}

func (f *approvalFixture) useCase(t *testing.T) *ApproveQuotationUseCase {
	t.Helper()
	return NewApproveQuotationUseCase(f.quotations, f.parts, f.ledger, f.claims, &mockTxManager{},
		f.otp, &mockNotifier{}, &mockPublisher{}, f.clk, testConfig(), testLogger())
}

func TestApproveQuotationUseCase_Execute(t *testing.T) {
	t.Run("reserves the selected part and frees the rest", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)

		result, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(150000+80000), result.TotalCostCents)

		q, err := f.quotations.FindByQuotationID(context.Background(), f.quotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusApproved, q.Status())

		selected, err := f.parts.FindByID(context.Background(), f.partID1)
		require.NoError(t, err)
		assert.Equal(t, 1, selected.ReservedQuantity())
		assert.True(t, selected.IsCustomerPurchased())
		require.NotNil(t, selected.WarrantyExpiration())
		assert.Equal(t, f.clk.Now().Add(365*24*time.Hour), *selected.WarrantyExpiration())

		other, err := f.parts.FindByID(context.Background(), f.partID2)
		require.NoError(t, err)
		assert.Nil(t, other.QuotationID())
		assert.Equal(t, 0, other.ReservedQuantity())

		require.Len(t, f.ledger.saved, 1)
		row := f.ledger.saved[0]
		assert.Equal(t, invvo.TypeReserve, row.Type())
		assert.Equal(t, invvo.ReasonQuotationApproved, row.Reason())
		require.NotNil(t, row.QuotationID())
		assert.Equal(t, f.quotationID, *row.QuotationID())
	})

	t.Run("rejects a wrong approval code", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)

		_, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "000000",
			Actor:          "customer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))

		q, err := f.quotations.FindByQuotationID(context.Background(), f.quotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusPending, q.Status())
	})

	t.Run("a consumed code cannot be replayed", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)

		_, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID2,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("refuses once the deadline passed", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)
		f.clk.Advance(8 * 24 * time.Hour)

		_, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidStateError(err))
	})

	t.Run("loses cleanly to a concurrent resolution", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)
		f.quotations.forceResolved(f.quotationID)

		_, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.Error(t, err)
	})

	t.Run("opens a warranty record for the sold part", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)

		result, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.NoError(t, err)
		require.NotEmpty(t, result.WarrantyID)

		record, err := f.claims.FindActiveByPartID(context.Background(), f.partID1)
		require.NoError(t, err)
		assert.Equal(t, result.WarrantyID, record.ClaimID())
		assert.Equal(t, wvo.StatusOpen, record.Status())
		assert.Equal(t, "RT-20260829-0001", record.TicketNumber())
		assert.Equal(t, "SN-0001", record.PartSerial())
		require.NotNil(t, record.PartID())
		assert.Equal(t, f.partID1, *record.PartID())
	})

	t.Run("a part under an active warranty cannot be sold", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)
		pid := f.partID1
		existing, err := warranty.NewClaim("wc_existing", &pid, "SN-0001", "RT-20260829-0001",
			wvo.KindInWarrantyRepair, "screen flicker", false, f.clk.Now())
		require.NoError(t, err)
		require.NoError(t, f.claims.Create(context.Background(), existing))

		_, err = uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))

		q, err := f.quotations.FindByQuotationID(context.Background(), f.quotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusPending, q.Status())
	})

	t.Run("selling across the stock threshold raises the low stock alert", func(t *testing.T) {
		f := newApprovalFixture(t)
		publisher := &mockPublisher{}
		cfg := testConfig()
		cfg.LowStockThreshold = 2
		uc := NewApproveQuotationUseCase(f.quotations, f.parts, f.ledger, f.claims, &mockTxManager{},
			f.otp, &mockNotifier{}, publisher, f.clk, cfg, testLogger())

		_, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.NoError(t, err)
		assert.Contains(t, publisher.eventTypes(), part.EventTypeLowStock)
	})

	t.Run("a failed approval leaves the code usable", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := f.useCase(t)

		_, err := uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: 999,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))

		_, err = uc.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.NoError(t, err)
	})
}

func TestOverrideQuotationUseCase_Execute(t *testing.T) {
	t.Run("approves without a code but with notes", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := NewOverrideQuotationUseCase(f.quotations, f.parts, f.ledger, f.claims, &mockTxManager{},
			&mockNotifier{}, nil, f.clk, testConfig(), testLogger())

		_, err := uc.Execute(context.Background(), OverrideQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID2,
			Actor:          "tech-01",
			Notes:          "customer confirmed by phone at 14:05",
		})
		require.NoError(t, err)

		q, err := f.quotations.FindByQuotationID(context.Background(), f.quotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusApproved, q.Status())
		assert.True(t, q.ApprovedByOverride())
		assert.Equal(t, "customer confirmed by phone at 14:05", q.OverrideNotes())
	})

	t.Run("notes are mandatory", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := NewOverrideQuotationUseCase(f.quotations, f.parts, f.ledger, f.claims, &mockTxManager{},
			&mockNotifier{}, nil, f.clk, testConfig(), testLogger())

		_, err := uc.Execute(context.Background(), OverrideQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID2,
			Actor:          "tech-01",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestDenyQuotationUseCase_Execute(t *testing.T) {
	t.Run("frees all candidates", func(t *testing.T) {
		f := newApprovalFixture(t)
		uc := NewDenyQuotationUseCase(f.quotations, f.parts, &mockTxManager{},
			&mockNotifier{}, nil, f.clk, testLogger())

		err := uc.Execute(context.Background(), DenyQuotationCommand{
			QuotationID: f.quotationID,
			Actor:       "customer",
			Reason:      "too expensive",
		})
		require.NoError(t, err)

		q, err := f.quotations.FindByQuotationID(context.Background(), f.quotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusRejected, q.Status())

		for _, partID := range []uint{f.partID1, f.partID2} {
			p, err := f.parts.FindByID(context.Background(), partID)
			require.NoError(t, err)
			assert.Nil(t, p.QuotationID())
		}
	})

	t.Run("a settled quotation cannot be denied", func(t *testing.T) {
		f := newApprovalFixture(t)
		approve := f.useCase(t)
		_, err := approve.Execute(context.Background(), ApproveQuotationCommand{
			QuotationID:    f.quotationID,
			SelectedPartID: f.partID1,
			OTPCode:        "123456",
			Actor:          "customer",
		})
		require.NoError(t, err)

		deny := NewDenyQuotationUseCase(f.quotations, f.parts, &mockTxManager{},
			&mockNotifier{}, nil, f.clk, testLogger())
		err = deny.Execute(context.Background(), DenyQuotationCommand{
			QuotationID: f.quotationID,
			Actor:       "customer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidStateError(err))
	})
}
