package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servit/internal/domain/part"
	partvo "servit/internal/domain/part/valueobjects"
	qvo "servit/internal/domain/quotation/valueobjects"
	"servit/internal/domain/repairticket"
	sharedvo "servit/internal/domain/shared/valueobjects"
	"servit/internal/shared/clock"
	apperrors "servit/internal/shared/errors"
)

func testConfig() Config {
	return Config{ExpiryDays: 7, ReminderDelayHours: 24, CustomerWarrantyDays: 365, LowStockThreshold: 1}
}

func seedTicket(t *testing.T, tickets *mockTicketRepo, number string) {
	t.Helper()
	ticket, err := repairticket.NewRepairTicket("Maria Santos", "maria@example.com", "ThinkPad X1", "SN-9912", "no power", "tech-01", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, ticket.SetID(1))
	require.NoError(t, ticket.SetTicketNumber(number))
	require.NoError(t, tickets.Create(context.Background(), ticket))
}

func seedPart(t *testing.T, parts *mockPartStore, serial string, stock int) *part.Part {
	t.Helper()
	p, err := part.NewPart("SCR-15-OLED", serial, "15in OLED panel", partvo.TypeStandard,
		sharedvo.NewMoney(80000, ""), stock, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, parts.Save(context.Background(), p))
	return p
}

func TestCreateQuotationUseCase_Execute(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))

	newUseCase := func(quotations *mockQuotationRepo, parts *mockPartStore, tickets *mockTicketRepo) *CreateQuotationUseCase {
		return NewCreateQuotationUseCase(quotations, parts, tickets, &mockTxManager{},
			newMockOTPStore(), &mockNotifier{}, &mockPublisher{}, clk, testConfig(), testLogger())
	}

	t.Run("creates a quotation and ties candidates to it", func(t *testing.T) {
		quotations := newMockQuotationRepo()
		parts := newMockPartStore()
		tickets := newMockTicketRepo()
		seedTicket(t, tickets, "RT-20260829-0001")
		p1 := seedPart(t, parts, "SN-0001", 2)
		p2 := seedPart(t, parts, "SN-0002", 1)
		uc := newUseCase(quotations, parts, tickets)

		result, err := uc.Execute(context.Background(), CreateQuotationCommand{
			TicketNumber:     "RT-20260829-0001",
			CandidatePartIDs: []uint{p1.ID(), p2.ID()},
			LaborCostCents:   150000,
			Actor:            "tech-01",
		})
		require.NoError(t, err)

		assert.Contains(t, result.QuotationID, "qt_")
		assert.Equal(t, clk.Now().Add(7*24*time.Hour), result.ExpiresAt)
		require.NotNil(t, p1.QuotationID())
		assert.Equal(t, result.QuotationID, *p1.QuotationID())
		require.NotNil(t, p2.QuotationID())

		stored, err := quotations.FindByQuotationID(context.Background(), result.QuotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusPending, stored.Status())
	})

	t.Run("archives the prior pending quotation and frees its candidates", func(t *testing.T) {
		quotations := newMockQuotationRepo()
		parts := newMockPartStore()
		tickets := newMockTicketRepo()
		seedTicket(t, tickets, "RT-20260829-0001")
		p1 := seedPart(t, parts, "SN-0001", 2)
		p2 := seedPart(t, parts, "SN-0002", 1)
		uc := newUseCase(quotations, parts, tickets)

		first, err := uc.Execute(context.Background(), CreateQuotationCommand{
			TicketNumber:     "RT-20260829-0001",
			CandidatePartIDs: []uint{p1.ID()},
			LaborCostCents:   150000,
			Actor:            "tech-01",
		})
		require.NoError(t, err)

		second, err := uc.Execute(context.Background(), CreateQuotationCommand{
			TicketNumber:     "RT-20260829-0001",
			CandidatePartIDs: []uint{p2.ID()},
			LaborCostCents:   180000,
			Actor:            "tech-01",
		})
		require.NoError(t, err)

		prior, err := quotations.FindByQuotationID(context.Background(), first.QuotationID)
		require.NoError(t, err)
		assert.Equal(t, qvo.StatusArchived, prior.Status())
		assert.Nil(t, p1.QuotationID())
		require.NotNil(t, p2.QuotationID())
		assert.Equal(t, second.QuotationID, *p2.QuotationID())
	})

	t.Run("rejects a reserved candidate", func(t *testing.T) {
		quotations := newMockQuotationRepo()
		parts := newMockPartStore()
		tickets := newMockTicketRepo()
		seedTicket(t, tickets, "RT-20260829-0001")
		p1 := seedPart(t, parts, "SN-0001", 2)
		require.NoError(t, p1.Reserve(1, "RT-20260829-0009", clk.Now()))
		uc := newUseCase(quotations, parts, tickets)

		_, err := uc.Execute(context.Background(), CreateQuotationCommand{
			TicketNumber:     "RT-20260829-0001",
			CandidatePartIDs: []uint{p1.ID()},
			LaborCostCents:   150000,
			Actor:            "tech-01",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidStateError(err))
	})

	t.Run("rejects a candidate with no available stock", func(t *testing.T) {
		quotations := newMockQuotationRepo()
		parts := newMockPartStore()
		tickets := newMockTicketRepo()
		seedTicket(t, tickets, "RT-20260829-0001")
		p1 := seedPart(t, parts, "SN-0001", 0)
		uc := newUseCase(quotations, parts, tickets)

		_, err := uc.Execute(context.Background(), CreateQuotationCommand{
			TicketNumber:     "RT-20260829-0001",
			CandidatePartIDs: []uint{p1.ID()},
			LaborCostCents:   150000,
			Actor:            "tech-01",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInsufficientStockError(err))
	})

	t.Run("rejects an unknown ticket", func(t *testing.T) {
		quotations := newMockQuotationRepo()
		parts := newMockPartStore()
		tickets := newMockTicketRepo()
		p1 := seedPart(t, parts, "SN-0001", 2)
		uc := newUseCase(quotations, parts, tickets)

		_, err := uc.Execute(context.Background(), CreateQuotationCommand{
			TicketNumber:     "RT-20260829-0404",
			CandidatePartIDs: []uint{p1.ID()},
			LaborCostCents:   150000,
			Actor:            "tech-01",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}
