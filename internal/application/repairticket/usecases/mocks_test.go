package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"servit/internal/domain/quotation"
	"servit/internal/domain/repairticket"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type mockTicketRepo struct {
	mu       sync.Mutex
	byNumber map[string]*repairticket.RepairTicket
	history  map[uint][]*repairticket.StatusHistoryEntry
	nextID   uint
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{
		byNumber: make(map[string]*repairticket.RepairTicket),
		history:  make(map[uint][]*repairticket.StatusHistoryEntry),
		nextID:   1,
	}
}

func (m *mockTicketRepo) Create(ctx context.Context, t *repairticket.RepairTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID() == 0 {
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.byNumber[t.TicketNumber()] = t
	return nil
}

func (m *mockTicketRepo) Update(ctx context.Context, t *repairticket.RepairTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byNumber[t.TicketNumber()] = t
	return nil
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (*repairticket.RepairTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byNumber {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepo) FindByTicketNumber(ctx context.Context, ticketNumber string) (*repairticket.RepairTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byNumber[ticketNumber]; ok {
		return t, nil
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepo) List(ctx context.Context, filter repairticket.Filter) ([]*repairticket.RepairTicket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepo) AppendHistory(ctx context.Context, entry *repairticket.StatusHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[entry.TicketID()] = append(m.history[entry.TicketID()], entry)
	return nil
}

func (m *mockTicketRepo) FindHistory(ctx context.Context, ticketID uint) ([]*repairticket.StatusHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[ticketID], nil
}

// mockQuotationLookup satisfies quotation.Repository; only the lookups used
// by the status guards and notices are configurable.
type mockQuotationLookup struct {
	latestFunc  func(ctx context.Context, ticketNumber string) (*quotation.Quotation, error)
	pendingFunc func(ctx context.Context, ticketNumber string) ([]*quotation.Quotation, error)
	updated     []*quotation.Quotation
}

func (m *mockQuotationLookup) Create(ctx context.Context, q *quotation.Quotation) error { return nil }

func (m *mockQuotationLookup) Update(ctx context.Context, q *quotation.Quotation) error {
	m.updated = append(m.updated, q)
	return nil
}

func (m *mockQuotationLookup) FindByID(ctx context.Context, id uint) (*quotation.Quotation, error) {
	return nil, apperrors.NewNotFoundError("quotation not found")
}

func (m *mockQuotationLookup) FindByQuotationID(ctx context.Context, quotationID string) (*quotation.Quotation, error) {
	return nil, apperrors.NewNotFoundError("quotation not found")
}

func (m *mockQuotationLookup) FindPendingByTicket(ctx context.Context, ticketNumber string) ([]*quotation.Quotation, error) {
	if m.pendingFunc != nil {
		return m.pendingFunc(ctx, ticketNumber)
	}
	return nil, nil
}

func (m *mockQuotationLookup) FindLatestByTicket(ctx context.Context, ticketNumber string) (*quotation.Quotation, error) {
	if m.latestFunc != nil {
		return m.latestFunc(ctx, ticketNumber)
	}
	return nil, apperrors.NewNotFoundError("no quotation for ticket")
}

func (m *mockQuotationLookup) List(ctx context.Context, filter quotation.Filter) ([]*quotation.Quotation, int64, error) {
	return nil, 0, nil
}

func (m *mockQuotationLookup) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*quotation.Quotation, error) {
	return nil, nil
}

func (m *mockQuotationLookup) UpdateIfPending(ctx context.Context, q *quotation.Quotation) (bool, error) {
	return true, nil
}

type mockNumberGen struct {
	mu  sync.Mutex
	seq int
}

func (m *mockNumberGen) Next(ctx context.Context, day time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("RT-%s-%04d", day.Format("20060102"), m.seq), nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (m *mockNotifier) Notify(ctx context.Context, audience services.Audience, ticketNumber string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, string(audience)+": "+message)
	return nil
}

func (m *mockNotifier) messageCount(substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if strings.Contains(c, substr) {
			count++
		}
	}
	return count
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := m.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockPublisher) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.published))
	for _, e := range m.published {
		types = append(types, e.GetEventType())
	}
	return types
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
