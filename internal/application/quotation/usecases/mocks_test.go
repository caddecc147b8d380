package usecases

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"servit/internal/domain/inventory"
	"servit/internal/domain/part"
	"servit/internal/domain/quotation"
	"servit/internal/domain/repairticket"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

// mockQuotationRepo keeps quotations in memory keyed by quotation ID and
// emulates the conditional pending update.
type mockQuotationRepo struct {
	mu      sync.Mutex
	byID    map[string]*quotation.Quotation
	pending map[string]bool
	nextID  uint
}

func newMockQuotationRepo() *mockQuotationRepo {
	return &mockQuotationRepo{
		byID:    make(map[string]*quotation.Quotation),
		pending: make(map[string]bool),
		nextID:  1,
	}
}

func (m *mockQuotationRepo) Create(ctx context.Context, q *quotation.Quotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID() == 0 {
		if err := q.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.byID[q.QuotationID()] = q
	m.pending[q.QuotationID()] = q.Status().IsPending()
	return nil
}

func (m *mockQuotationRepo) Update(ctx context.Context, q *quotation.Quotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[q.QuotationID()] = q
	m.pending[q.QuotationID()] = q.Status().IsPending()
	return nil
}

func (m *mockQuotationRepo) FindByID(ctx context.Context, id uint) (*quotation.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.byID {
		if q.ID() == id {
			return q, nil
		}
	}
	return nil, apperrors.NewNotFoundError("quotation not found")
}

func (m *mockQuotationRepo) FindByQuotationID(ctx context.Context, quotationID string) (*quotation.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.byID[quotationID]; ok {
		return q, nil
	}
	return nil, apperrors.NewNotFoundError("quotation not found")
}

func (m *mockQuotationRepo) FindPendingByTicket(ctx context.Context, ticketNumber string) ([]*quotation.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*quotation.Quotation
	for qid, q := range m.byID {
		if q.RepairTicketNumber() == ticketNumber && m.pending[qid] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuotationRepo) FindLatestByTicket(ctx context.Context, ticketNumber string) (*quotation.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *quotation.Quotation
	for _, q := range m.byID {
		if q.RepairTicketNumber() != ticketNumber {
			continue
		}
		if latest == nil || q.CreatedAt().After(latest.CreatedAt()) {
			latest = q
		}
	}
	if latest == nil {
		return nil, apperrors.NewNotFoundError("no quotation for ticket")
	}
	return latest, nil
}

func (m *mockQuotationRepo) List(ctx context.Context, filter quotation.Filter) ([]*quotation.Quotation, int64, error) {
	return nil, 0, nil
}

func (m *mockQuotationRepo) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*quotation.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*quotation.Quotation
	for qid, q := range m.byID {
		if !m.pending[qid] {
			continue
		}
		dueForExpiry := !now.Before(q.ExpiresAt())
		dueForReminder := q.NextReminderAt() != nil && !now.Before(*q.NextReminderAt())
		if dueForExpiry || dueForReminder {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuotationRepo) UpdateIfPending(ctx context.Context, q *quotation.Quotation) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending[q.QuotationID()] {
		return false, nil
	}
	m.byID[q.QuotationID()] = q
	m.pending[q.QuotationID()] = q.Status().IsPending()
	return true, nil
}

// forceResolved simulates another writer settling the quotation first.
func (m *mockQuotationRepo) forceResolved(quotationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[quotationID] = false
}

// mockPartStore keeps parts in memory keyed by ID.
type mockPartStore struct {
	mu     sync.Mutex
	byID   map[uint]*part.Part
	nextID uint
}

func newMockPartStore() *mockPartStore {
	return &mockPartStore{byID: make(map[uint]*part.Part), nextID: 1}
}

func (m *mockPartStore) add(p *part.Part) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID()] = p
}

func (m *mockPartStore) Save(ctx context.Context, p *part.Part) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID() == 0 {
		if err := p.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.byID[p.ID()] = p
	return nil
}

func (m *mockPartStore) Update(ctx context.Context, p *part.Part) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID()] = p
	return nil
}

func (m *mockPartStore) FindByID(ctx context.Context, id uint) (*part.Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("part not found")
}

func (m *mockPartStore) FindByIDForUpdate(ctx context.Context, id uint) (*part.Part, error) {
	return m.FindByID(ctx, id)
}

func (m *mockPartStore) FindBySerialNumber(ctx context.Context, serialNumber string) (*part.Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.SerialNumber() == serialNumber {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("part not found")
}

func (m *mockPartStore) List(ctx context.Context, filter part.Filter) ([]*part.Part, int64, error) {
	return nil, 0, nil
}

func (m *mockPartStore) FindReplacementCandidate(ctx context.Context, partNumber string, excludeID uint) (*part.Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.ID() == excludeID || p.PartNumber() != partNumber {
			continue
		}
		if p.EligibleForQuotation() == nil && p.AvailableStock() > 0 {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no replacement candidate")
}

type mockTicketRepo struct {
	byNumber map[string]*repairticket.RepairTicket
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{byNumber: make(map[string]*repairticket.RepairTicket)}
}

func (m *mockTicketRepo) Create(ctx context.Context, t *repairticket.RepairTicket) error {
	m.byNumber[t.TicketNumber()] = t
	return nil
}

func (m *mockTicketRepo) Update(ctx context.Context, t *repairticket.RepairTicket) error {
	m.byNumber[t.TicketNumber()] = t
	return nil
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (*repairticket.RepairTicket, error) {
	for _, t := range m.byNumber {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepo) FindByTicketNumber(ctx context.Context, ticketNumber string) (*repairticket.RepairTicket, error) {
	if t, ok := m.byNumber[ticketNumber]; ok {
		return t, nil
	}
	return nil, apperrors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepo) List(ctx context.Context, filter repairticket.Filter) ([]*repairticket.RepairTicket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepo) AppendHistory(ctx context.Context, entry *repairticket.StatusHistoryEntry) error {
	return nil
}

func (m *mockTicketRepo) FindHistory(ctx context.Context, ticketID uint) ([]*repairticket.StatusHistoryEntry, error) {
	return nil, nil
}

type mockClaimRepo struct {
	mu      sync.Mutex
	byClaim map[string]*warranty.Claim
	nextID  uint
}

func newMockClaimRepo() *mockClaimRepo {
	return &mockClaimRepo{byClaim: make(map[string]*warranty.Claim), nextID: 1}
}

func (m *mockClaimRepo) Create(ctx context.Context, claim *warranty.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if claim.ID() == 0 {
		if err := claim.SetID(m.nextID); err != nil {
			return err
		}
		m.nextID++
	}
	m.byClaim[claim.ClaimID()] = claim
	return nil
}

func (m *mockClaimRepo) Update(ctx context.Context, claim *warranty.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byClaim[claim.ClaimID()] = claim
	return nil
}

func (m *mockClaimRepo) FindByID(ctx context.Context, id uint) (*warranty.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byClaim {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("claim not found")
}

func (m *mockClaimRepo) FindByClaimID(ctx context.Context, claimID string) (*warranty.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byClaim[claimID]; ok {
		return c, nil
	}
	return nil, apperrors.NewNotFoundError("claim not found")
}

func (m *mockClaimRepo) FindActiveByPartID(ctx context.Context, partID uint) (*warranty.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byClaim {
		if c.PartID() != nil && *c.PartID() == partID && c.Status().IsActive() {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no active claim")
}

func (m *mockClaimRepo) List(ctx context.Context, filter warranty.Filter) ([]*warranty.Claim, int64, error) {
	return nil, 0, nil
}

type mockLedger struct {
	mu    sync.Mutex
	saved []*inventory.Transaction
}

func (m *mockLedger) Save(ctx context.Context, tx *inventory.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, tx)
	return nil
}

func (m *mockLedger) FindByPartID(ctx context.Context, partID uint) ([]*inventory.Transaction, error) {
	return nil, nil
}

func (m *mockLedger) FindByQuotationID(ctx context.Context, quotationID string) ([]*inventory.Transaction, error) {
	return nil, nil
}

func (m *mockLedger) FindByTicketNumber(ctx context.Context, ticketNumber string) ([]*inventory.Transaction, error) {
	return nil, nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifyCall struct {
	audience services.Audience
	ticket   string
	message  string
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (m *mockNotifier) Notify(ctx context.Context, audience services.Audience, ticketNumber string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifyCall{audience: audience, ticket: ticketNumber, message: message})
	return nil
}

func (m *mockNotifier) callsFor(audience services.Audience) []notifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notifyCall
	for _, c := range m.calls {
		if c.audience == audience {
			out = append(out, c)
		}
	}
	return out
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

// mockOTPStore remembers the last code per quotation; Verify checks it and
// Consume drops it, mirroring the production store.
type mockOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMockOTPStore() *mockOTPStore {
	return &mockOTPStore{codes: make(map[string]string)}
}

func (m *mockOTPStore) Generate(ctx context.Context, quotationID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[quotationID] = "123456"
	return "123456", nil
}

func (m *mockOTPStore) Verify(ctx context.Context, quotationID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.codes[quotationID]
	if !ok || stored != code {
		return apperrors.NewValidationError("code mismatch or expired")
	}
	return nil
}

func (m *mockOTPStore) Consume(ctx context.Context, quotationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, quotationID)
	return nil
}

func (m *mockOTPStore) seed(quotationID, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[quotationID] = code
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
