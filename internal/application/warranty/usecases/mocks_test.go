package usecases

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"servit/internal/domain/inventory"
	"servit/internal/domain/part"
	"servit/internal/domain/shared/events"
	"servit/internal/domain/shared/services"
	"servit/internal/domain/warranty"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

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

type mockPartStore struct {
	mu     sync.Mutex
	byID   map[uint]*part.Part
	nextID uint
}

func newMockPartStore() *mockPartStore {
	return &mockPartStore{byID: make(map[uint]*part.Part), nextID: 1}
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
