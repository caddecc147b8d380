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
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
)

type mockPartRepo struct {
	saveFunc              func(ctx context.Context, p *part.Part) error
	updateFunc            func(ctx context.Context, p *part.Part) error
	findByIDFunc          func(ctx context.Context, id uint) (*part.Part, error)
	findByIDForUpdateFunc func(ctx context.Context, id uint) (*part.Part, error)
	findBySerialFunc      func(ctx context.Context, serialNumber string) (*part.Part, error)
	listFunc              func(ctx context.Context, filter part.Filter) ([]*part.Part, int64, error)
	findReplacementFunc   func(ctx context.Context, partNumber string, excludeID uint) (*part.Part, error)
}

func (m *mockPartRepo) Save(ctx context.Context, p *part.Part) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, p)
	}
	return nil
}

func (m *mockPartRepo) Update(ctx context.Context, p *part.Part) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return nil
}

func (m *mockPartRepo) FindByID(ctx context.Context, id uint) (*part.Part, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("part not found")
}

func (m *mockPartRepo) FindByIDForUpdate(ctx context.Context, id uint) (*part.Part, error) {
	if m.findByIDForUpdateFunc != nil {
		return m.findByIDForUpdateFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("part not found")
}

func (m *mockPartRepo) FindBySerialNumber(ctx context.Context, serialNumber string) (*part.Part, error) {
	if m.findBySerialFunc != nil {
		return m.findBySerialFunc(ctx, serialNumber)
	}
	return nil, apperrors.NewNotFoundError("part not found")
}

func (m *mockPartRepo) List(ctx context.Context, filter part.Filter) ([]*part.Part, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockPartRepo) FindReplacementCandidate(ctx context.Context, partNumber string, excludeID uint) (*part.Part, error) {
	if m.findReplacementFunc != nil {
		return m.findReplacementFunc(ctx, partNumber, excludeID)
	}
	return nil, apperrors.NewNotFoundError("no replacement candidate")
}

type mockLedgerRepo struct {
	mu      sync.Mutex
	saved   []*inventory.Transaction
	saveErr error
}

func (m *mockLedgerRepo) Save(ctx context.Context, tx *inventory.Transaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, tx)
	return nil
}

func (m *mockLedgerRepo) FindByPartID(ctx context.Context, partID uint) ([]*inventory.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*inventory.Transaction
	for _, tx := range m.saved {
		if tx.PartID() == partID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockLedgerRepo) FindByQuotationID(ctx context.Context, quotationID string) ([]*inventory.Transaction, error) {
	return nil, nil
}

func (m *mockLedgerRepo) FindByTicketNumber(ctx context.Context, ticketNumber string) ([]*inventory.Transaction, error) {
	return nil, nil
}

// mockTxManager runs the function without a real transaction.
type mockTxManager struct {
	runErr error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.runErr != nil {
		return m.runErr
	}
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
	err   error
}

func (m *mockNotifier) Notify(ctx context.Context, audience services.Audience, ticketNumber string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifyCall{audience: audience, ticket: ticketNumber, message: message})
	return m.err
}

func (m *mockNotifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
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
