package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"servit/internal/domain/inventory"
	"servit/internal/infrastructure/persistence/mappers"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/db"
)

// InventoryTransactionRepository persists the append-only stock ledger. Rows
// are only ever inserted and queried.
type InventoryTransactionRepository struct {
	db     *gorm.DB
	mapper mappers.InventoryTransactionMapper
}

func NewInventoryTransactionRepository(database *gorm.DB) *InventoryTransactionRepository {
	return &InventoryTransactionRepository{
		db:     database,
		mapper: mappers.NewInventoryTransactionMapper(),
	}
}

func (r *InventoryTransactionRepository) Save(ctx context.Context, entry *inventory.Transaction) error {
	model := r.mapper.ToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save inventory transaction: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *InventoryTransactionRepository) FindByPartID(ctx context.Context, partID uint) ([]*inventory.Transaction, error) {
	return r.findAll(ctx, "part_id = ?", partID)
}

func (r *InventoryTransactionRepository) FindByQuotationID(ctx context.Context, quotationID string) ([]*inventory.Transaction, error) {
	return r.findAll(ctx, "quotation_id = ?", quotationID)
}

func (r *InventoryTransactionRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) ([]*inventory.Transaction, error) {
	return r.findAll(ctx, "ticket_number = ?", ticketNumber)
}

func (r *InventoryTransactionRepository) findAll(ctx context.Context, query string, args ...any) ([]*inventory.Transaction, error) {
	var txModels []*models.InventoryTransactionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where(query, args...).
		Order("created_at ASC, id ASC").
		Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory transactions: %w", err)
	}

	return r.mapper.ToDomainList(txModels)
}
