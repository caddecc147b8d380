package mappers

import (
	"servit/internal/domain/inventory"
	vo "servit/internal/domain/inventory/valueobjects"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/mapper"
)

// InventoryTransactionMapper handles the conversion between ledger entries
// and persistence models.
type InventoryTransactionMapper interface {
	ToModel(tx *inventory.Transaction) *models.InventoryTransactionModel
	ToDomain(model *models.InventoryTransactionModel) (*inventory.Transaction, error)
	ToDomainList(modelList []*models.InventoryTransactionModel) ([]*inventory.Transaction, error)
}

type InventoryTransactionMapperImpl struct{}

func NewInventoryTransactionMapper() InventoryTransactionMapper {
	return &InventoryTransactionMapperImpl{}
}

func (m *InventoryTransactionMapperImpl) ToModel(tx *inventory.Transaction) *models.InventoryTransactionModel {
	return &models.InventoryTransactionModel{
		ID:             tx.ID(),
		Reference:      tx.Reference(),
		Type:           tx.Type().String(),
		Reason:         tx.Reason().String(),
		PartID:         tx.PartID(),
		QuantityDelta:  tx.QuantityDelta(),
		StockBefore:    tx.StockBefore(),
		StockAfter:     tx.StockAfter(),
		ReservedBefore: tx.ReservedBefore(),
		ReservedAfter:  tx.ReservedAfter(),
		Actor:          tx.Actor(),
		TicketNumber:   tx.TicketNumber(),
		QuotationID:    tx.QuotationID(),
		CreatedAt:      tx.CreatedAt().UnixMilli(),
	}
}

func (m *InventoryTransactionMapperImpl) ToDomain(model *models.InventoryTransactionModel) (*inventory.Transaction, error) {
	txType, err := vo.NewTransactionType(model.Type)
	if err != nil {
		return nil, err
	}

	return inventory.ReconstructTransaction(
		model.ID,
		model.Reference,
		txType,
		vo.Reason(model.Reason),
		model.PartID,
		model.QuantityDelta,
		model.StockBefore,
		model.StockAfter,
		model.ReservedBefore,
		model.ReservedAfter,
		model.Actor,
		model.TicketNumber,
		model.QuotationID,
		millisToTime(model.CreatedAt),
	)
}

func (m *InventoryTransactionMapperImpl) ToDomainList(modelList []*models.InventoryTransactionModel) ([]*inventory.Transaction, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.InventoryTransactionModel) uint { return model.ID })
}
