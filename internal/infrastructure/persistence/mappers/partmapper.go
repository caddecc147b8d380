package mappers

import (
	"servit/internal/domain/part"
	vo "servit/internal/domain/part/valueobjects"
	sharedvo "servit/internal/domain/shared/valueobjects"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/mapper"
)

// PartMapper handles the conversion between Part domain entities and
// persistence models.
type PartMapper interface {
	ToModel(p *part.Part) *models.PartModel
	ToDomain(model *models.PartModel) (*part.Part, error)
	ToDomainList(modelList []*models.PartModel) ([]*part.Part, error)
}

type PartMapperImpl struct{}

func NewPartMapper() PartMapper {
	return &PartMapperImpl{}
}

func (m *PartMapperImpl) ToModel(p *part.Part) *models.PartModel {
	return &models.PartModel{
		ID:                      p.ID(),
		PartNumber:              p.PartNumber(),
		SerialNumber:            p.SerialNumber(),
		Name:                    p.Name(),
		PartType:                p.PartType().String(),
		UnitCostCents:           p.UnitCost().AmountInCents(),
		UnitCostCurrency:        p.UnitCost().Currency(),
		CurrentStock:            p.CurrentStock(),
		ReservedQuantity:        p.ReservedQuantity(),
		IsReserved:              p.IsReserved(),
		ReservedForTicket:       p.ReservedForTicket(),
		IsCustomerPurchased:     p.IsCustomerPurchased(),
		DatePurchasedByCustomer: timeToMillisPtr(p.DatePurchasedByCustomer()),
		WarrantyExpiration:      timeToMillisPtr(p.WarrantyExpiration()),
		QuotationID:             p.QuotationID(),
		SupplierOrderRef:        p.SupplierOrderRef(),
		Version:                 p.Version(),
		CreatedAt:               p.CreatedAt().UnixMilli(),
		UpdatedAt:               p.UpdatedAt().UnixMilli(),
		DeletedAt:               timeToMillisPtr(p.DeletedAt()),
	}
}

func (m *PartMapperImpl) ToDomain(model *models.PartModel) (*part.Part, error) {
	partType, err := vo.NewPartType(model.PartType)
	if err != nil {
		return nil, err
	}

	return part.ReconstructPart(
		model.ID,
		model.PartNumber,
		model.SerialNumber,
		model.Name,
		partType,
		sharedvo.NewMoney(model.UnitCostCents, model.UnitCostCurrency),
		model.CurrentStock,
		model.ReservedQuantity,
		model.IsReserved,
		model.ReservedForTicket,
		model.IsCustomerPurchased,
		millisToTimePtr(model.DatePurchasedByCustomer),
		millisToTimePtr(model.WarrantyExpiration),
		model.QuotationID,
		model.SupplierOrderRef,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		millisToTimePtr(model.DeletedAt),
	)
}

func (m *PartMapperImpl) ToDomainList(modelList []*models.PartModel) ([]*part.Part, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.PartModel) uint { return model.ID })
}
