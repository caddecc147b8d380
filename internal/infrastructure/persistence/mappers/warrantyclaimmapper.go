package mappers

import (
	"servit/internal/domain/warranty"
	vo "servit/internal/domain/warranty/valueobjects"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/mapper"
)

// WarrantyClaimMapper handles the conversion between Claim domain entities
// and persistence models.
type WarrantyClaimMapper interface {
	ToModel(c *warranty.Claim) *models.WarrantyClaimModel
	ToDomain(model *models.WarrantyClaimModel) (*warranty.Claim, error)
	ToDomainList(modelList []*models.WarrantyClaimModel) ([]*warranty.Claim, error)
}

type WarrantyClaimMapperImpl struct{}

func NewWarrantyClaimMapper() WarrantyClaimMapper {
	return &WarrantyClaimMapperImpl{}
}

func (m *WarrantyClaimMapperImpl) ToModel(c *warranty.Claim) *models.WarrantyClaimModel {
	return &models.WarrantyClaimModel{
		ID:               c.ID(),
		ClaimID:          c.ClaimID(),
		PartID:           c.PartID(),
		PartSerial:       c.PartSerial(),
		TicketNumber:     c.TicketNumber(),
		Kind:             c.Kind().String(),
		Status:           c.Status().String(),
		IssueDescription: c.IssueDescription(),
		Tampered:         c.Tampered(),
		ResolutionNotes:  c.ResolutionNotes(),
		ResolvedBy:       c.ResolvedBy(),
		ResolvedAt:       timeToMillisPtr(c.ResolvedAt()),
		Version:          c.Version(),
		CreatedAt:        c.CreatedAt().UnixMilli(),
		UpdatedAt:        c.UpdatedAt().UnixMilli(),
	}
}

func (m *WarrantyClaimMapperImpl) ToDomain(model *models.WarrantyClaimModel) (*warranty.Claim, error) {
	kind, err := vo.NewClaimKind(model.Kind)
	if err != nil {
		return nil, err
	}
	status, err := vo.NewClaimStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return warranty.ReconstructClaim(
		model.ID,
		model.ClaimID,
		model.PartID,
		model.PartSerial,
		model.TicketNumber,
		kind,
		status,
		model.IssueDescription,
		model.Tampered,
		model.ResolutionNotes,
		model.ResolvedBy,
		millisToTimePtr(model.ResolvedAt),
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *WarrantyClaimMapperImpl) ToDomainList(modelList []*models.WarrantyClaimModel) ([]*warranty.Claim, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.WarrantyClaimModel) uint { return model.ID })
}
