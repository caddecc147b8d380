package mappers

import (
	"encoding/json"
	"fmt"

	"servit/internal/domain/repairticket"
	vo "servit/internal/domain/repairticket/valueobjects"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/mapper"
)

// RepairTicketMapper handles the conversion between RepairTicket domain
// entities and persistence models.
type RepairTicketMapper interface {
	ToModel(t *repairticket.RepairTicket) *models.RepairTicketModel
	ToDomain(model *models.RepairTicketModel) (*repairticket.RepairTicket, error)
	ToDomainList(modelList []*models.RepairTicketModel) ([]*repairticket.RepairTicket, error)

	HistoryToModel(e *repairticket.StatusHistoryEntry) (*models.TicketStatusHistoryModel, error)
	HistoryToDomain(model *models.TicketStatusHistoryModel) (*repairticket.StatusHistoryEntry, error)
	HistoryToDomainList(modelList []*models.TicketStatusHistoryModel) ([]*repairticket.StatusHistoryEntry, error)
}

type RepairTicketMapperImpl struct{}

func NewRepairTicketMapper() RepairTicketMapper {
	return &RepairTicketMapperImpl{}
}

func (m *RepairTicketMapperImpl) ToModel(t *repairticket.RepairTicket) *models.RepairTicketModel {
	return &models.RepairTicketModel{
		ID:               t.ID(),
		TicketNumber:     t.TicketNumber(),
		CustomerName:     t.CustomerName(),
		CustomerEmail:    t.CustomerEmail(),
		DeviceModel:      t.DeviceModel(),
		DeviceSerial:     t.DeviceSerial(),
		IssueDescription: t.IssueDescription(),
		Technician:       t.Technician(),
		Status:           t.Status().String(),
		Version:          t.Version(),
		CreatedAt:        t.CreatedAt().UnixMilli(),
		UpdatedAt:        t.UpdatedAt().UnixMilli(),
	}
}

// ToDomain converts the ticket fields only. History rows are loaded
// separately by the repository and attached via AttachHistory.
func (m *RepairTicketMapperImpl) ToDomain(model *models.RepairTicketModel) (*repairticket.RepairTicket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return repairticket.ReconstructRepairTicket(
		model.ID,
		model.TicketNumber,
		model.CustomerName,
		model.CustomerEmail,
		model.DeviceModel,
		model.DeviceSerial,
		model.IssueDescription,
		model.Technician,
		status,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *RepairTicketMapperImpl) HistoryToModel(e *repairticket.StatusHistoryEntry) (*models.TicketStatusHistoryModel, error) {
	model := &models.TicketStatusHistoryModel{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		Status:    e.Status().String(),
		Notes:     e.Notes(),
		Actor:     e.Actor(),
		CreatedAt: e.CreatedAt().UnixMilli(),
	}

	if photos := e.Photos(); len(photos) > 0 {
		photosJSON, err := json.Marshal(photos)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history photos: %w", err)
		}
		model.Photos = photosJSON
	}

	return model, nil
}

func (m *RepairTicketMapperImpl) HistoryToDomain(model *models.TicketStatusHistoryModel) (*repairticket.StatusHistoryEntry, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}

	var photos []string
	if len(model.Photos) > 0 {
		if err := json.Unmarshal(model.Photos, &photos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history photos (id=%d): %w", model.ID, err)
		}
	}

	return repairticket.ReconstructStatusHistoryEntry(
		model.ID,
		model.TicketID,
		status,
		model.Notes,
		model.Actor,
		photos,
		millisToTime(model.CreatedAt),
	)
}

func (m *RepairTicketMapperImpl) ToDomainList(modelList []*models.RepairTicketModel) ([]*repairticket.RepairTicket, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.RepairTicketModel) uint { return model.ID })
}

func (m *RepairTicketMapperImpl) HistoryToDomainList(modelList []*models.TicketStatusHistoryModel) ([]*repairticket.StatusHistoryEntry, error) {
	return mapper.MapSlicePtrWithID(modelList, m.HistoryToDomain, func(model *models.TicketStatusHistoryModel) uint { return model.ID })
}
