package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"servit/internal/domain/quotation"
	vo "servit/internal/domain/quotation/valueobjects"
	sharedvo "servit/internal/domain/shared/valueobjects"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/mapper"
	"servit/internal/shared/utils/jsonutil"
)

// QuotationMapper handles the conversion between Quotation domain entities
// and persistence models.
type QuotationMapper interface {
	ToModel(q *quotation.Quotation) *models.QuotationModel
	ToDomain(model *models.QuotationModel) (*quotation.Quotation, error)
	ToDomainList(modelList []*models.QuotationModel) ([]*quotation.Quotation, error)
}

type QuotationMapperImpl struct{}

func NewQuotationMapper() QuotationMapper {
	return &QuotationMapperImpl{}
}

func (m *QuotationMapperImpl) ToModel(q *quotation.Quotation) *models.QuotationModel {
	model := &models.QuotationModel{
		ID:                 q.ID(),
		QuotationID:        q.QuotationID(),
		RepairTicketNumber: q.RepairTicketNumber(),
		CandidatePartIDs:   datatypes.JSON(jsonutil.UintSliceToJSONArray(q.CandidatePartIDs())),
		SelectedPartID:     q.SelectedPartID(),
		LaborCostCents:     q.LaborCost().AmountInCents(),
		LaborCostCurrency:  q.LaborCost().Currency(),
		Status:             q.Status().String(),
		ExpiresAt:          q.ExpiresAt().UnixMilli(),
		NextReminderAt:     timeToMillisPtr(q.NextReminderAt()),
		LastReminderSentAt: timeToMillisPtr(q.LastReminderSentAt()),
		ReminderSendCount:  q.ReminderSendCount(),
		SummarySentAt:      timeToMillisPtr(q.SummarySentAt()),
		ApprovedByOverride: q.ApprovedByOverride(),
		OverrideNotes:      q.OverrideNotes(),
		OverriddenAt:       timeToMillisPtr(q.OverriddenAt()),
		RespondedAt:        timeToMillisPtr(q.RespondedAt()),
		RespondedBy:        q.RespondedBy(),
		Version:            q.Version(),
		CreatedAt:          q.CreatedAt().UnixMilli(),
		UpdatedAt:          q.UpdatedAt().UnixMilli(),
	}

	if total := q.TotalCost(); total != nil {
		cents := total.AmountInCents()
		currency := total.Currency()
		model.TotalCostCents = &cents
		model.TotalCostCurrency = &currency
	}

	return model
}

func (m *QuotationMapperImpl) ToDomain(model *models.QuotationModel) (*quotation.Quotation, error) {
	status, err := vo.NewQuotationStatus(model.Status)
	if err != nil {
		return nil, err
	}

	var candidateIDs []uint
	if err := json.Unmarshal(model.CandidatePartIDs, &candidateIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate part IDs (id=%d): %w", model.ID, err)
	}

	var totalCost *sharedvo.Money
	if model.TotalCostCents != nil {
		currency := ""
		if model.TotalCostCurrency != nil {
			currency = *model.TotalCostCurrency
		}
		total := sharedvo.NewMoney(*model.TotalCostCents, currency)
		totalCost = &total
	}

	return quotation.ReconstructQuotation(
		model.ID,
		model.QuotationID,
		model.RepairTicketNumber,
		candidateIDs,
		model.SelectedPartID,
		sharedvo.NewMoney(model.LaborCostCents, model.LaborCostCurrency),
		totalCost,
		status,
		millisToTime(model.ExpiresAt),
		millisToTimePtr(model.NextReminderAt),
		millisToTimePtr(model.LastReminderSentAt),
		model.ReminderSendCount,
		millisToTimePtr(model.SummarySentAt),
		model.ApprovedByOverride,
		model.OverrideNotes,
		millisToTimePtr(model.OverriddenAt),
		millisToTimePtr(model.RespondedAt),
		model.RespondedBy,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *QuotationMapperImpl) ToDomainList(modelList []*models.QuotationModel) ([]*quotation.Quotation, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToDomain, func(model *models.QuotationModel) uint { return model.ID })
}
