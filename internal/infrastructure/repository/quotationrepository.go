package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"servit/internal/domain/quotation"
	vo "servit/internal/domain/quotation/valueobjects"
	"servit/internal/infrastructure/persistence/mappers"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/db"
	apperrors "servit/internal/shared/errors"
)

type QuotationRepository struct {
	db     *gorm.DB
	mapper mappers.QuotationMapper
}

func NewQuotationRepository(database *gorm.DB) *QuotationRepository {
	return &QuotationRepository{
		db:     database,
		mapper: mappers.NewQuotationMapper(),
	}
}

func (r *QuotationRepository) Create(ctx context.Context, q *quotation.Quotation) error {
	model := r.mapper.ToModel(q)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	return q.SetID(model.ID)
}

func (r *QuotationRepository) Update(ctx context.Context, q *quotation.Quotation) error {
	model := r.mapper.ToModel(q)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.QuotationModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update quotation: %w", result.Error)
	}

	return nil
}

// UpdateIfPending persists q only when the stored row is still pending. The
// conditional write is what serializes racing approve, deny, expire and
// archive attempts: exactly one writer flips the row, the rest see false.
func (r *QuotationRepository) UpdateIfPending(ctx context.Context, q *quotation.Quotation) (bool, error) {
	model := r.mapper.ToModel(q)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.QuotationModel{}).
		Where("id = ? AND status = ?", model.ID, vo.StatusPending.String()).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update quotation: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *QuotationRepository) FindByID(ctx context.Context, id uint) (*quotation.Quotation, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *QuotationRepository) FindByQuotationID(ctx context.Context, quotationID string) (*quotation.Quotation, error) {
	return r.findOne(ctx, "quotation_id = ?", quotationID)
}

func (r *QuotationRepository) findOne(ctx context.Context, query string, args ...any) (*quotation.Quotation, error) {
	var model models.QuotationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("quotation not found")
		}
		return nil, fmt.Errorf("failed to find quotation: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *QuotationRepository) FindPendingByTicket(ctx context.Context, ticketNumber string) ([]*quotation.Quotation, error) {
	var quotationModels []*models.QuotationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("repair_ticket_number = ? AND status = ?", ticketNumber, vo.StatusPending.String()).
		Order("created_at ASC").
		Find(&quotationModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find pending quotations: %w", err)
	}

	return r.mapper.ToDomainList(quotationModels)
}

func (r *QuotationRepository) FindLatestByTicket(ctx context.Context, ticketNumber string) (*quotation.Quotation, error) {
	var model models.QuotationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("repair_ticket_number = ?", ticketNumber).
		Order("created_at DESC, id DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("no quotation for ticket")
		}
		return nil, fmt.Errorf("failed to find latest quotation: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *QuotationRepository) List(ctx context.Context, filter quotation.Filter) ([]*quotation.Quotation, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.QuotationModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.TicketNumber != nil {
		query = query.Where("repair_ticket_number = ?", *filter.TicketNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quotations: %w", err)
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var quotationModels []*models.QuotationModel
	if err := query.Find(&quotationModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list quotations: %w", err)
	}

	quotations, err := r.mapper.ToDomainList(quotationModels)
	if err != nil {
		return nil, 0, err
	}

	return quotations, total, nil
}

// FindDuePending returns pending quotations whose expiry or next reminder is
// at or before now, oldest deadline first.
func (r *QuotationRepository) FindDuePending(ctx context.Context, now time.Time, limit int) ([]*quotation.Quotation, error) {
	var quotationModels []*models.QuotationModel
	tx := db.GetTxFromContext(ctx, r.db)

	nowMillis := now.UnixMilli()
	query := tx.
		Where("status = ?", vo.StatusPending.String()).
		Where("expires_at <= ? OR (next_reminder_at IS NOT NULL AND next_reminder_at <= ?)", nowMillis, nowMillis).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&quotationModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find due quotations: %w", err)
	}

	return r.mapper.ToDomainList(quotationModels)
}
