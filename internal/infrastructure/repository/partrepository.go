// Package repository contains the gorm-backed implementations of the domain
// repository interfaces. Repositories read the active transaction from
// context so the same instance works inside and outside a transaction
// boundary.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servit/internal/domain/part"
	vo "servit/internal/domain/part/valueobjects"
	"servit/internal/infrastructure/persistence/mappers"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/db"
	apperrors "servit/internal/shared/errors"
)

type PartRepository struct {
	db     *gorm.DB
	mapper mappers.PartMapper
}

func NewPartRepository(database *gorm.DB) *PartRepository {
	return &PartRepository{
		db:     database,
		mapper: mappers.NewPartMapper(),
	}
}

func (r *PartRepository) Save(ctx context.Context, p *part.Part) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save part: %w", err)
	}

	return p.SetID(model.ID)
}

// Update writes every column so cleared optional fields (quotation tie,
// reservation ticket) reach the database.
func (r *PartRepository) Update(ctx context.Context, p *part.Part) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.PartModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update part: %w", result.Error)
	}

	return nil
}

func (r *PartRepository) FindByID(ctx context.Context, id uint) (*part.Part, error) {
	return r.findOne(ctx, nil, "id = ?", id)
}

// FindByIDForUpdate acquires a row lock on the part. It is only meaningful
// inside a transaction; the caller's read-check-write sequence holds the lock
// until commit.
func (r *PartRepository) FindByIDForUpdate(ctx context.Context, id uint) (*part.Part, error) {
	lock := clause.Locking{Strength: "UPDATE"}
	return r.findOne(ctx, &lock, "id = ?", id)
}

func (r *PartRepository) FindBySerialNumber(ctx context.Context, serialNumber string) (*part.Part, error) {
	return r.findOne(ctx, nil, "serial_number = ?", serialNumber)
}

func (r *PartRepository) findOne(ctx context.Context, lock *clause.Locking, query string, args ...any) (*part.Part, error) {
	var model models.PartModel
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.NotDeleted())
	if lock != nil {
		tx = tx.Clauses(*lock)
	}

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("part not found")
		}
		return nil, fmt.Errorf("failed to find part: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *PartRepository) List(ctx context.Context, filter part.Filter) ([]*part.Part, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.PartModel{}).Scopes(db.NotDeleted())

	if filter.PartNumber != nil {
		query = query.Where("part_number = ?", *filter.PartNumber)
	}
	if filter.SerialNumber != nil {
		query = query.Where("serial_number = ?", *filter.SerialNumber)
	}
	if filter.PartType != nil {
		query = query.Where("part_type = ?", *filter.PartType)
	}
	if filter.OnlyAvailable {
		query = query.Where("current_stock - reserved_quantity > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count parts: %w", err)
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var partModels []*models.PartModel
	if err := query.Find(&partModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list parts: %w", err)
	}

	parts, err := r.mapper.ToDomainList(partModels)
	if err != nil {
		return nil, 0, err
	}

	return parts, total, nil
}

// FindReplacementCandidate returns the oldest free, eligible unit sharing the
// given part number with positive available stock. Eligibility mirrors
// Part.EligibleForQuotation so the candidate can be reserved immediately.
func (r *PartRepository) FindReplacementCandidate(ctx context.Context, partNumber string, excludeID uint) (*part.Part, error) {
	var model models.PartModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Scopes(db.NotDeleted()).
		Where("part_number = ?", partNumber).
		Where("id <> ?", excludeID).
		Where("part_type = ?", vo.TypeStandard.String()).
		Where("is_reserved = ?", false).
		Where("is_customer_purchased = ?", false).
		Where("quotation_id IS NULL").
		Where("supplier_order_ref IS NULL").
		Where("current_stock - reserved_quantity > 0").
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("no replacement candidate in stock")
		}
		return nil, fmt.Errorf("failed to find replacement candidate: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
