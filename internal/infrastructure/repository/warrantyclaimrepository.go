package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"servit/internal/domain/warranty"
	vo "servit/internal/domain/warranty/valueobjects"
	"servit/internal/infrastructure/persistence/mappers"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/db"
	apperrors "servit/internal/shared/errors"
)

type WarrantyClaimRepository struct {
	db     *gorm.DB
	mapper mappers.WarrantyClaimMapper
}

func NewWarrantyClaimRepository(database *gorm.DB) *WarrantyClaimRepository {
	return &WarrantyClaimRepository{
		db:     database,
		mapper: mappers.NewWarrantyClaimMapper(),
	}
}

func (r *WarrantyClaimRepository) Create(ctx context.Context, claim *warranty.Claim) error {
	model := r.mapper.ToModel(claim)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create warranty claim: %w", err)
	}

	return claim.SetID(model.ID)
}

func (r *WarrantyClaimRepository) Update(ctx context.Context, claim *warranty.Claim) error {
	model := r.mapper.ToModel(claim)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.WarrantyClaimModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update warranty claim: %w", result.Error)
	}

	return nil
}

func (r *WarrantyClaimRepository) FindByID(ctx context.Context, id uint) (*warranty.Claim, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *WarrantyClaimRepository) FindByClaimID(ctx context.Context, claimID string) (*warranty.Claim, error) {
	return r.findOne(ctx, "claim_id = ?", claimID)
}

// FindActiveByPartID returns the open or approved claim for the part. Only
// one such claim may exist at a time; check-in refuses a second one.
func (r *WarrantyClaimRepository) FindActiveByPartID(ctx context.Context, partID uint) (*warranty.Claim, error) {
	return r.findOne(ctx, "part_id = ? AND status IN ?", partID,
		[]string{vo.StatusOpen.String(), vo.StatusApproved.String()})
}

func (r *WarrantyClaimRepository) findOne(ctx context.Context, query string, args ...any) (*warranty.Claim, error) {
	var model models.WarrantyClaimModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("warranty claim not found")
		}
		return nil, fmt.Errorf("failed to find warranty claim: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *WarrantyClaimRepository) List(ctx context.Context, filter warranty.Filter) ([]*warranty.Claim, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.WarrantyClaimModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", filter.Kind.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count warranty claims: %w", err)
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var claimModels []*models.WarrantyClaimModel
	if err := query.Find(&claimModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list warranty claims: %w", err)
	}

	claims, err := r.mapper.ToDomainList(claimModels)
	if err != nil {
		return nil, 0, err
	}

	return claims, total, nil
}
