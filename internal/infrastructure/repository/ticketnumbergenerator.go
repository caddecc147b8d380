package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/db"
)

// TicketNumberGenerator issues RT-YYYYMMDD-NNNN numbers from a per-day
// counter row. The row is bumped under a row lock, so concurrent check-ins
// inside their transactions get distinct numbers. NNNN restarts at 0001 each
// day.
type TicketNumberGenerator struct {
	db *gorm.DB
}

func NewTicketNumberGenerator(database *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{db: database}
}

func (g *TicketNumberGenerator) Next(ctx context.Context, day time.Time) (string, error) {
	dayKey := day.UTC().Format("20060102")
	tx := db.GetTxFromContext(ctx, g.db)

	var model models.TicketSequenceModel
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("day = ?", dayKey).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		model = models.TicketSequenceModel{Day: dayKey}
		// A concurrent check-in may insert the same day first; fall back to
		// locking the row it created.
		if err := tx.Create(&model).Error; err != nil {
			if lockErr := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("day = ?", dayKey).
				First(&model).Error; lockErr != nil {
				return "", fmt.Errorf("failed to initialize ticket sequence: %w", err)
			}
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to load ticket sequence: %w", err)
	}

	next := model.LastSeq + 1
	result := tx.
		Model(&models.TicketSequenceModel{}).
		Where("day = ?", dayKey).
		Update("last_seq", next)
	if result.Error != nil {
		return "", fmt.Errorf("failed to advance ticket sequence: %w", result.Error)
	}

	return fmt.Sprintf("RT-%s-%04d", dayKey, next), nil
}
