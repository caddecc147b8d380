// Package migration applies the database schema.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/logger"
)

// AutoMigrate creates or updates every table the engine persists to. Order
// does not matter; no foreign key constraints are declared.
func AutoMigrate(db *gorm.DB, log logger.Interface) error {
	tables := []any{
		&models.PartModel{},
		&models.RepairTicketModel{},
		&models.TicketStatusHistoryModel{},
		&models.TicketSequenceModel{},
		&models.QuotationModel{},
		&models.WarrantyClaimModel{},
		&models.InventoryTransactionModel{},
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Infow("database schema migrated", "tables", len(tables))
	return nil
}
