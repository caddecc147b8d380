package db

import (
	"gorm.io/gorm"
)

// NotDeleted filters out soft-deleted rows. Parts are never hard-deleted, so
// every aggregate or search query over the parts table applies this scope.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}
