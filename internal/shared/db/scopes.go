package db

import (
	"gorm.io/gorm"
)

// NotDeleted is a GORM scope that filters out soft-deleted records. Use it
// with Model().Where().Count() and raw Table() queries that bypass the
// default soft delete filtering.
//
// Example usage:
//
//	db.Model(&Model{}).Scopes(db.NotDeleted()).Where("order_id = ?", id).Count(&count)
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// DeletedOnly is a GORM scope that keeps only soft-deleted records. Queries
// using it must be unscoped so GORM's default filter does not cancel it out.
func DeletedOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Where("deleted_at IS NOT NULL")
	}
}

// NotDeletedWithAlias filters out soft-deleted records from an aliased table
// in a join.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}
