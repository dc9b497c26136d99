// Package sqlitetest opens throwaway in-memory stores with the production schema for tests.
package sqlitetest

import (
	"fmt"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	holidayDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/holiday"
	"github.com/frahmantamala/employee-management/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database. A single connection keeps every
// statement on the same memory store.
func Open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(false, nil))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(
		&employeeDatamodel.Employee{},
		&employeeDatamodel.Address{},
		&holidayDatamodel.Holiday{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
