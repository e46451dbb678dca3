package model

import (
	"fmt"

	"gorm.io/gorm"
)

// All lists every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UseCase{},
	}
}

// postMigrateSQL holds statements AutoMigrate cannot express. Each one is idempotent
// and valid on both PostgreSQL and SQLite.
var postMigrateSQL = []string{
	// Case-insensitive uniqueness of the display name.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_use_cases_use_case_lower ON use_cases (LOWER(use_case))`,
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range postMigrateSQL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("post-migrate %q: %w", stmt, err)
		}
	}
	return nil
}
