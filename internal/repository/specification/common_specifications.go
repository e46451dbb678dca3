package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uint64
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// PageOf converts a 1-based page number and page size into a Pagination.
func PageOf(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{Limit: limit, Offset: (page - 1) * limit}
}

// EqualsIgnoreCase matches Field against Value without regard to case.
// LOWER() keeps it portable between PostgreSQL and SQLite.
type EqualsIgnoreCase struct {
	Field string
	Value string
}

func (s EqualsIgnoreCase) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("LOWER(%s) = LOWER(?)", s.Field)
	return db.Where(query, s.Value)
}

// ScopeFunc lets a plain GORM scope be passed wherever a Specification is expected.
type ScopeFunc func(db *gorm.DB) *gorm.DB

func (f ScopeFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}
