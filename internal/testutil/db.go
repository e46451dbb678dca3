// Package testutil provides an in-memory database with the production schema.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"usecase-catalog-be/internal/model"
	"usecase-catalog-be/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB returns a migrated SQLite database private to the test. A single
// connection keeps the shared in-memory database alive for the test's lifetime.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(dsn), database.PoolConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
