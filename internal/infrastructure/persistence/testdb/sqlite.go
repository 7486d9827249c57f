// Package testdb opens schema-ready SQLite databases for tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/walletnames/registrar/internal/infrastructure/persistence/models"
)

// New opens a private in-memory database with the full schema.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gdb := NewEmpty(t)
	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

// NewEmpty opens a private in-memory database without any tables.
// A single pooled connection keeps every statement on the same memory database.
func NewEmpty(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}
