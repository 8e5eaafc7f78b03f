// Package databasetest поднимает изолированную SQLite базу в памяти для тестов.
package databasetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/messenger/internal/config"
	"github.com/thereayou/messenger/internal/database"
)

// Open возвращает мигрированную базу; у каждого теста своя.
func Open(t testing.TB) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := database.Open(config.DriverSQLite, dsn, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))

	t.Cleanup(func() { _ = db.Close() })
	return db
}
