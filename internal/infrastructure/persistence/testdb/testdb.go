// Package testdb opens migrated databases for tests: an in-memory SQLite
// database for the engine and repository tests, and a PostgreSQL container
// for the tests that need real row locks.
package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stokledger/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormConfig mirrors the configuration the server opens its pool with
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewSQLite returns a fresh in-memory SQLite database with every migration
// applied. The pool is limited to one connection: the database lives as long
// as that connection, and concurrent transactions queue for it.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), gormConfig())
	require.NoError(t, err, "Failed to open sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	runMigrations(t, sqlDB, "sqlite")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewPostgres starts a PostgreSQL container, applies the migrations and
// returns a pool connected to it. The test is skipped in -short mode.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	require.NoError(t, err, "Failed to connect to PostgreSQL")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)

	runMigrations(t, sqlDB, "postgres")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// runMigrations applies every up migration. The migrator is not closed
// because closing it would close sqlDB too.
func runMigrations(t testing.TB, sqlDB *sql.DB, driver string) {
	t.Helper()

	m, err := migration.New(sqlDB, driver, zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
}
