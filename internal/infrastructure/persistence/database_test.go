package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestNewDatabase opens real SQLite databases through the same path the server uses
func TestNewDatabase(t *testing.T) {
	t.Run("opens a sqlite file with a single connection", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "ledger.db"),
		}

		db, err := NewDatabase(cfg)
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, config.DriverSQLite, db.Driver)
		assert.NoError(t, db.Ping())
		stats, err := db.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})

	t.Run("rejects an unknown driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("unique violations surface as duplicate keys", func(t *testing.T) {
		db, err := NewDatabase(&config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "dup.db"),
		})
		require.NoError(t, err)
		defer db.Close()

		type uniqueThing struct {
			ID   uint
			Code string `gorm:"uniqueIndex"`
		}
		require.NoError(t, db.DB.AutoMigrate(&uniqueThing{}))
		require.NoError(t, db.DB.Create(&uniqueThing{Code: "A"}).Error)

		err = db.DB.Create(&uniqueThing{Code: "A"}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
		assert.True(t, errors.Is(translateError(err, "Thing", "A"), shared.ErrAlreadyExists))
	})
}

// newMockDatabase wraps a sqlmock connection that also tracks pings
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	// gorm pings once while opening
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), newGormConfig(logger.Discard))
	require.NoError(t, err)

	return &Database{DB: gormDB, Driver: config.DriverPostgres}, mock
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectPing()

		assert.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		assert.EqualError(t, db.Ping(), "connection refused")
	})
}

func TestDatabase_Close(t *testing.T) {
	db, mock := newMockDatabase(t)
	mock.ExpectClose()

	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Transaction(t *testing.T) {
	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "cash_registers" SET balance = balance \+ \$1`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Exec(`UPDATE "cash_registers" SET balance = balance + $1`, 5).Error
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.Transaction(func(*gorm.DB) error {
			return shared.ErrInvalidState
		})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
