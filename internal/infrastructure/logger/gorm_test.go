package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, 100*time.Millisecond), recorded
}

func TestGormLogger_Trace(t *testing.T) {
	sql := func() (string, int64) { return `UPDATE "lots" SET quantity = 3`, 1 }
	ctx := WithRequestID(context.Background(), "req-7")

	t.Run("logs errors with the request id", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)
		l.Trace(ctx, time.Now(), sql, errors.New("deadlock detected"))

		entries := recorded.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "gorm", entries[0].LoggerName)
	})

	t.Run("skips record not found", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info)
		l.Trace(ctx, time.Now(), sql, gormlogger.ErrRecordNotFound)

		assert.Zero(t, recorded.FilterMessage("SQL Error").Len())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)
		l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)

		assert.Equal(t, 1, recorded.FilterMessage("Slow SQL").Len())
	})

	t.Run("debug logs every query at info level", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info)
		l.Trace(ctx, time.Now(), sql, nil)

		assert.Equal(t, 1, recorded.FilterMessage("SQL Query").Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info)
		l.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), sql, errors.New("boom"))

		assert.Zero(t, recorded.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
