package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracingConfig controls the GORM tracing plugin
type DBTracingConfig struct {
	Enabled bool
	// DBSystem is recorded as db.system, "postgresql" or "sqlite"
	DBSystem string
	// LogFullSQL keeps bound variables in db.statement. Development only.
	LogFullSQL bool
	// TracerProvider overrides the global provider, for tests
	TracerProvider trace.TracerProvider
}

// InstrumentDB registers otelgorm on db so every statement becomes a child
// span of the request that issued it, and connection pool stats are exported
// as metrics.
func InstrumentDB(db *gorm.DB, cfg DBTracingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	return db.Use(otelgorm.NewPlugin(opts...))
}
