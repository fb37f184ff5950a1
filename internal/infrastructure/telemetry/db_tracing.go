package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled    bool
	DBName     string
	LogFullSQL bool // include query variables in spans
}

// EnableDBTracing registers the otelgorm plugin so every statement becomes a child span
// of the run, partition or commit span in its context.
func EnableDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	dbName := cfg.DBName
	if dbName == "" {
		dbName = "postgresql"
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_name", dbName),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
	)
	return nil
}
