package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Dialect selects the SQL flavour of the schema steps.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type migrationStep struct {
	Name string
	SQL  string
}

var postgresSteps = []migrationStep{
	{
		Name: "create_table_coffees",
		SQL: `CREATE TABLE IF NOT EXISTS coffees (
  seq        BIGSERIAL   NOT NULL,
  id         TEXT        PRIMARY KEY,
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_coffees_seq",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_coffees_seq ON coffees (seq);`,
	},
}

var sqliteSteps = []migrationStep{
	{
		Name: "create_table_coffees",
		SQL: `CREATE TABLE IF NOT EXISTS coffees (
  seq        INTEGER PRIMARY KEY AUTOINCREMENT,
  id         TEXT    NOT NULL UNIQUE,
  name       TEXT    NOT NULL,
  created_at TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
}

func stepsFor(d Dialect) ([]migrationStep, string, error) {
	switch d {
	case Postgres:
		return postgresSteps, "SELECT to_regclass('public.coffees') IS NOT NULL", nil
	case SQLite:
		return sqliteSteps, "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'coffees')", nil
	default:
		return nil, "", fmt.Errorf("unsupported migration dialect: %q", d)
	}
}

// EnsureMigrated checks whether the coffees table exists and runs the dialect's steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, d Dialect, log *zap.Logger, dbHost string) error {
	steps, sentinel, err := stepsFor(d)
	if err != nil {
		return err
	}

	start := time.Now()
	log = log.With(
		zap.String("component", "database"),
		zap.String("dialect", string(d)),
		zap.String("db_host", dbHost),
	)
	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration_ms", time.Since(start)),
				zap.Duration("step_duration_ms", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration_ms", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
