package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_cases",
		SQL: `CREATE TABLE IF NOT EXISTS cases (
  id              TEXT        PRIMARY KEY,
  status          TEXT        NOT NULL DEFAULT 'collecting_evidence',
  follow_up_count INTEGER     NOT NULL DEFAULT 0 CHECK (follow_up_count >= 0),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_case_files",
		SQL: `CREATE TABLE IF NOT EXISTS case_files (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_id      TEXT        NOT NULL REFERENCES cases (id) ON DELETE CASCADE,
  side         CHAR(1)     NOT NULL CHECK (side IN ('A', 'B')),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL,
  raw_text     TEXT        NOT NULL,
  cleaned_text TEXT        NOT NULL,
  format       TEXT        NOT NULL,
  points       JSONB       NOT NULL,
  metadata     JSONB       NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  seq          BIGSERIAL
);`,
	},
	{
		Name: "create_index_case_files_case_side",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_case_files_case_side ON case_files (case_id, side, created_at);`,
	},
	{
		Name: "create_table_sequence_entries",
		SQL: `CREATE TABLE IF NOT EXISTS sequence_entries (
  case_id     TEXT        NOT NULL REFERENCES cases (id) ON DELETE CASCADE,
  ord         INTEGER     NOT NULL CHECK (ord > 0),
  side        CHAR(1)     NOT NULL CHECK (side IN ('A', 'B')),
  text        TEXT        NOT NULL,
  point_count INTEGER     NOT NULL CHECK (point_count >= 0),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (case_id, ord)
);`,
	},
}

// EnsureMigrated checks if the 'cases' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public.cases') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
