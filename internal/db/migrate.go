package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS injury_holds (
		id                TEXT PRIMARY KEY,
		severity          TEXT NOT NULL DEFAULT ''
		                  CHECK(severity IN ('','mild','moderate','severe')),
		muscle_groups     TEXT NOT NULL DEFAULT '',
		movement_patterns TEXT NOT NULL DEFAULT '',
		reason            TEXT NOT NULL DEFAULT '',
		start_date        TEXT NOT NULL,
		end_date          TEXT NOT NULL,
		active            INTEGER NOT NULL DEFAULT 1,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		CHECK(end_date > start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_injury_holds_end ON injury_holds(end_date)`,

	`CREATE TABLE IF NOT EXISTS rehab_states (
		id                   TEXT PRIMARY KEY,
		exercise_id          TEXT NOT NULL,
		severity             TEXT NOT NULL
		                     CHECK(severity IN ('mild','moderate','severe')),
		pre_injury_max       REAL NOT NULL CHECK(pre_injury_max > 0),
		current_weight       REAL NOT NULL,
		load_reduction_pct   INTEGER NOT NULL CHECK(load_reduction_pct IN (10,20,30)),
		target_rep_min       INTEGER NOT NULL DEFAULT 10,
		target_rep_max       INTEGER NOT NULL DEFAULT 15,
		cadence              TEXT NOT NULL DEFAULT '',
		max_testing_disabled INTEGER NOT NULL DEFAULT 1,
		session_count        INTEGER NOT NULL DEFAULT 0,
		active               INTEGER NOT NULL DEFAULT 1,
		started_at           TEXT NOT NULL,
		ended_at             TEXT
	)`,

	// At most one active rehab state per exercise.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_rehab_states_active_exercise
		ON rehab_states(exercise_id) WHERE active = 1`,

	`CREATE TABLE IF NOT EXISTS rehab_sessions (
		id                 TEXT PRIMARY KEY,
		exercise_id        TEXT NOT NULL,
		pre_injury_max     REAL NOT NULL,
		current_weight     REAL NOT NULL,
		load_reduction_pct INTEGER NOT NULL DEFAULT 0,
		pain_level         INTEGER CHECK(pain_level IS NULL OR pain_level BETWEEN 0 AND 10),
		recorded_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_rehab_sessions_exercise ON rehab_sessions(exercise_id, recorded_at)`,

	`CREATE TABLE IF NOT EXISTS pain_checkins (
		id          TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		set_number  INTEGER NOT NULL DEFAULT 1,
		pain_level  INTEGER NOT NULL CHECK(pain_level BETWEEN 0 AND 10),
		note        TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pain_checkins_exercise ON pain_checkins(exercise_id, recorded_at)`,

	`CREATE TABLE IF NOT EXISTS workouts (
		id           TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		completed_at TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS exercise_logs (
		id          TEXT PRIMARY KEY,
		workout_id  TEXT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_exercise_logs_workout ON exercise_logs(workout_id)`,

	`CREATE TABLE IF NOT EXISTS set_logs (
		id              TEXT PRIMARY KEY,
		exercise_log_id TEXT NOT NULL REFERENCES exercise_logs(id) ON DELETE CASCADE,
		order_index     INTEGER NOT NULL DEFAULT 0,
		weight          REAL NOT NULL CHECK(weight >= 0),
		reps            INTEGER NOT NULL CHECK(reps >= 0),
		target_rep_min  INTEGER NOT NULL DEFAULT 0,
		target_rep_max  INTEGER NOT NULL DEFAULT 0,
		rest_seconds    INTEGER NOT NULL DEFAULT 0,
		completed_at    TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_set_logs_exercise_log ON set_logs(exercise_log_id)`,

	`CREATE TABLE IF NOT EXISTS max_records (
		id          TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		weight      REAL NOT NULL CHECK(weight > 0),
		tested_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_max_records_exercise ON max_records(exercise_id, tested_at)`,

	`CREATE TABLE IF NOT EXISTS max_attempts (
		id          TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL,
		weight      REAL NOT NULL CHECK(weight > 0),
		reps        INTEGER NOT NULL DEFAULT 0,
		successful  INTEGER NOT NULL DEFAULT 0,
		attempted_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS missed_sessions (
		id           TEXT PRIMARY KEY,
		scheduled_at TEXT NOT NULL,
		reason       TEXT NOT NULL
		             CHECK(reason IN ('injury','no_gym_access','time_constraints','other')),
		note         TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS coaching_flags (
		id           TEXT PRIMARY KEY,
		flag_type    TEXT NOT NULL
		             CHECK(flag_type IN ('plateau','overtraining_risk','fatigue','injury_concern')),
		severity     TEXT NOT NULL CHECK(severity IN ('low','medium','high')),
		message      TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		acknowledged INTEGER NOT NULL DEFAULT 0
	)`,

	`ALTER TABLE coaching_flags ADD COLUMN acknowledged_at TEXT`,

	`CREATE INDEX IF NOT EXISTS idx_coaching_flags_generated ON coaching_flags(generated_at)`,
}
