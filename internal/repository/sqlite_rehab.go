package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
)

type SQLiteRehabStateRepo struct {
	db db.DBTX
}

func NewSQLiteRehabStateRepo(db db.DBTX) *SQLiteRehabStateRepo {
	return &SQLiteRehabStateRepo{db: db}
}

const rehabStateColumns = `id, exercise_id, severity, pre_injury_max, current_weight, load_reduction_pct,
	target_rep_min, target_rep_max, cadence, max_testing_disabled, session_count, active, started_at, ended_at`

func (r *SQLiteRehabStateRepo) Create(ctx context.Context, s *domain.RehabState) error {
	query := `INSERT INTO rehab_states (` + rehabStateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ExerciseID,
		string(s.Severity),
		s.PreInjuryMax,
		s.CurrentWeight,
		s.LoadReductionPct,
		s.TargetRepMin,
		s.TargetRepMax,
		s.Cadence,
		boolToInt(s.MaxTestingDisabled),
		s.SessionCount,
		boolToInt(s.Active),
		formatTime(s.StartedAt),
		nullableTimeToString(s.EndedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting rehab state: %w", err)
	}
	return nil
}

func (r *SQLiteRehabStateRepo) GetActive(ctx context.Context, exerciseID string) (*domain.RehabState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+rehabStateColumns+` FROM rehab_states WHERE exercise_id = ? AND active = 1`, exerciseID)
	s, err := scanRehabState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active rehab for %s: %w", exerciseID, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteRehabStateRepo) ListActive(ctx context.Context) ([]*domain.RehabState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rehabStateColumns+` FROM rehab_states WHERE active = 1 ORDER BY started_at, exercise_id`)
	if err != nil {
		return nil, fmt.Errorf("listing active rehab states: %w", err)
	}
	defer rows.Close()

	var states []*domain.RehabState
	for rows.Next() {
		s, err := scanRehabState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rehab states: %w", err)
	}
	return states, nil
}

func (r *SQLiteRehabStateRepo) Update(ctx context.Context, s *domain.RehabState) error {
	query := `UPDATE rehab_states SET current_weight = ?, load_reduction_pct = ?, max_testing_disabled = ?,
		session_count = ?, active = ?, ended_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.CurrentWeight,
		s.LoadReductionPct,
		boolToInt(s.MaxTestingDisabled),
		s.SessionCount,
		boolToInt(s.Active),
		nullableTimeToString(s.EndedAt, time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating rehab state: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rehab state %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func scanRehabState(row rowScanner) (*domain.RehabState, error) {
	var (
		s                     domain.RehabState
		severity, startedAt   string
		endedAt               sql.NullString
		maxTestingOff, active int
	)
	err := row.Scan(&s.ID, &s.ExerciseID, &severity, &s.PreInjuryMax, &s.CurrentWeight, &s.LoadReductionPct,
		&s.TargetRepMin, &s.TargetRepMax, &s.Cadence, &maxTestingOff, &s.SessionCount, &active, &startedAt, &endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning rehab state: %w", err)
	}
	s.Severity = domain.Severity(severity)
	s.MaxTestingDisabled = intToBool(maxTestingOff)
	s.Active = intToBool(active)
	s.EndedAt = parseNullableTime(endedAt, time.RFC3339)
	if s.StartedAt, err = parseTime("started_at", startedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

type SQLiteRehabSessionRepo struct {
	db db.DBTX
}

func NewSQLiteRehabSessionRepo(db db.DBTX) *SQLiteRehabSessionRepo {
	return &SQLiteRehabSessionRepo{db: db}
}

const rehabSessionColumns = `id, exercise_id, pre_injury_max, current_weight, load_reduction_pct, pain_level, recorded_at`

func (r *SQLiteRehabSessionRepo) Create(ctx context.Context, s *domain.RehabSession) error {
	query := `INSERT INTO rehab_sessions (` + rehabSessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ExerciseID,
		s.PreInjuryMax,
		s.CurrentWeight,
		s.LoadReductionPct,
		nullableIntToValue(s.PainLevel),
		formatTime(s.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting rehab session: %w", err)
	}
	return nil
}

func (r *SQLiteRehabSessionRepo) ListByExercise(ctx context.Context, exerciseID string) ([]domain.RehabSession, error) {
	return r.list(ctx, `SELECT `+rehabSessionColumns+` FROM rehab_sessions
		WHERE exercise_id = ? ORDER BY recorded_at, rowid`, exerciseID)
}

func (r *SQLiteRehabSessionRepo) ListSince(ctx context.Context, since time.Time) ([]domain.RehabSession, error) {
	return r.list(ctx, `SELECT `+rehabSessionColumns+` FROM rehab_sessions
		WHERE recorded_at >= ? ORDER BY recorded_at, rowid`, formatTime(since))
}

func (r *SQLiteRehabSessionRepo) list(ctx context.Context, query string, args ...any) ([]domain.RehabSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rehab sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.RehabSession
	for rows.Next() {
		var (
			s          domain.RehabSession
			pain       sql.NullInt64
			recordedAt string
		)
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.PreInjuryMax, &s.CurrentWeight, &s.LoadReductionPct, &pain, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning rehab session: %w", err)
		}
		s.PainLevel = nullIntToPtr(pain)
		if s.Timestamp, err = parseTime("recorded_at", recordedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rehab sessions: %w", err)
	}
	return sessions, nil
}
