package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
)

type SQLiteMaxRecordRepo struct {
	db db.DBTX
}

func NewSQLiteMaxRecordRepo(db db.DBTX) *SQLiteMaxRecordRepo {
	return &SQLiteMaxRecordRepo{db: db}
}

func (r *SQLiteMaxRecordRepo) Create(ctx context.Context, m *domain.MaxRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO max_records (id, exercise_id, weight, tested_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.ExerciseID, m.Weight, formatTime(m.TestedAt))
	if err != nil {
		return fmt.Errorf("inserting max record: %w", err)
	}
	return nil
}

func (r *SQLiteMaxRecordRepo) ListSince(ctx context.Context, since time.Time) ([]domain.MaxRecord, error) {
	return r.list(ctx, `SELECT id, exercise_id, weight, tested_at FROM max_records
		WHERE tested_at >= ? ORDER BY tested_at, rowid`, formatTime(since))
}

func (r *SQLiteMaxRecordRepo) LatestPerExercise(ctx context.Context) (map[string]domain.MaxRecord, error) {
	records, err := r.list(ctx, `SELECT id, exercise_id, weight, tested_at FROM max_records ORDER BY tested_at, rowid`)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]domain.MaxRecord, len(records))
	for _, m := range records {
		latest[m.ExerciseID] = m
	}
	return latest, nil
}

func (r *SQLiteMaxRecordRepo) list(ctx context.Context, query string, args ...any) ([]domain.MaxRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing max records: %w", err)
	}
	defer rows.Close()

	var out []domain.MaxRecord
	for rows.Next() {
		var (
			m        domain.MaxRecord
			testedAt string
		)
		if err := rows.Scan(&m.ID, &m.ExerciseID, &m.Weight, &testedAt); err != nil {
			return nil, fmt.Errorf("scanning max record: %w", err)
		}
		if m.TestedAt, err = parseTime("tested_at", testedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating max records: %w", err)
	}
	return out, nil
}

type SQLiteMaxAttemptRepo struct {
	db db.DBTX
}

func NewSQLiteMaxAttemptRepo(db db.DBTX) *SQLiteMaxAttemptRepo {
	return &SQLiteMaxAttemptRepo{db: db}
}

func (r *SQLiteMaxAttemptRepo) Create(ctx context.Context, a *domain.MaxAttempt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO max_attempts (id, exercise_id, weight, reps, successful, attempted_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.ExerciseID, a.Weight, a.Reps, boolToInt(a.Successful), formatTime(a.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting max attempt: %w", err)
	}
	return nil
}

func (r *SQLiteMaxAttemptRepo) ListSince(ctx context.Context, since time.Time) ([]domain.MaxAttempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, exercise_id, weight, reps, successful, attempted_at FROM max_attempts
		WHERE attempted_at >= ? ORDER BY attempted_at, rowid`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing max attempts: %w", err)
	}
	defer rows.Close()

	var out []domain.MaxAttempt
	for rows.Next() {
		var (
			a           domain.MaxAttempt
			successful  int
			attemptedAt string
		)
		if err := rows.Scan(&a.ID, &a.ExerciseID, &a.Weight, &a.Reps, &successful, &attemptedAt); err != nil {
			return nil, fmt.Errorf("scanning max attempt: %w", err)
		}
		a.Successful = intToBool(successful)
		if a.Timestamp, err = parseTime("attempted_at", attemptedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating max attempts: %w", err)
	}
	return out, nil
}

type SQLiteMissedSessionRepo struct {
	db db.DBTX
}

func NewSQLiteMissedSessionRepo(db db.DBTX) *SQLiteMissedSessionRepo {
	return &SQLiteMissedSessionRepo{db: db}
}

func (r *SQLiteMissedSessionRepo) Create(ctx context.Context, m *domain.MissedSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO missed_sessions (id, scheduled_at, reason, note) VALUES (?, ?, ?, ?)`,
		m.ID, formatTime(m.ScheduledAt), string(m.Reason), m.Note)
	if err != nil {
		return fmt.Errorf("inserting missed session: %w", err)
	}
	return nil
}

func (r *SQLiteMissedSessionRepo) ListSince(ctx context.Context, since time.Time) ([]domain.MissedSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, scheduled_at, reason, note FROM missed_sessions
		WHERE scheduled_at >= ? ORDER BY scheduled_at, rowid`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing missed sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.MissedSession
	for rows.Next() {
		var (
			m                   domain.MissedSession
			scheduledAt, reason string
		)
		if err := rows.Scan(&m.ID, &scheduledAt, &reason, &m.Note); err != nil {
			return nil, fmt.Errorf("scanning missed session: %w", err)
		}
		m.Reason = domain.MissedReason(reason)
		if m.ScheduledAt, err = parseTime("scheduled_at", scheduledAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating missed sessions: %w", err)
	}
	return out, nil
}
