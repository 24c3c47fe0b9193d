package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/google/uuid"
)

type SQLiteWorkoutRepo struct {
	db db.DBTX
}

func NewSQLiteWorkoutRepo(db db.DBTX) *SQLiteWorkoutRepo {
	return &SQLiteWorkoutRepo{db: db}
}

func (r *SQLiteWorkoutRepo) Create(ctx context.Context, s *domain.SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workouts (id, started_at, completed_at) VALUES (?, ?, ?)`,
		s.ID, formatTime(s.StartedAt), nullableTimeToString(s.CompletedAt, time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}

	for i, ex := range s.Exercises {
		logID := uuid.New().String()
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO exercise_logs (id, workout_id, exercise_id, order_index) VALUES (?, ?, ?, ?)`,
			logID, s.ID, ex.ExerciseID, i)
		if err != nil {
			return fmt.Errorf("inserting exercise log %s: %w", ex.ExerciseID, err)
		}
		for j, set := range ex.Sets {
			var completedAt any
			if !set.CompletedAt.IsZero() {
				completedAt = formatTime(set.CompletedAt)
			}
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO set_logs (id, exercise_log_id, order_index, weight, reps, target_rep_min, target_rep_max, rest_seconds, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), logID, j, set.Weight, set.Reps, set.TargetRepMin, set.TargetRepMax, set.RestSeconds, completedAt)
			if err != nil {
				return fmt.Errorf("inserting set %d of %s: %w", j+1, ex.ExerciseID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	var (
		s           domain.SessionRecord
		startedAt   string
		completedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at FROM workouts WHERE id = ?`, id).
		Scan(&s.ID, &startedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting workout: %w", err)
	}
	if s.StartedAt, err = parseTime("started_at", startedAt); err != nil {
		return nil, err
	}
	s.CompletedAt = parseNullableTime(completedAt, time.RFC3339)

	if s.Exercises, err = r.loadExercises(ctx, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteWorkoutRepo) ListRecent(ctx context.Context, limit int) ([]*domain.SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM workouts ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning workout id: %w", err)
		}
		ids = append(ids, id)
	}
	// Close before the nested queries; an in-memory pool holds a single connection.
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}

	sessions := make([]*domain.SessionRecord, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *SQLiteWorkoutRepo) loadExercises(ctx context.Context, workoutID string) ([]domain.ExerciseLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT el.id, el.exercise_id, sl.id, sl.weight, sl.reps, sl.target_rep_min, sl.target_rep_max, sl.rest_seconds, sl.completed_at
		FROM exercise_logs el
		LEFT JOIN set_logs sl ON sl.exercise_log_id = el.id
		WHERE el.workout_id = ?
		ORDER BY el.order_index, sl.order_index`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("loading exercise logs: %w", err)
	}
	defer rows.Close()

	var (
		logs    []domain.ExerciseLog
		current string
	)
	for rows.Next() {
		var (
			logID, exerciseID    string
			setID                sql.NullString
			weight               sql.NullFloat64
			reps, repMin, repMax sql.NullInt64
			rest                 sql.NullInt64
			completedAt          sql.NullString
		)
		if err := rows.Scan(&logID, &exerciseID, &setID, &weight, &reps, &repMin, &repMax, &rest, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise log: %w", err)
		}
		if logID != current {
			logs = append(logs, domain.ExerciseLog{ExerciseID: exerciseID})
			current = logID
		}
		if !setID.Valid {
			continue
		}
		set := domain.SetRecord{
			Weight:       weight.Float64,
			Reps:         int(reps.Int64),
			TargetRepMin: int(repMin.Int64),
			TargetRepMax: int(repMax.Int64),
			RestSeconds:  int(rest.Int64),
		}
		if t := parseNullableTime(completedAt, time.RFC3339); t != nil {
			set.CompletedAt = *t
		}
		last := &logs[len(logs)-1]
		last.Sets = append(last.Sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercise logs: %w", err)
	}
	return logs, nil
}
