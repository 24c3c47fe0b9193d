package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
)

type SQLitePainCheckInRepo struct {
	db db.DBTX
}

func NewSQLitePainCheckInRepo(db db.DBTX) *SQLitePainCheckInRepo {
	return &SQLitePainCheckInRepo{db: db}
}

const painColumns = `id, exercise_id, set_number, pain_level, note, recorded_at`

func (r *SQLitePainCheckInRepo) Create(ctx context.Context, c *domain.PainCheckIn) error {
	query := `INSERT INTO pain_checkins (` + painColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.ExerciseID, c.SetNumber, c.PainLevel, c.Note, formatTime(c.Timestamp))
	if err != nil {
		return fmt.Errorf("inserting pain check-in: %w", err)
	}
	return nil
}

func (r *SQLitePainCheckInRepo) ListByExercise(ctx context.Context, exerciseID string) ([]domain.PainCheckIn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+painColumns+` FROM pain_checkins WHERE exercise_id = ? ORDER BY recorded_at, rowid`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("listing pain check-ins: %w", err)
	}
	defer rows.Close()

	var out []domain.PainCheckIn
	for rows.Next() {
		c, err := scanPainCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pain check-ins: %w", err)
	}
	return out, nil
}

func (r *SQLitePainCheckInRepo) Latest(ctx context.Context, exerciseID string) (*domain.PainCheckIn, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+painColumns+` FROM pain_checkins WHERE exercise_id = ? ORDER BY recorded_at DESC, rowid DESC LIMIT 1`, exerciseID)
	c, err := scanPainCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pain check-in for %s: %w", exerciseID, ErrNotFound)
	}
	return c, err
}

func scanPainCheckIn(row rowScanner) (*domain.PainCheckIn, error) {
	var (
		c          domain.PainCheckIn
		recordedAt string
	)
	err := row.Scan(&c.ID, &c.ExerciseID, &c.SetNumber, &c.PainLevel, &c.Note, &recordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning pain check-in: %w", err)
	}
	if c.Timestamp, err = parseTime("recorded_at", recordedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
