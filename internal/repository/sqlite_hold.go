package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
)

type SQLiteHoldRepo struct {
	db db.DBTX
}

func NewSQLiteHoldRepo(db db.DBTX) *SQLiteHoldRepo {
	return &SQLiteHoldRepo{db: db}
}

const holdColumns = `id, severity, muscle_groups, movement_patterns, reason, start_date, end_date, active, created_at, updated_at`

func (r *SQLiteHoldRepo) Create(ctx context.Context, h *domain.InjuryHold) error {
	query := `INSERT INTO injury_holds (` + holdColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		string(h.Severity),
		joinList(h.MuscleGroups),
		joinList(h.MovementPatterns),
		h.Reason,
		formatTime(h.StartDate),
		formatTime(h.EndDate),
		boolToInt(h.Active),
		formatTime(h.CreatedAt),
		formatTime(h.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting injury hold: %w", err)
	}
	return nil
}

func (r *SQLiteHoldRepo) GetByID(ctx context.Context, id string) (*domain.InjuryHold, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+holdColumns+` FROM injury_holds WHERE id = ?`, id)
	h, err := scanHold(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("injury hold %s: %w", id, ErrNotFound)
	}
	return h, err
}

func (r *SQLiteHoldRepo) List(ctx context.Context) ([]*domain.InjuryHold, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+holdColumns+` FROM injury_holds ORDER BY start_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing injury holds: %w", err)
	}
	defer rows.Close()

	var holds []*domain.InjuryHold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating injury holds: %w", err)
	}
	return holds, nil
}

func (r *SQLiteHoldRepo) Update(ctx context.Context, h *domain.InjuryHold) error {
	query := `UPDATE injury_holds SET severity = ?, muscle_groups = ?, movement_patterns = ?, reason = ?,
		start_date = ?, end_date = ?, active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(h.Severity),
		joinList(h.MuscleGroups),
		joinList(h.MovementPatterns),
		h.Reason,
		formatTime(h.StartDate),
		formatTime(h.EndDate),
		boolToInt(h.Active),
		formatTime(h.UpdatedAt),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating injury hold: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("injury hold %s: %w", h.ID, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHold(row rowScanner) (*domain.InjuryHold, error) {
	var (
		h                                domain.InjuryHold
		severity, groups, patterns       string
		start, end, createdAt, updatedAt string
		active                           int
	)
	err := row.Scan(&h.ID, &severity, &groups, &patterns, &h.Reason, &start, &end, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning injury hold: %w", err)
	}

	h.Severity = domain.Severity(severity)
	h.MuscleGroups = splitList[domain.MuscleGroup](groups)
	h.MovementPatterns = splitList[domain.MovementPattern](patterns)
	h.Active = intToBool(active)
	if h.StartDate, err = parseTime("start_date", start); err != nil {
		return nil, err
	}
	if h.EndDate, err = parseTime("end_date", end); err != nil {
		return nil, err
	}
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if h.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
