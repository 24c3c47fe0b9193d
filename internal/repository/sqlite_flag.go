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

type SQLiteCoachingFlagRepo struct {
	db db.DBTX
}

func NewSQLiteCoachingFlagRepo(db db.DBTX) *SQLiteCoachingFlagRepo {
	return &SQLiteCoachingFlagRepo{db: db}
}

const flagColumns = `id, flag_type, severity, message, generated_at, acknowledged`

func (r *SQLiteCoachingFlagRepo) Create(ctx context.Context, f *domain.CoachingFlag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coaching_flags (`+flagColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, string(f.Type), string(f.Severity), f.Message, formatTime(f.GeneratedAt), boolToInt(f.Acknowledged))
	if err != nil {
		return fmt.Errorf("inserting coaching flag: %w", err)
	}
	return nil
}

func (r *SQLiteCoachingFlagRepo) GetByID(ctx context.Context, id string) (*domain.CoachingFlag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+flagColumns+` FROM coaching_flags WHERE id = ?`, id)
	f, err := scanFlag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coaching flag %s: %w", id, ErrNotFound)
	}
	return f, err
}

// List returns flags newest first.
func (r *SQLiteCoachingFlagRepo) List(ctx context.Context, includeAcknowledged bool) ([]*domain.CoachingFlag, error) {
	query := `SELECT ` + flagColumns + ` FROM coaching_flags`
	if !includeAcknowledged {
		query += ` WHERE acknowledged = 0`
	}
	query += ` ORDER BY generated_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing coaching flags: %w", err)
	}
	defer rows.Close()

	var flags []*domain.CoachingFlag
	for rows.Next() {
		f, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coaching flags: %w", err)
	}
	return flags, nil
}

func (r *SQLiteCoachingFlagRepo) Acknowledge(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coaching_flags SET acknowledged = 1, acknowledged_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("acknowledging coaching flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("coaching flag %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanFlag(row rowScanner) (*domain.CoachingFlag, error) {
	var (
		f                          domain.CoachingFlag
		flagType, sev, generatedAt string
		acknowledged               int
	)
	if err := row.Scan(&f.ID, &flagType, &sev, &f.Message, &generatedAt, &acknowledged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning coaching flag: %w", err)
	}
	f.Type = domain.FlagType(flagType)
	f.Severity = domain.FlagSeverity(sev)
	f.Acknowledged = intToBool(acknowledged)
	var err error
	if f.GeneratedAt, err = parseTime("generated_at", generatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
