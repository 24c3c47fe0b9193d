package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
)

type HoldRepo interface {
	Create(ctx context.Context, h *domain.InjuryHold) error
	GetByID(ctx context.Context, id string) (*domain.InjuryHold, error)
	// List returns every hold, stored active flag untouched, oldest start first.
	List(ctx context.Context) ([]*domain.InjuryHold, error)
	Update(ctx context.Context, h *domain.InjuryHold) error
}

type RehabStateRepo interface {
	Create(ctx context.Context, s *domain.RehabState) error
	GetActive(ctx context.Context, exerciseID string) (*domain.RehabState, error)
	ListActive(ctx context.Context) ([]*domain.RehabState, error)
	Update(ctx context.Context, s *domain.RehabState) error
}

type RehabSessionRepo interface {
	Create(ctx context.Context, s *domain.RehabSession) error
	// ListByExercise is ordered oldest first.
	ListByExercise(ctx context.Context, exerciseID string) ([]domain.RehabSession, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.RehabSession, error)
}

type PainCheckInRepo interface {
	Create(ctx context.Context, c *domain.PainCheckIn) error
	// ListByExercise is ordered oldest first.
	ListByExercise(ctx context.Context, exerciseID string) ([]domain.PainCheckIn, error)
	Latest(ctx context.Context, exerciseID string) (*domain.PainCheckIn, error)
}

type WorkoutRepo interface {
	// Create writes the session with its exercise and set logs. Run it
	// inside a UnitOfWork so a partial workout never lands.
	Create(ctx context.Context, s *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	// ListRecent returns the newest limit sessions, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.SessionRecord, error)
}

type MaxRecordRepo interface {
	Create(ctx context.Context, m *domain.MaxRecord) error
	ListSince(ctx context.Context, since time.Time) ([]domain.MaxRecord, error)
	// LatestPerExercise maps exercise ID to its most recent max.
	LatestPerExercise(ctx context.Context) (map[string]domain.MaxRecord, error)
}

type MaxAttemptRepo interface {
	Create(ctx context.Context, a *domain.MaxAttempt) error
	ListSince(ctx context.Context, since time.Time) ([]domain.MaxAttempt, error)
}

type MissedSessionRepo interface {
	Create(ctx context.Context, m *domain.MissedSession) error
	ListSince(ctx context.Context, since time.Time) ([]domain.MissedSession, error)
}

type CoachingFlagRepo interface {
	Create(ctx context.Context, f *domain.CoachingFlag) error
	GetByID(ctx context.Context, id string) (*domain.CoachingFlag, error)
	List(ctx context.Context, includeAcknowledged bool) ([]*domain.CoachingFlag, error)
	Acknowledge(ctx context.Context, id string, at time.Time) error
}
