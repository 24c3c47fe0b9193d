package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/google/uuid"
)

const (
	day = 24 * time.Hour
	// flagLookback covers the widest detector window.
	flagLookback        = 31 * day
	successRateLookback = 90 * day
)

type CoachingRepos struct {
	Flags    repository.CoachingFlagRepo
	Maxes    repository.MaxRecordRepo
	Attempts repository.MaxAttemptRepo
	Missed   repository.MissedSessionRepo
	Workouts repository.WorkoutRepo
}

type coachingService struct {
	repos    CoachingRepos
	catalog  engine.Catalog
	uow      db.UnitOfWork
	now      Clock
	observer UseCaseObserver
}

func NewCoachingService(repos CoachingRepos, catalog engine.Catalog, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) CoachingService {
	return &coachingService{
		repos:    repos,
		catalog:  catalog,
		uow:      uow,
		now:      clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Evaluate runs every detector over recent history. A flag type that
// already has an unacknowledged flag is reported with that flag instead of
// a new row.
func (s *coachingService) Evaluate(ctx context.Context) (flags []domain.CoachingFlag, err error) {
	uc := beginUseCase(s.observer, "evaluate-flags")
	defer func() { uc.end(ctx, err) }()

	now := s.now()
	since := now.Add(-flagLookback)
	var history engine.FlagHistory
	if history.Maxes, err = s.repos.Maxes.ListSince(ctx, since); err != nil {
		return nil, err
	}
	if history.Attempts, err = s.repos.Attempts.ListSince(ctx, since); err != nil {
		return nil, err
	}
	if history.Missed, err = s.repos.Missed.ListSince(ctx, since); err != nil {
		return nil, err
	}

	detected := engine.DetectFlags(history, now)
	raised := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteCoachingFlagRepo(tx)
		open, err := repo.List(ctx, false)
		if err != nil {
			return err
		}
		openByType := make(map[domain.FlagType]*domain.CoachingFlag, len(open))
		for _, f := range open {
			if _, seen := openByType[f.Type]; !seen {
				openByType[f.Type] = f
			}
		}
		for _, f := range detected {
			if existing, ok := openByType[f.Type]; ok {
				flags = append(flags, *existing)
				continue
			}
			f.ID = uuid.New().String()
			if err := repo.Create(ctx, &f); err != nil {
				return err
			}
			flags = append(flags, f)
			raised++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.set("detected", len(detected))
	uc.set("raised", raised)
	return flags, nil
}

func (s *coachingService) ListFlags(ctx context.Context, includeAcknowledged bool) ([]*domain.CoachingFlag, error) {
	return s.repos.Flags.List(ctx, includeAcknowledged)
}

func (s *coachingService) Acknowledge(ctx context.Context, id string) (err error) {
	uc := beginUseCase(s.observer, "acknowledge-flag")
	uc.set("flag_id", id)
	defer func() { uc.end(ctx, err) }()

	return s.repos.Flags.Acknowledge(ctx, id, s.now())
}

func (s *coachingService) checkExercise(id string) error {
	if _, ok := s.catalog.Exercise(id); !ok {
		return &engine.NotFoundError{Kind: "exercise", ID: id}
	}
	return nil
}

func (s *coachingService) RecordMax(ctx context.Context, exerciseID string, weight float64) (record *domain.MaxRecord, err error) {
	uc := beginUseCase(s.observer, "record-max")
	uc.set("exercise", exerciseID)
	defer func() { uc.end(ctx, err) }()

	if err = s.checkExercise(exerciseID); err != nil {
		return nil, err
	}
	if weight <= 0 {
		return nil, &engine.ValidationError{Code: engine.CodeInvalidMax, Field: "weight", Message: fmt.Sprintf("max must be positive, got %v", weight)}
	}
	record = &domain.MaxRecord{ID: uuid.New().String(), ExerciseID: exerciseID, Weight: weight, TestedAt: s.now()}
	if err = s.repos.Maxes.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RecordAttempt stores a max-testing attempt. A successful attempt also
// becomes the exercise's new max in the same transaction.
func (s *coachingService) RecordAttempt(ctx context.Context, req app.RecordAttemptRequest) (attempt *domain.MaxAttempt, err error) {
	uc := beginUseCase(s.observer, "record-attempt")
	uc.set("exercise", req.ExerciseID)
	uc.set("successful", req.Successful)
	defer func() { uc.end(ctx, err) }()

	if err = s.checkExercise(req.ExerciseID); err != nil {
		return nil, err
	}
	if req.Weight <= 0 {
		return nil, &engine.ValidationError{Code: engine.CodeInvalidWeight, Field: "weight", Message: fmt.Sprintf("weight must be positive, got %v", req.Weight)}
	}

	now := s.now()
	attempt = &domain.MaxAttempt{
		ID:         uuid.New().String(),
		ExerciseID: req.ExerciseID,
		Weight:     req.Weight,
		Reps:       req.Reps,
		Successful: req.Successful,
		Timestamp:  now,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteMaxAttemptRepo(tx).Create(ctx, attempt); err != nil {
			return err
		}
		if !req.Successful {
			return nil
		}
		return repository.NewSQLiteMaxRecordRepo(tx).Create(ctx, &domain.MaxRecord{
			ID:         uuid.New().String(),
			ExerciseID: req.ExerciseID,
			Weight:     req.Weight,
			TestedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *coachingService) RecordMissed(ctx context.Context, req app.RecordMissedRequest) (missed *domain.MissedSession, err error) {
	uc := beginUseCase(s.observer, "record-missed")
	uc.set("reason", string(req.Reason))
	defer func() { uc.end(ctx, err) }()

	if !domain.ValidMissedReasons[req.Reason] {
		return nil, &engine.ValidationError{Code: engine.CodeInvalidReason, Field: "reason", Message: fmt.Sprintf("unknown missed-session reason %q", req.Reason)}
	}
	at := req.ScheduledAt
	if at.IsZero() {
		at = s.now()
	}
	missed = &domain.MissedSession{ID: uuid.New().String(), ScheduledAt: at, Reason: req.Reason, Note: req.Note}
	if err = s.repos.Missed.Create(ctx, missed); err != nil {
		return nil, err
	}
	return missed, nil
}

func (s *coachingService) SuccessRate(ctx context.Context) (engine.SuccessRateReport, error) {
	now := s.now()
	attempts, err := s.repos.Attempts.ListSince(ctx, now.Add(-successRateLookback))
	if err != nil {
		return engine.SuccessRateReport{}, err
	}
	return engine.SuccessRate(attempts, now), nil
}

func (s *coachingService) Detraining(ctx context.Context) (engine.DetrainingResponse, error) {
	recent, err := s.repos.Workouts.ListRecent(ctx, 1)
	if err != nil {
		return engine.DetrainingResponse{}, err
	}
	if len(recent) == 0 {
		return engine.DetrainingResponse{}, fmt.Errorf("last workout: %w", repository.ErrNotFound)
	}
	last := recent[0].StartedAt
	if recent[0].CompletedAt != nil {
		last = *recent[0].CompletedAt
	}
	days := int(s.now().Sub(last) / day)
	if days < 0 {
		days = 0
	}
	return engine.AssessDetraining(days)
}

func (s *coachingService) LatestMaxes(ctx context.Context) (map[string]domain.MaxRecord, error) {
	return s.repos.Maxes.LatestPerExercise(ctx)
}

func (s *coachingService) MaxHistory(ctx context.Context, since time.Time) ([]domain.MaxRecord, error) {
	return s.repos.Maxes.ListSince(ctx, since)
}
