package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultTrendSessions = 10
	formCheckSessions    = 10
)

type analyticsService struct {
	workouts repository.WorkoutRepo
	maxes    repository.MaxRecordRepo
	catalog  engine.Catalog
	uow      db.UnitOfWork
	now      Clock
	observer UseCaseObserver
}

func NewAnalyticsService(
	workouts repository.WorkoutRepo,
	maxes repository.MaxRecordRepo,
	catalog engine.Catalog,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) AnalyticsService {
	return &analyticsService{
		workouts: workouts,
		maxes:    maxes,
		catalog:  catalog,
		uow:      uow,
		now:      clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// LogWorkout stores the session with all of its sets in one transaction.
func (s *analyticsService) LogWorkout(ctx context.Context, session *domain.SessionRecord) (err error) {
	uc := beginUseCase(s.observer, "log-workout")
	uc.set("exercises", len(session.Exercises))
	defer func() { uc.end(ctx, err) }()

	for _, ex := range session.Exercises {
		if _, ok := s.catalog.Exercise(ex.ExerciseID); !ok {
			return &engine.NotFoundError{Kind: "exercise", ID: ex.ExerciseID}
		}
		for _, set := range ex.Sets {
			if set.Weight < 0 || set.Reps < 0 {
				return &engine.ValidationError{Code: engine.CodeInvalidWeight, Field: "sets", Message: fmt.Sprintf("%s has a negative weight or rep count", ex.ExerciseID)}
			}
		}
	}
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = s.now()
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkoutRepo(tx).Create(ctx, session)
	})
}

func (s *analyticsService) load(ctx context.Context, workoutID string) (domain.SessionRecord, error) {
	if workoutID != "" {
		w, err := s.workouts.GetByID(ctx, workoutID)
		if err != nil {
			return domain.SessionRecord{}, err
		}
		return *w, nil
	}
	recent, err := s.workouts.ListRecent(ctx, 1)
	if err != nil {
		return domain.SessionRecord{}, err
	}
	if len(recent) == 0 {
		return domain.SessionRecord{}, fmt.Errorf("latest workout: %w", repository.ErrNotFound)
	}
	return *recent[0], nil
}

func (s *analyticsService) Volume(ctx context.Context, workoutID string) (engine.VolumeReport, error) {
	w, err := s.load(ctx, workoutID)
	if err != nil {
		return engine.VolumeReport{}, err
	}
	return engine.ComputeVolume(s.catalog, w), nil
}

func (s *analyticsService) Intensity(ctx context.Context, workoutID string) (engine.IntensityReport, error) {
	w, err := s.load(ctx, workoutID)
	if err != nil {
		return engine.IntensityReport{}, err
	}
	latest, err := s.maxes.LatestPerExercise(ctx)
	if err != nil {
		return engine.IntensityReport{}, fmt.Errorf("loading maxes: %w", err)
	}
	maxes := make(map[string]float64, len(latest))
	for id, m := range latest {
		maxes[id] = m.Weight
	}
	return engine.ComputeIntensity(w, maxes), nil
}

func (s *analyticsService) TimeUnderTension(ctx context.Context, workoutID string) (engine.TimeUnderTension, error) {
	w, err := s.load(ctx, workoutID)
	if err != nil {
		return engine.TimeUnderTension{}, err
	}
	return engine.ComputeTimeUnderTension(w), nil
}

func (s *analyticsService) Balance(ctx context.Context, workoutID string) (engine.BalanceReport, error) {
	w, err := s.load(ctx, workoutID)
	if err != nil {
		return engine.BalanceReport{}, err
	}
	return engine.BodyPartBalance(s.catalog, w), nil
}

// Compare sets the latest workout against the one before it. With a single
// logged workout the previous side is empty.
func (s *analyticsService) Compare(ctx context.Context) (engine.WorkoutComparison, error) {
	recent, err := s.workouts.ListRecent(ctx, 2)
	if err != nil {
		return engine.WorkoutComparison{}, err
	}
	if len(recent) == 0 {
		return engine.WorkoutComparison{}, fmt.Errorf("latest workout: %w", repository.ErrNotFound)
	}
	var previous domain.SessionRecord
	if len(recent) > 1 {
		previous = *recent[1]
	}
	return engine.CompareToLastWorkout(s.catalog, *recent[0], previous), nil
}

func (s *analyticsService) Trends(ctx context.Context, limit int) ([]engine.VolumeTrendPoint, error) {
	if limit <= 0 {
		limit = defaultTrendSessions
	}
	recent, err := s.workouts.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.SessionRecord, len(recent))
	for i, w := range recent {
		sessions[i] = *w
	}
	slices.Reverse(sessions)
	return engine.VolumeTrends(s.catalog, sessions), nil
}

// FormCheck replays the exercise's sets from recent workouts, oldest first,
// and advises on the next set. A set succeeds when it reached the bottom of
// its target rep range.
func (s *analyticsService) FormCheck(ctx context.Context, exerciseID string, nextWeight float64) (app.FormCheckResult, error) {
	if _, ok := s.catalog.Exercise(exerciseID); !ok {
		return app.FormCheckResult{}, &engine.NotFoundError{Kind: "exercise", ID: exerciseID}
	}
	if nextWeight <= 0 {
		return app.FormCheckResult{}, &engine.ValidationError{Code: engine.CodeInvalidWeight, Field: "weight", Message: fmt.Sprintf("weight must be positive, got %v", nextWeight)}
	}
	recent, err := s.workouts.ListRecent(ctx, formCheckSessions)
	if err != nil {
		return app.FormCheckResult{}, err
	}

	var history engine.FormHistory
	for i := len(recent) - 1; i >= 0; i-- {
		for _, ex := range recent[i].Exercises {
			if ex.ExerciseID != exerciseID {
				continue
			}
			for _, set := range ex.Sets {
				target := set.TargetRepMin
				if target <= 0 {
					target = set.Reps
				}
				history = history.Record(exerciseID, set.Weight, target, set.Reps)
			}
		}
	}

	res := app.FormCheckResult{
		ExerciseID: exerciseID,
		NextWeight: nextWeight,
		Prompt:     engine.CheckFormPrompt(history, exerciseID, nextWeight, 0),
		Stats:      engine.FormPerformance(history, exerciseID),
		Tips:       engine.FormTips(history, exerciseID),
	}
	res.Review, res.ReviewReason = engine.ShouldReviewForm(history, exerciseID, nextWeight)
	return res, nil
}
