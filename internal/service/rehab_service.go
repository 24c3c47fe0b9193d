package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrAlreadyInRehab = errors.New("exercise already in rehab")
	ErrNoRecordedMax  = errors.New("no recorded max")
)

type rehabService struct {
	states      repository.RehabStateRepo
	sessions    repository.RehabSessionRepo
	checkIns    repository.PainCheckInRepo
	maxes       repository.MaxRecordRepo
	uow         db.UnitOfWork
	now         Clock
	minSessions int
	observer    UseCaseObserver
}

// NewRehabService builds the rehab use cases. minSessions <= 0 falls back
// to engine.DefaultMinimumRehabSessions.
func NewRehabService(
	states repository.RehabStateRepo,
	sessions repository.RehabSessionRepo,
	checkIns repository.PainCheckInRepo,
	maxes repository.MaxRecordRepo,
	uow db.UnitOfWork,
	clock Clock,
	minSessions int,
	observers ...UseCaseObserver,
) RehabService {
	return &rehabService{
		states:      states,
		sessions:    sessions,
		checkIns:    checkIns,
		maxes:       maxes,
		uow:         uow,
		now:         clockOrSystem(clock),
		minSessions: minSessions,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *rehabService) Start(ctx context.Context, req app.StartRehabRequest) (result *app.StartRehabResult, err error) {
	uc := beginUseCase(s.observer, "start-rehab")
	uc.set("severity", string(req.Severity))
	defer func() { uc.end(ctx, err) }()

	check, err := engine.ValidateRehabAppropriateness(req.Severity, req.Description)
	if err != nil {
		return nil, err
	}
	result = &app.StartRehabResult{Appropriateness: check}
	if !check.Appropriate {
		uc.set("appropriate", false)
		return result, nil
	}

	latest, err := s.maxes.LatestPerExercise(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading maxes: %w", err)
	}
	selected, err := selectMaxes(latest, req.ExerciseIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	plan, err := engine.InitiateRehab(req.Severity, selected, now)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteRehabStateRepo(tx)
		for i := range plan.States {
			st := plan.States[i]
			if _, err := repo.GetActive(ctx, st.ExerciseID); err == nil {
				return fmt.Errorf("%s: %w", st.ExerciseID, ErrAlreadyInRehab)
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			st.ID = uuid.New().String()
			if err := repo.Create(ctx, &st); err != nil {
				return err
			}
			result.States = append(result.States, &st)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Plan = &plan
	uc.set("exercises", len(result.States))
	return result, nil
}

// selectMaxes picks the requested exercises' maxes, or all of them sorted
// by exercise ID when none are requested.
func selectMaxes(latest map[string]domain.MaxRecord, ids []string) ([]domain.MaxRecord, error) {
	if len(ids) == 0 {
		for id := range latest {
			ids = append(ids, id)
		}
		sort.Strings(ids)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("starting rehab: %w", ErrNoRecordedMax)
	}
	out := make([]domain.MaxRecord, 0, len(ids))
	for _, id := range ids {
		m, ok := latest[id]
		if !ok {
			return nil, fmt.Errorf("%s: %w", id, ErrNoRecordedMax)
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *rehabService) ListActive(ctx context.Context) ([]*domain.RehabState, error) {
	return s.states.ListActive(ctx)
}

func (s *rehabService) LogSession(ctx context.Context, req app.LogRehabSessionRequest) (session *domain.RehabSession, err error) {
	uc := beginUseCase(s.observer, "log-rehab-session")
	uc.set("exercise", req.ExerciseID)
	defer func() { uc.end(ctx, err) }()

	if req.Weight <= 0 {
		return nil, &engine.ValidationError{Code: engine.CodeInvalidWeight, Field: "weight", Message: fmt.Sprintf("weight must be positive, got %v", req.Weight)}
	}
	if req.PainLevel != nil {
		if err = engine.ValidatePainLevel(*req.PainLevel); err != nil {
			return nil, err
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		states := repository.NewSQLiteRehabStateRepo(tx)
		st, err := states.GetActive(ctx, req.ExerciseID)
		if err != nil {
			return err
		}
		session = &domain.RehabSession{
			ID:               uuid.New().String(),
			ExerciseID:       req.ExerciseID,
			PreInjuryMax:     st.PreInjuryMax,
			CurrentWeight:    req.Weight,
			LoadReductionPct: st.LoadReductionPct,
			PainLevel:        req.PainLevel,
			Timestamp:        s.now(),
		}
		if err := repository.NewSQLiteRehabSessionRepo(tx).Create(ctx, session); err != nil {
			return err
		}
		st.SessionCount++
		st.CurrentWeight = req.Weight
		return states.Update(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CheckIn gates the next set against the previous stored reading for the
// exercise. Invalid readings are rejected and never persisted.
func (s *rehabService) CheckIn(ctx context.Context, req app.CheckInRequest) (result *app.CheckInResult, err error) {
	uc := beginUseCase(s.observer, "pain-check-in")
	uc.set("exercise", req.ExerciseID)
	uc.set("level", req.PainLevel)
	defer func() { uc.end(ctx, err) }()

	ci, err := engine.NewPainCheckIn(req.ExerciseID, req.SetNumber, req.PainLevel, req.Note, s.now())
	if err != nil {
		return nil, err
	}
	ci.ID = uuid.New().String()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePainCheckInRepo(tx)
		history, err := repo.ListByExercise(ctx, req.ExerciseID)
		if err != nil {
			return err
		}
		decision, err := engine.EvaluateCheckIn(history, ci)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &ci); err != nil {
			return err
		}
		result = &app.CheckInResult{CheckIn: ci, Decision: decision}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.set("gate", string(result.Decision.State))
	return result, nil
}

func (s *rehabService) Progress(ctx context.Context, exerciseID string) (*app.RehabProgress, error) {
	st, err := s.states.GetActive(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.blockSessions(ctx, st)
	if err != nil {
		return nil, err
	}
	recovery, err := engine.RecoveryProgress(st.CurrentWeight, st.PreInjuryMax)
	if err != nil {
		return nil, err
	}
	return &app.RehabProgress{
		State:               st,
		Recovery:            recovery,
		Advice:              engine.RehabProgression(sessions, exerciseID),
		ReEvaluateIntensity: engine.ShouldReEvaluateIntensityGoals(recovery.Percent, len(sessions)),
		SessionCount:        len(sessions),
	}, nil
}

func (s *rehabService) Graduation(ctx context.Context, exerciseID string) (result engine.GraduationResult, err error) {
	uc := beginUseCase(s.observer, "rehab-graduation")
	uc.set("exercise", exerciseID)
	defer func() { uc.end(ctx, err) }()

	st, err := s.states.GetActive(ctx, exerciseID)
	if err != nil {
		return engine.GraduationResult{}, err
	}
	sessions, err := s.blockSessions(ctx, st)
	if err != nil {
		return engine.GraduationResult{}, err
	}
	result, err = engine.ShouldGraduate(sessions, exerciseID, st.PreInjuryMax, s.minSessions)
	if err != nil {
		return engine.GraduationResult{}, err
	}
	uc.set("can_graduate", result.CanGraduate)
	return result, nil
}

func (s *rehabService) Summary(ctx context.Context) (engine.RehabSummary, error) {
	states, err := s.states.ListActive(ctx)
	if err != nil {
		return engine.RehabSummary{}, err
	}
	preInjury := make(map[string]float64, len(states))
	var sessions []domain.RehabSession
	for _, st := range states {
		preInjury[st.ExerciseID] = st.PreInjuryMax
		block, err := s.blockSessions(ctx, st)
		if err != nil {
			return engine.RehabSummary{}, err
		}
		sessions = append(sessions, block...)
	}
	return engine.SummarizeRehab(sessions, preInjury), nil
}

// blockSessions returns the sessions logged since st began. Sessions from an
// earlier rehab block of the same exercise never count toward this one.
func (s *rehabService) blockSessions(ctx context.Context, st *domain.RehabState) ([]domain.RehabSession, error) {
	history, err := s.sessions.ListByExercise(ctx, st.ExerciseID)
	if err != nil {
		return nil, err
	}
	var block []domain.RehabSession
	for _, sess := range history {
		if !sess.Timestamp.Before(st.StartedAt) {
			block = append(block, sess)
		}
	}
	return block, nil
}

func (s *rehabService) PainReport(ctx context.Context, exerciseID string) (engine.PainReport, error) {
	sessions, err := s.sessions.ListByExercise(ctx, exerciseID)
	if err != nil {
		return engine.PainReport{}, err
	}
	return engine.BuildPainReport(sessions, exerciseID), nil
}

func (s *rehabService) Exit(ctx context.Context) (assessment engine.ExitAssessment, err error) {
	uc := beginUseCase(s.observer, "exit-rehab")
	defer func() { uc.end(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteRehabStateRepo(tx)
		states, err := repo.ListActive(ctx)
		if err != nil {
			return err
		}
		if len(states) == 0 {
			return fmt.Errorf("exiting rehab: %w", repository.ErrNotFound)
		}
		current := make(map[string]float64, len(states))
		preInjury := make(map[string]float64, len(states))
		for _, st := range states {
			current[st.ExerciseID] = st.CurrentWeight
			preInjury[st.ExerciseID] = st.PreInjuryMax
		}
		assessment = engine.CanExitRehab(current, preInjury)
		if !assessment.CanExit {
			return nil
		}
		now := s.now()
		for _, st := range states {
			st.Active = false
			st.EndedAt = &now
			if err := repo.Update(ctx, st); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return engine.ExitAssessment{}, err
	}
	uc.set("can_exit", assessment.CanExit)
	uc.set("not_ready", slices.Clone(assessment.NotReady))
	return assessment, nil
}
