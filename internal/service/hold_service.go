package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/google/uuid"
)

type holdService struct {
	holds    repository.HoldRepo
	maxes    repository.MaxRecordRepo
	catalog  engine.Catalog
	uow      db.UnitOfWork
	now      Clock
	observer UseCaseObserver
}

func NewHoldService(
	holds repository.HoldRepo,
	maxes repository.MaxRecordRepo,
	catalog engine.Catalog,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) HoldService {
	return &holdService{
		holds:    holds,
		maxes:    maxes,
		catalog:  catalog,
		uow:      uow,
		now:      clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *holdService) Create(ctx context.Context, req app.CreateHoldRequest) (hold *domain.InjuryHold, err error) {
	uc := beginUseCase(s.observer, "create-hold")
	uc.set("weeks", req.DurationWeeks)
	defer func() { uc.end(ctx, err) }()

	h, err := engine.NewHold(req.Params(), s.now())
	if err != nil {
		return nil, err
	}
	h.ID = uuid.New().String()
	if err = s.holds.Create(ctx, &h); err != nil {
		return nil, err
	}
	uc.set("hold_id", h.ID)
	return &h, nil
}

func (s *holdService) GetByID(ctx context.Context, id string) (*domain.InjuryHold, error) {
	h, err := s.holds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h.Active = h.IsActiveAt(s.now())
	return h, nil
}

func (s *holdService) List(ctx context.Context) ([]domain.InjuryHold, error) {
	stored, err := s.holds.List(ctx)
	if err != nil {
		return nil, err
	}
	return engine.DeactivateExpired(derefHolds(stored), s.now()), nil
}

func (s *holdService) ListActive(ctx context.Context) ([]domain.InjuryHold, error) {
	stored, err := s.holds.List(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ActiveHolds(derefHolds(stored), s.now()), nil
}

func (s *holdService) ExpireHolds(ctx context.Context) (expired int, err error) {
	uc := beginUseCase(s.observer, "expire-holds")
	defer func() {
		uc.set("expired", expired)
		uc.end(ctx, err)
	}()

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHoldRepo(tx)
		stored, err := repo.List(ctx)
		if err != nil {
			return err
		}
		for _, h := range stored {
			if !h.Active || h.IsActiveAt(now) {
				continue
			}
			h.Active = false
			h.UpdatedAt = now
			if err := repo.Update(ctx, h); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	return expired, err
}

func (s *holdService) Resize(ctx context.Context, id string, weeks int) (hold *domain.InjuryHold, err error) {
	uc := beginUseCase(s.observer, "resize-hold")
	uc.set("hold_id", id)
	uc.set("weeks", weeks)
	defer func() { uc.end(ctx, err) }()

	return s.mutate(ctx, id, func(h domain.InjuryHold) (domain.InjuryHold, error) {
		return engine.ResizeHold(h, weeks, s.now())
	})
}

func (s *holdService) EndEarly(ctx context.Context, id string) (hold *domain.InjuryHold, err error) {
	uc := beginUseCase(s.observer, "end-hold")
	uc.set("hold_id", id)
	defer func() { uc.end(ctx, err) }()

	return s.mutate(ctx, id, func(h domain.InjuryHold) (domain.InjuryHold, error) {
		return engine.EndHoldEarly(h, s.now())
	})
}

func (s *holdService) mutate(ctx context.Context, id string, fn func(domain.InjuryHold) (domain.InjuryHold, error)) (*domain.InjuryHold, error) {
	var updated domain.InjuryHold
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHoldRepo(tx)
		h, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if updated, err = fn(*h); err != nil {
			return err
		}
		return repo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *holdService) Preview(ctx context.Context, req app.CreateHoldRequest, plannedIDs []string) (engine.HoldImpact, error) {
	if len(plannedIDs) == 0 {
		plannedIDs = exerciseIDs(s.catalog)
	}
	planned, err := profiles(s.catalog, plannedIDs)
	if err != nil {
		return engine.HoldImpact{}, err
	}
	return engine.AnalyzeImpact(req.Params(), planned, s.now())
}

func (s *holdService) FilterPlan(ctx context.Context, plannedIDs []string) (adj engine.PlanAdjustment, err error) {
	uc := beginUseCase(s.observer, "filter-plan")
	uc.set("planned", len(plannedIDs))
	defer func() { uc.end(ctx, err) }()

	planned, err := profiles(s.catalog, plannedIDs)
	if err != nil {
		return engine.PlanAdjustment{}, err
	}
	active, err := s.ListActive(ctx)
	if err != nil {
		return engine.PlanAdjustment{}, err
	}
	adj = engine.AdjustPlan(planned, active, s.now())
	uc.set("removed", len(adj.Removed))
	return adj, nil
}

func (s *holdService) Summary(ctx context.Context) (engine.HoldSummary, []engine.TimelineEntry, error) {
	stored, err := s.holds.List(ctx)
	if err != nil {
		return engine.HoldSummary{}, nil, err
	}
	holds := derefHolds(stored)
	now := s.now()
	return engine.SummarizeHolds(holds, now), engine.HoldTimeline(holds, now), nil
}

func (s *holdService) Alternatives(ctx context.Context) (engine.Alternatives, error) {
	summary, _, err := s.Summary(ctx)
	if err != nil {
		return engine.Alternatives{}, err
	}
	return engine.SuggestAlternatives(summary.MuscleGroups), nil
}

// Reintegration plans the return for every catalog exercise the hold
// affected, seeded from the latest recorded maxes.
func (s *holdService) Reintegration(ctx context.Context, id string) (engine.ReintegrationPlan, error) {
	h, err := s.holds.GetByID(ctx, id)
	if err != nil {
		return engine.ReintegrationPlan{}, err
	}
	latest, err := s.maxes.LatestPerExercise(ctx)
	if err != nil {
		return engine.ReintegrationPlan{}, fmt.Errorf("loading maxes: %w", err)
	}
	maxes := make(map[string]float64, len(latest))
	for exID, m := range latest {
		maxes[exID] = m.Weight
	}

	// Evaluate at the hold's start, when its window is known to be open.
	open := *h
	open.Active = true
	var affected []string
	for _, ex := range s.catalog.Exercises() {
		if engine.IsAffected(ex, []domain.InjuryHold{open}, h.StartDate).Affected {
			affected = append(affected, ex.ID)
		}
	}
	return engine.CreateReintegrationPlan(*h, maxes, affected)
}
