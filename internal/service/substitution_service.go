package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/repository"
)

type substitutionService struct {
	catalog  engine.Catalog
	maxes    repository.MaxRecordRepo
	observer UseCaseObserver
}

func NewSubstitutionService(catalog engine.Catalog, maxes repository.MaxRecordRepo, observers ...UseCaseObserver) SubstitutionService {
	return &substitutionService{
		catalog:  catalog,
		maxes:    maxes,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *substitutionService) currentMax(ctx context.Context, exerciseID string, given float64) (float64, error) {
	if given > 0 {
		return given, nil
	}
	latest, err := s.maxes.LatestPerExercise(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading maxes: %w", err)
	}
	m, ok := latest[exerciseID]
	if !ok {
		return 0, fmt.Errorf("%s: %w", exerciseID, ErrNoRecordedMax)
	}
	return m.Weight, nil
}

func (s *substitutionService) Rank(ctx context.Context, exerciseID string, currentMax float64) (options []engine.SubstituteOption, err error) {
	uc := beginUseCase(s.observer, "rank-substitutes")
	uc.set("exercise", exerciseID)
	defer func() { uc.end(ctx, err) }()

	weight, err := s.currentMax(ctx, exerciseID, currentMax)
	if err != nil {
		return nil, err
	}
	options, err = engine.RankSubstitutes(s.catalog, exerciseID, weight)
	if err != nil {
		return nil, err
	}
	uc.set("options", len(options))
	return options, nil
}

func (s *substitutionService) Resolve(ctx context.Context, in engine.ResolveInput) (adjusted engine.AdjustedWeight, err error) {
	uc := beginUseCase(s.observer, "resolve-weight")
	uc.set("from", in.OriginalID)
	uc.set("to", in.TargetID)
	defer func() { uc.end(ctx, err) }()

	if in.OriginalWeight <= 0 {
		if in.OriginalWeight, err = s.currentMax(ctx, in.OriginalID, 0); err != nil {
			return engine.AdjustedWeight{}, err
		}
	}
	return engine.Resolve(s.catalog, in)
}

func (s *substitutionService) Validate(ctx context.Context, originalID, substituteID string) (engine.SubstitutionCheck, error) {
	return engine.ValidateSubstitution(s.catalog, originalID, substituteID)
}

func (s *substitutionService) Emergency(ctx context.Context, exerciseID string, unavailable []domain.Equipment) (option *engine.SubstituteOption, err error) {
	uc := beginUseCase(s.observer, "emergency-substitute")
	uc.set("exercise", exerciseID)
	defer func() { uc.end(ctx, err) }()

	weight, err := s.currentMax(ctx, exerciseID, 0)
	if err != nil {
		return nil, err
	}
	return engine.SuggestEmergencySubstitute(s.catalog, exerciseID, unavailable, weight)
}

// ConvertMax carries the latest recorded max of fromID over to another
// exercise or one of fromID's variants.
func (s *substitutionService) ConvertMax(ctx context.Context, fromID, toID, variantID string) (weight float64, err error) {
	uc := beginUseCase(s.observer, "convert-max")
	uc.set("from", fromID)
	defer func() { uc.end(ctx, err) }()

	latest, err := s.maxes.LatestPerExercise(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading maxes: %w", err)
	}
	m, ok := latest[fromID]
	if !ok {
		return 0, fmt.Errorf("%s: %w", fromID, ErrNoRecordedMax)
	}
	return engine.ConvertMax(s.catalog, m, toID, variantID)
}
