package app

import (
	"context"

	"github.com/alexanderramin/trainload/internal/domain"
)

// PainCheckInUseCase records a pain reading and returns the gate decision
// for the next set.
type PainCheckInUseCase interface {
	CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
}

type LogWorkoutUseCase interface {
	LogWorkout(ctx context.Context, s *domain.SessionRecord) error
}

type EvaluateFlagsUseCase interface {
	Evaluate(ctx context.Context) ([]domain.CoachingFlag, error)
}
