package service

import (
	"context"
	"time"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

type HoldService interface {
	Create(ctx context.Context, req app.CreateHoldRequest) (*domain.InjuryHold, error)
	GetByID(ctx context.Context, id string) (*domain.InjuryHold, error)
	// List returns every hold with Active derived from the clock.
	List(ctx context.Context) ([]domain.InjuryHold, error)
	ListActive(ctx context.Context) ([]domain.InjuryHold, error)
	// ExpireHolds persists the cleared active flag on lapsed holds.
	ExpireHolds(ctx context.Context) (int, error)
	Resize(ctx context.Context, id string, weeks int) (*domain.InjuryHold, error)
	EndEarly(ctx context.Context, id string) (*domain.InjuryHold, error)
	Preview(ctx context.Context, req app.CreateHoldRequest, plannedIDs []string) (engine.HoldImpact, error)
	FilterPlan(ctx context.Context, plannedIDs []string) (engine.PlanAdjustment, error)
	Summary(ctx context.Context) (engine.HoldSummary, []engine.TimelineEntry, error)
	Alternatives(ctx context.Context) (engine.Alternatives, error)
	Reintegration(ctx context.Context, id string) (engine.ReintegrationPlan, error)
}

type RehabService interface {
	Start(ctx context.Context, req app.StartRehabRequest) (*app.StartRehabResult, error)
	ListActive(ctx context.Context) ([]*domain.RehabState, error)
	LogSession(ctx context.Context, req app.LogRehabSessionRequest) (*domain.RehabSession, error)
	CheckIn(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error)
	Progress(ctx context.Context, exerciseID string) (*app.RehabProgress, error)
	Graduation(ctx context.Context, exerciseID string) (engine.GraduationResult, error)
	Summary(ctx context.Context) (engine.RehabSummary, error)
	PainReport(ctx context.Context, exerciseID string) (engine.PainReport, error)
	// Exit closes every active rehab state when all exercises are ready.
	Exit(ctx context.Context) (engine.ExitAssessment, error)
}

type SubstitutionService interface {
	// Rank uses the latest recorded max when currentMax is zero.
	Rank(ctx context.Context, exerciseID string, currentMax float64) ([]engine.SubstituteOption, error)
	Resolve(ctx context.Context, in engine.ResolveInput) (engine.AdjustedWeight, error)
	Validate(ctx context.Context, originalID, substituteID string) (engine.SubstitutionCheck, error)
	Emergency(ctx context.Context, exerciseID string, unavailable []domain.Equipment) (*engine.SubstituteOption, error)
	ConvertMax(ctx context.Context, fromID, toID, variantID string) (float64, error)
}

type AnalyticsService interface {
	LogWorkout(ctx context.Context, s *domain.SessionRecord) error
	// The per-workout reports take a workout ID; empty means the latest.
	Volume(ctx context.Context, workoutID string) (engine.VolumeReport, error)
	Intensity(ctx context.Context, workoutID string) (engine.IntensityReport, error)
	TimeUnderTension(ctx context.Context, workoutID string) (engine.TimeUnderTension, error)
	Balance(ctx context.Context, workoutID string) (engine.BalanceReport, error)
	Compare(ctx context.Context) (engine.WorkoutComparison, error)
	Trends(ctx context.Context, limit int) ([]engine.VolumeTrendPoint, error)
	FormCheck(ctx context.Context, exerciseID string, nextWeight float64) (app.FormCheckResult, error)
}

type CoachingService interface {
	Evaluate(ctx context.Context) ([]domain.CoachingFlag, error)
	ListFlags(ctx context.Context, includeAcknowledged bool) ([]*domain.CoachingFlag, error)
	Acknowledge(ctx context.Context, id string) error
	RecordMax(ctx context.Context, exerciseID string, weight float64) (*domain.MaxRecord, error)
	RecordAttempt(ctx context.Context, req app.RecordAttemptRequest) (*domain.MaxAttempt, error)
	RecordMissed(ctx context.Context, req app.RecordMissedRequest) (*domain.MissedSession, error)
	SuccessRate(ctx context.Context) (engine.SuccessRateReport, error)
	// Detraining assesses the gap since the last logged workout.
	Detraining(ctx context.Context) (engine.DetrainingResponse, error)
	LatestMaxes(ctx context.Context) (map[string]domain.MaxRecord, error)
	MaxHistory(ctx context.Context, since time.Time) ([]domain.MaxRecord, error)
}
