package app

import (
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

const DefaultHoldWeeks = 2

type CreateHoldRequest struct {
	Severity         domain.Severity
	MuscleGroups     []domain.MuscleGroup
	MovementPatterns []domain.MovementPattern
	Reason           string
	// StartDate defaults to now.
	StartDate     *time.Time
	DurationWeeks int
}

func NewCreateHoldRequest() CreateHoldRequest {
	return CreateHoldRequest{DurationWeeks: DefaultHoldWeeks}
}

func (r CreateHoldRequest) Params() engine.HoldParams {
	p := engine.HoldParams{
		Severity:         r.Severity,
		MuscleGroups:     r.MuscleGroups,
		MovementPatterns: r.MovementPatterns,
		Reason:           r.Reason,
		DurationWeeks:    r.DurationWeeks,
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	return p
}

type StartRehabRequest struct {
	Severity    domain.Severity
	Description string
	// ExerciseIDs limits rehab to these exercises. Empty means every
	// exercise with a recorded max.
	ExerciseIDs []string
}

func NewStartRehabRequest() StartRehabRequest {
	return StartRehabRequest{Severity: domain.SeverityMild}
}

type StartRehabResult struct {
	Appropriateness engine.Appropriateness
	// Plan is nil when rehab was not appropriate.
	Plan   *engine.RehabPlan
	States []*domain.RehabState
}

type LogRehabSessionRequest struct {
	ExerciseID string
	Weight     float64
	PainLevel  *int
}

type CheckInRequest struct {
	ExerciseID string
	SetNumber  int
	PainLevel  int
	Note       string
}

func NewCheckInRequest(exerciseID string) CheckInRequest {
	return CheckInRequest{ExerciseID: exerciseID, SetNumber: 1}
}

type CheckInResult struct {
	CheckIn  domain.PainCheckIn
	Decision engine.GateDecision
}

type RehabProgress struct {
	State               *domain.RehabState
	Recovery            engine.RecoveryStatus
	Advice              engine.ProgressionAdvice
	ReEvaluateIntensity bool
	SessionCount        int
}

type RecordAttemptRequest struct {
	ExerciseID string
	Weight     float64
	Reps       int
	Successful bool
}

type RecordMissedRequest struct {
	ScheduledAt time.Time
	Reason      domain.MissedReason
	Note        string
}

func NewRecordMissedRequest(at time.Time) RecordMissedRequest {
	return RecordMissedRequest{ScheduledAt: at, Reason: domain.MissedOther}
}

// FormCheckResult is the pre-set form advice for one exercise, built from
// the sets of recent workouts.
type FormCheckResult struct {
	ExerciseID   string
	NextWeight   float64
	Prompt       engine.FormPrompt
	Stats        engine.PerformanceStats
	Review       bool
	ReviewReason string
	Tips         []string
}
