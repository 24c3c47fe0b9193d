package testutil

import (
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/google/uuid"
)

// Fixed reference time so persisted RFC3339 values round-trip exactly.
var Now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// Injury hold options
type HoldOption func(*domain.InjuryHold)

func WithHoldSeverity(s domain.Severity) HoldOption {
	return func(h *domain.InjuryHold) {
		h.Severity = s
	}
}

func WithHoldPatterns(p ...domain.MovementPattern) HoldOption {
	return func(h *domain.InjuryHold) {
		h.MovementPatterns = p
	}
}

func WithHoldWindow(start, end time.Time) HoldOption {
	return func(h *domain.InjuryHold) {
		h.StartDate = start
		h.EndDate = end
	}
}

func WithHoldInactive() HoldOption {
	return func(h *domain.InjuryHold) {
		h.Active = false
	}
}

// NewTestHold returns an active two-week hold on the given muscle groups
// that started a day before Now.
func NewTestHold(groups []domain.MuscleGroup, opts ...HoldOption) *domain.InjuryHold {
	start := Now.AddDate(0, 0, -1)
	h := &domain.InjuryHold{
		ID:           uuid.New().String(),
		Severity:     domain.SeverityModerate,
		MuscleGroups: groups,
		Reason:       "test strain",
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 14),
		Active:       true,
		CreatedAt:    start,
		UpdatedAt:    start,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Rehab options
type RehabOption func(*domain.RehabState)

func WithRehabSeverity(s domain.Severity, reductionPct int) RehabOption {
	return func(r *domain.RehabState) {
		r.Severity = s
		r.LoadReductionPct = reductionPct
		r.CurrentWeight = r.PreInjuryMax * float64(100-reductionPct) / 100
	}
}

func WithRehabSessionCount(n int) RehabOption {
	return func(r *domain.RehabState) {
		r.SessionCount = n
	}
}

func NewTestRehabState(exerciseID string, preInjuryMax float64, opts ...RehabOption) *domain.RehabState {
	r := &domain.RehabState{
		ID:                 uuid.New().String(),
		ExerciseID:         exerciseID,
		Severity:           domain.SeverityModerate,
		PreInjuryMax:       preInjuryMax,
		CurrentWeight:      preInjuryMax * 0.8,
		LoadReductionPct:   20,
		TargetRepMin:       domain.RehabRepMin,
		TargetRepMax:       domain.RehabRepMax,
		Cadence:            "3-1-3",
		MaxTestingDisabled: true,
		Active:             true,
		StartedAt:          Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestRehabSession(exerciseID string, weight float64, at time.Time, pain *int) *domain.RehabSession {
	return &domain.RehabSession{
		ID:               uuid.New().String(),
		ExerciseID:       exerciseID,
		PreInjuryMax:     weight / 0.8,
		CurrentWeight:    weight,
		LoadReductionPct: 20,
		PainLevel:        pain,
		Timestamp:        at,
	}
}

func NewTestPainCheckIn(exerciseID string, level int, at time.Time) *domain.PainCheckIn {
	return &domain.PainCheckIn{
		ID:         uuid.New().String(),
		ExerciseID: exerciseID,
		SetNumber:  1,
		PainLevel:  level,
		Timestamp:  at,
	}
}

// Workout options
type WorkoutOption func(*domain.SessionRecord)

func WithExercise(exerciseID string, sets ...domain.SetRecord) WorkoutOption {
	return func(s *domain.SessionRecord) {
		s.Exercises = append(s.Exercises, domain.ExerciseLog{ExerciseID: exerciseID, Sets: sets})
	}
}

func WithUnfinished() WorkoutOption {
	return func(s *domain.SessionRecord) {
		s.CompletedAt = nil
	}
}

// NewTestWorkout returns an hour-long completed session starting at start.
func NewTestWorkout(start time.Time, opts ...WorkoutOption) *domain.SessionRecord {
	end := start.Add(time.Hour)
	s := &domain.SessionRecord{
		ID:          uuid.New().String(),
		StartedAt:   start,
		CompletedAt: &end,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set builds a completed set with a 90 second rest.
func Set(weight float64, reps int) domain.SetRecord {
	return domain.SetRecord{Weight: weight, Reps: reps, TargetRepMin: 4, TargetRepMax: 6, RestSeconds: 90}
}

func NewTestMaxRecord(exerciseID string, weight float64, at time.Time) *domain.MaxRecord {
	return &domain.MaxRecord{ID: uuid.New().String(), ExerciseID: exerciseID, Weight: weight, TestedAt: at}
}

func NewTestMaxAttempt(exerciseID string, weight float64, successful bool, at time.Time) *domain.MaxAttempt {
	reps := 4
	if !successful {
		reps = 2
	}
	return &domain.MaxAttempt{
		ID:         uuid.New().String(),
		ExerciseID: exerciseID,
		Weight:     weight,
		Reps:       reps,
		Successful: successful,
		Timestamp:  at,
	}
}

func NewTestMissedSession(reason domain.MissedReason, at time.Time) *domain.MissedSession {
	return &domain.MissedSession{ID: uuid.New().String(), ScheduledAt: at, Reason: reason}
}

func NewTestFlag(t domain.FlagType, sev domain.FlagSeverity, at time.Time) *domain.CoachingFlag {
	return &domain.CoachingFlag{
		ID:          uuid.New().String(),
		Type:        t,
		Severity:    sev,
		Message:     "test flag",
		GeneratedAt: at,
	}
}
