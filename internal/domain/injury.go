package domain

import "time"

// InjuryHold pauses training for a set of muscle groups and movement
// patterns. EndDate is exclusive: the hold applies while now < EndDate.
type InjuryHold struct {
	ID               string
	Severity         Severity
	MuscleGroups     []MuscleGroup
	MovementPatterns []MovementPattern
	Reason           string
	StartDate        time.Time
	EndDate          time.Time
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsExpired reports whether the hold window has closed at now.
func (h *InjuryHold) IsExpired(now time.Time) bool {
	return !now.Before(h.EndDate)
}

// IsActiveAt derives activity from both the stored flag and the window.
// The stored flag alone is never trusted.
func (h *InjuryHold) IsActiveAt(now time.Time) bool {
	return h.Active && !h.IsExpired(now)
}

// RehabRepMin and RehabRepMax bound the target rep band while rehab is active.
const (
	RehabRepMin = 10
	RehabRepMax = 15
)

// RehabState tracks one exercise under rehab mode.
type RehabState struct {
	ID                 string
	ExerciseID         string
	Severity           Severity
	PreInjuryMax       float64
	CurrentWeight      float64
	LoadReductionPct   int
	TargetRepMin       int
	TargetRepMax       int
	Cadence            string
	MaxTestingDisabled bool
	SessionCount       int
	Active             bool
	StartedAt          time.Time
	EndedAt            *time.Time
}

// RehabSession is one logged rehab workout for an exercise.
type RehabSession struct {
	ID               string
	ExerciseID       string
	PreInjuryMax     float64
	CurrentWeight    float64
	LoadReductionPct int
	PainLevel        *int
	Timestamp        time.Time
}

// PainCheckIn is an immutable pain reading taken after a set.
type PainCheckIn struct {
	ID         string
	ExerciseID string
	SetNumber  int
	PainLevel  int
	Note       string
	Timestamp  time.Time
}
