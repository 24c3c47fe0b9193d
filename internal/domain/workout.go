package domain

import "time"

// SetRecord is a single completed set.
type SetRecord struct {
	Weight       float64
	Reps         int
	TargetRepMin int
	TargetRepMax int
	RestSeconds  int
	CompletedAt  time.Time
}

// ExerciseLog holds the ordered sets performed for one exercise.
type ExerciseLog struct {
	ExerciseID string
	Sets       []SetRecord
}

// SessionRecord is a completed (or in-progress) workout. CompletedAt is nil
// while the session is still running.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	CompletedAt *time.Time
	Exercises   []ExerciseLog
}

// MaxRecord is a tested four-rep max.
type MaxRecord struct {
	ID         string
	ExerciseID string
	Weight     float64
	TestedAt   time.Time
}

// MaxAttempt is a single max-testing attempt, successful or not.
type MaxAttempt struct {
	ID         string
	ExerciseID string
	Weight     float64
	Reps       int
	Successful bool
	Timestamp  time.Time
}

// MissedSession is a scheduled workout that did not happen.
type MissedSession struct {
	ID          string
	ScheduledAt time.Time
	Reason      MissedReason
	Note        string
}

// CoachingFlag is raised for a supervising coach. Acknowledged is only
// ever changed by the coach, never by detection.
type CoachingFlag struct {
	ID           string
	Type         FlagType
	Severity     FlagSeverity
	Message      string
	GeneratedAt  time.Time
	Acknowledged bool
}
