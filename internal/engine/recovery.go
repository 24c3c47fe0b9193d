package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	// ReadyForNormalTrainingPct is the recovery needed to leave rehab.
	ReadyForNormalTrainingPct = 95.0

	// DefaultMinimumRehabSessions is the session floor for graduation.
	DefaultMinimumRehabSessions = 6

	reEvaluatePct      = 90.0
	reEvaluateSessions = 6

	// recentPainWindow is how many trailing sessions must stay at or below
	// maxGraduationPain.
	recentPainWindow  = 3
	maxGraduationPain = 2
)

type Milestone struct {
	Percent  int
	Title    string
	Achieved bool
}

var milestoneTable = []Milestone{
	{Percent: 50, Title: "Halfway Back"},
	{Percent: 75, Title: "Three Quarters Strong"},
	{Percent: 90, Title: "Nearly Recovered"},
	{Percent: 100, Title: "Full Strength Restored"},
	{Percent: 105, Title: "Stronger Than Before"},
}

type RecoveryStatus struct {
	// Percent is 100 × current / pre-injury max and may exceed 100.
	Percent                float64
	Milestones             []Milestone
	ReadyForNormalTraining bool
}

// Highest returns the highest achieved milestone, if any.
func (s RecoveryStatus) Highest() (Milestone, bool) {
	for i := len(s.Milestones) - 1; i >= 0; i-- {
		if s.Milestones[i].Achieved {
			return s.Milestones[i], true
		}
	}
	return Milestone{}, false
}

// RecoveryPercent is the single definition of recovery progress.
func RecoveryPercent(currentWeight, preInjuryMax float64) (float64, error) {
	if preInjuryMax <= 0 {
		return 0, invalid(CodeInvalidMax, "pre_injury_max", "pre-injury max must be positive, got %v", preInjuryMax)
	}
	if currentWeight < 0 {
		return 0, invalid(CodeInvalidWeight, "current_weight", "weight cannot be negative, got %v", currentWeight)
	}
	return 100 * currentWeight / preInjuryMax, nil
}

// RecoveryProgress reports percent recovered and which milestones are met.
// Milestones are not exclusive; every threshold at or below the percent is
// achieved.
func RecoveryProgress(currentWeight, preInjuryMax float64) (RecoveryStatus, error) {
	pct, err := RecoveryPercent(currentWeight, preInjuryMax)
	if err != nil {
		return RecoveryStatus{}, err
	}
	milestones := make([]Milestone, len(milestoneTable))
	for i, m := range milestoneTable {
		m.Achieved = pct >= float64(m.Percent)
		milestones[i] = m
	}
	return RecoveryStatus{
		Percent:                pct,
		Milestones:             milestones,
		ReadyForNormalTraining: pct >= ReadyForNormalTrainingPct,
	}, nil
}

// ShouldReEvaluateIntensityGoals is a softer, earlier trigger than
// graduation used to prompt a conversation about training intensity.
func ShouldReEvaluateIntensityGoals(recoveryPct float64, sessionsCompleted int) bool {
	return recoveryPct >= reEvaluatePct && sessionsCompleted >= reEvaluateSessions
}

// GraduationBlocker names the first failed graduation check.
type GraduationBlocker string

const (
	BlockerNone                 GraduationBlocker = ""
	BlockerInsufficientSessions GraduationBlocker = "insufficient_sessions"
	BlockerRecoveryBelowTarget  GraduationBlocker = "recovery_below_target"
	BlockerRecentPain           GraduationBlocker = "recent_pain"
)

type GraduationResult struct {
	CanGraduate bool
	Blocker     GraduationBlocker
	Reason      string
	NextSteps   string
	// Remaining is the number of sessions still needed when Blocker is
	// BlockerInsufficientSessions.
	Remaining   int
	RecoveryPct float64
}

// exerciseSessions returns the sessions for one exercise in chronological order.
func exerciseSessions(sessions []domain.RehabSession, exerciseID string) []domain.RehabSession {
	out := make([]domain.RehabSession, 0, len(sessions))
	for _, s := range sessions {
		if s.ExerciseID == exerciseID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

func lastN(sessions []domain.RehabSession, n int) []domain.RehabSession {
	if len(sessions) <= n {
		return sessions
	}
	return sessions[len(sessions)-n:]
}

// ShouldGraduate runs the ordered graduation checklist for one exercise:
// enough sessions, latest recovery at least 95%, and no pain above 2 in the
// last three sessions. The first failing check is reported. minimumSessions
// <= 0 uses DefaultMinimumRehabSessions.
func ShouldGraduate(sessions []domain.RehabSession, exerciseID string, preInjuryMax float64, minimumSessions int) (GraduationResult, error) {
	if preInjuryMax <= 0 {
		return GraduationResult{}, invalid(CodeInvalidMax, "pre_injury_max", "pre-injury max must be positive, got %v", preInjuryMax)
	}
	if minimumSessions <= 0 {
		minimumSessions = DefaultMinimumRehabSessions
	}

	history := exerciseSessions(sessions, exerciseID)
	if len(history) == 0 {
		return GraduationResult{}, &PreconditionError{
			Code:      CodeNoSessions,
			Message:   fmt.Sprintf("no rehab sessions recorded for %s; complete at least %d (%d remaining)", exerciseID, minimumSessions, minimumSessions),
			Remaining: minimumSessions,
		}
	}

	if len(history) < minimumSessions {
		remaining := minimumSessions - len(history)
		return GraduationResult{
			Blocker:   BlockerInsufficientSessions,
			Reason:    fmt.Sprintf("Complete at least %d rehab sessions (%d remaining)", minimumSessions, remaining),
			Remaining: remaining,
		}, nil
	}

	latest := history[len(history)-1]
	pct, err := RecoveryPercent(latest.CurrentWeight, preInjuryMax)
	if err != nil {
		return GraduationResult{}, err
	}
	if pct < ReadyForNormalTrainingPct {
		return GraduationResult{
			Blocker:     BlockerRecoveryBelowTarget,
			Reason:      fmt.Sprintf("At %d%% recovery. Reach 95%% before graduating.", int(math.Round(pct))),
			RecoveryPct: pct,
		}, nil
	}

	for _, s := range lastN(history, recentPainWindow) {
		if s.PainLevel != nil && *s.PainLevel > maxGraduationPain {
			return GraduationResult{
				Blocker:     BlockerRecentPain,
				Reason:      "Recent sessions show elevated pain. Continue rehab until pain-free.",
				RecoveryPct: pct,
			}, nil
		}
	}

	return GraduationResult{
		CanGraduate: true,
		Reason:      "Recovery complete! Ready to return to normal training.",
		NextSteps:   "Start with moderate intensity and gradually increase over 2-3 weeks.",
		RecoveryPct: pct,
	}, nil
}
