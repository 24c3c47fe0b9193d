package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	rehabCadence         = "3-1-3"
	rehabProgressionStep = 5.0
	progressionWindow    = 3
	exitRecoveryPct      = 90.0
	concerningPainLevel  = 4
	painTrendWindow      = 3
	improvingPainCeiling = 2
)

// redFlagKeywords in an injury description mean the injury should not be
// self-managed.
var redFlagKeywords = []string{
	"sharp", "severe", "unbearable", "radiating", "numbness",
	"tingling", "joint instability", "swelling", "bruising",
}

// RehabPlan is the result of entering rehab mode.
type RehabPlan struct {
	Severity           domain.Severity
	LoadReductionPct   int
	TargetRepMin       int
	TargetRepMax       int
	Cadence            PainCadence
	MaxTestingDisabled bool
	States             []domain.RehabState
}

// InitiateRehab builds per-exercise rehab state from the current maxes,
// which become the pre-injury markers. Order follows maxes.
func InitiateRehab(severity domain.Severity, maxes []domain.MaxRecord, now time.Time) (RehabPlan, error) {
	pct, err := LoadReductionFor(severity)
	if err != nil {
		return RehabPlan{}, err
	}
	cadence, err := PainCadenceFor(severity)
	if err != nil {
		return RehabPlan{}, err
	}

	plan := RehabPlan{
		Severity:           severity,
		LoadReductionPct:   pct,
		TargetRepMin:       domain.RehabRepMin,
		TargetRepMax:       domain.RehabRepMax,
		Cadence:            cadence,
		MaxTestingDisabled: true,
		States:             make([]domain.RehabState, 0, len(maxes)),
	}
	for _, m := range maxes {
		if m.Weight <= 0 {
			return RehabPlan{}, invalid(CodeInvalidMax, "max", "max for %s must be positive, got %v", m.ExerciseID, m.Weight)
		}
		weight, err := ApplyReduction(m.Weight, pct)
		if err != nil {
			return RehabPlan{}, err
		}
		plan.States = append(plan.States, domain.RehabState{
			ExerciseID:         m.ExerciseID,
			Severity:           severity,
			PreInjuryMax:       m.Weight,
			CurrentWeight:      weight,
			LoadReductionPct:   pct,
			TargetRepMin:       domain.RehabRepMin,
			TargetRepMax:       domain.RehabRepMax,
			Cadence:            rehabCadence,
			MaxTestingDisabled: true,
			Active:             true,
			StartedAt:          now,
		})
	}
	return plan, nil
}

// Appropriateness is the result of screening an injury before rehab mode.
type Appropriateness struct {
	Appropriate bool
	Warning     string
	Matched     []string
}

// ValidateRehabAppropriateness screens out severe injuries and descriptions
// containing red-flag symptoms.
func ValidateRehabAppropriateness(severity domain.Severity, description string) (Appropriateness, error) {
	if !domain.ValidSeverities[severity] {
		return Appropriateness{}, invalid(CodeInvalidSeverity, "severity", "unknown severity %q", severity)
	}
	lower := strings.ToLower(description)
	var matched []string
	for _, kw := range redFlagKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	if severity == domain.SeveritySevere || len(matched) > 0 {
		return Appropriateness{
			Warning: "Your injury description suggests you should seek medical evaluation before using Rehab Mode. Please consult a healthcare provider.",
			Matched: matched,
		}, nil
	}
	return Appropriateness{Appropriate: true}, nil
}

type ProgressionAdvice struct {
	ShouldIncrease bool
	IncreaseBy     float64
	NextWeight     float64
	Reasoning      string
}

// RehabProgression decides whether the next rehab session may add load.
// It needs three sessions, and none of the last three may report pain above 2.
func RehabProgression(sessions []domain.RehabSession, exerciseID string) ProgressionAdvice {
	history := exerciseSessions(sessions, exerciseID)
	var current float64
	if len(history) > 0 {
		current = history[len(history)-1].CurrentWeight
	}
	recent := lastN(history, progressionWindow)

	if len(recent) < progressionWindow {
		return ProgressionAdvice{
			NextWeight: current,
			Reasoning:  "Need at least 3 rehab sessions before progressing",
		}
	}
	for _, s := range recent {
		if s.PainLevel != nil && *s.PainLevel > maxGraduationPain {
			return ProgressionAdvice{
				NextWeight: current,
				Reasoning:  "Pain levels still present. Continue at current weight.",
			}
		}
	}
	return ProgressionAdvice{
		ShouldIncrease: true,
		IncreaseBy:     rehabProgressionStep,
		NextWeight:     current + rehabProgressionStep,
		Reasoning:      "Consistent performance with minimal pain. Ready for small increase.",
	}
}

type ExitAssessment struct {
	CanExit        bool
	NotReady       []string
	Recommendation string
}

// CanExitRehab requires every exercise to be back to 90% of its pre-injury
// marker. NotReady is sorted by exercise id.
func CanExitRehab(currentWeights, preInjury map[string]float64) ExitAssessment {
	var notReady []string
	for id, marker := range preInjury {
		w, ok := currentWeights[id]
		if !ok || w <= 0 || w < marker*exitRecoveryPct/100 {
			notReady = append(notReady, id)
		}
	}
	sort.Strings(notReady)

	if len(notReady) > 0 {
		return ExitAssessment{
			NotReady:       notReady,
			Recommendation: fmt.Sprintf("%d exercise(s) not yet at 90%% recovery. Continue rehab mode.", len(notReady)),
		}
	}
	return ExitAssessment{
		CanExit:        true,
		Recommendation: "Recovery complete! You can return to normal training.",
	}
}

type RehabSummary struct {
	TotalSessions   int
	AveragePain     float64
	Recovery        map[string]float64
	OverallRecovery float64
}

// SummarizeRehab reports session count, mean pain (one decimal), latest
// recovery per exercise, and the mean recovery across exercises (rounded).
// Exercises with a marker but no sessions count as 0% recovered.
func SummarizeRehab(sessions []domain.RehabSession, preInjury map[string]float64) RehabSummary {
	ordered := make([]domain.RehabSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	var painSum, painCount int
	latest := make(map[string]float64)
	for _, s := range ordered {
		if s.PainLevel != nil {
			painSum += *s.PainLevel
			painCount++
		}
		latest[s.ExerciseID] = s.CurrentWeight
	}

	summary := RehabSummary{
		TotalSessions: len(sessions),
		Recovery:      make(map[string]float64, len(preInjury)),
	}
	if painCount > 0 {
		summary.AveragePain = roundTo(float64(painSum)/float64(painCount), 1)
	}

	var total float64
	for id, marker := range preInjury {
		if marker <= 0 {
			continue
		}
		pct := 100 * latest[id] / marker
		summary.Recovery[id] = pct
		total += pct
	}
	if len(summary.Recovery) > 0 {
		summary.OverallRecovery = math.Round(total / float64(len(summary.Recovery)))
	}
	return summary
}

type PainReport struct {
	SessionCount int
	Trend        domain.PainTrend
	AveragePain  float64
	LatestPain   *int
	Concerning   bool
}

// BuildPainReport summarizes pain readings for one exercise for a coach.
// Trend compares the first and last of the last three readings.
func BuildPainReport(sessions []domain.RehabSession, exerciseID string) PainReport {
	var levels []int
	for _, s := range exerciseSessions(sessions, exerciseID) {
		if s.PainLevel != nil {
			levels = append(levels, *s.PainLevel)
		}
	}
	if len(levels) == 0 {
		return PainReport{Trend: domain.PainNoData}
	}

	sum := 0
	for _, l := range levels {
		sum += l
	}
	latest := levels[len(levels)-1]

	trend := domain.PainStable
	if len(levels) >= painTrendWindow {
		recent := levels[len(levels)-painTrendWindow:]
		first, last := recent[0], recent[len(recent)-1]
		switch {
		case last < first && last <= improvingPainCeiling:
			trend = domain.PainImproving
		case last > first:
			trend = domain.PainWorsening
		}
	}

	return PainReport{
		SessionCount: len(levels),
		Trend:        trend,
		AveragePain:  roundTo(float64(sum)/float64(len(levels)), 1),
		LatestPain:   &latest,
		Concerning:   latest > concerningPainLevel || trend == domain.PainWorsening,
	}
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
