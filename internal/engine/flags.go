package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	plateauWindow        = 28 * day
	testingRiskWindow    = 14 * day
	fatigueWindow        = 14 * day
	injuryConcernWindow  = 30 * day
	successRateWindow    = 90 * day
	plateauMinExercises  = 2
	maxAttemptsPerWindow = 2
	fatigueMinFailures   = 3
	injuryMinMissed      = 3
	successTrendMinCount = 6
	successTrendMargin   = 0.15
)

// FlagHistory is the recent record the detectors read. Order does not
// matter; every detector filters by its own window.
type FlagHistory struct {
	Maxes    []domain.MaxRecord
	Attempts []domain.MaxAttempt
	Missed   []domain.MissedSession
}

// DetectFlags runs every detector and returns the union of what fired.
// Detectors never suppress each other. Returned flags carry no ID.
func DetectFlags(h FlagHistory, now time.Time) []domain.CoachingFlag {
	var flags []domain.CoachingFlag
	for _, f := range []*domain.CoachingFlag{
		DetectPlateau(h.Maxes, now),
		DetectTestingRisk(h.Attempts, now),
		DetectFatigue(h.Attempts, now),
		DetectInjuryConcern(h.Missed, now),
	} {
		if f != nil {
			flags = append(flags, *f)
		}
	}
	return flags
}

func within(t, now time.Time, window time.Duration) bool {
	return !t.Before(now.Add(-window)) && !t.After(now)
}

// DetectPlateau fires when at least two exercises show the same max at the
// start and end of the last four weeks.
func DetectPlateau(maxes []domain.MaxRecord, now time.Time) *domain.CoachingFlag {
	byExercise := make(map[string][]domain.MaxRecord)
	for _, m := range maxes {
		if within(m.TestedAt, now, plateauWindow) {
			byExercise[m.ExerciseID] = append(byExercise[m.ExerciseID], m)
		}
	}

	count := 0
	for _, recent := range byExercise {
		if len(recent) < 2 {
			continue
		}
		sort.SliceStable(recent, func(i, j int) bool { return recent[i].TestedAt.Before(recent[j].TestedAt) })
		if recent[0].Weight == recent[len(recent)-1].Weight {
			count++
		}
	}
	if count < plateauMinExercises {
		return nil
	}
	return &domain.CoachingFlag{
		Type:        domain.FlagPlateau,
		Severity:    domain.FlagMedium,
		Message:     fmt.Sprintf("Plateau detected on %d exercises - no 4RM progress in 4 weeks", count),
		GeneratedAt: now,
	}
}

// DetectTestingRisk fires when any exercise was max-tested more than twice
// in two weeks.
func DetectTestingRisk(attempts []domain.MaxAttempt, now time.Time) *domain.CoachingFlag {
	perExercise := make(map[string]int)
	for _, a := range attempts {
		if within(a.Timestamp, now, testingRiskWindow) {
			perExercise[a.ExerciseID]++
		}
	}
	count := 0
	for _, n := range perExercise {
		if n > maxAttemptsPerWindow {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return &domain.CoachingFlag{
		Type:        domain.FlagOvertrainingRisk,
		Severity:    domain.FlagHigh,
		Message:     fmt.Sprintf("%d exercise(s) tested too frequently - risk of overtraining", count),
		GeneratedAt: now,
	}
}

// DetectFatigue counts failed attempts across all exercises in two weeks.
func DetectFatigue(attempts []domain.MaxAttempt, now time.Time) *domain.CoachingFlag {
	failed := 0
	for _, a := range attempts {
		if !a.Successful && within(a.Timestamp, now, fatigueWindow) {
			failed++
		}
	}
	if failed < fatigueMinFailures {
		return nil
	}
	return &domain.CoachingFlag{
		Type:        domain.FlagFatigue,
		Severity:    domain.FlagHigh,
		Message:     fmt.Sprintf("%d failed P1 attempts recently - possible fatigue or overreaching", failed),
		GeneratedAt: now,
	}
}

// DetectInjuryConcern counts injury-attributed missed sessions in 30 days.
func DetectInjuryConcern(missed []domain.MissedSession, now time.Time) *domain.CoachingFlag {
	n := 0
	for _, m := range missed {
		if m.Reason == domain.MissedInjury && within(m.ScheduledAt, now, injuryConcernWindow) {
			n++
		}
	}
	if n < injuryMinMissed {
		return nil
	}
	return &domain.CoachingFlag{
		Type:        domain.FlagInjuryConcern,
		Severity:    domain.FlagHigh,
		Message:     fmt.Sprintf("%d injury-related cancellations this month - review training intensity", n),
		GeneratedAt: now,
	}
}

type SuccessRateReport struct {
	TotalAttempts int
	Successful    int
	Failed        int
	// SuccessRate is a whole-number percentage.
	SuccessRate int
	Trend       domain.Trend
}

// SuccessRate summarizes max-testing attempts from the last 90 days. The
// trend compares the success rate of the older half against the newer half
// and needs at least six attempts; otherwise it is stable.
func SuccessRate(attempts []domain.MaxAttempt, now time.Time) SuccessRateReport {
	var recent []domain.MaxAttempt
	for _, a := range attempts {
		if within(a.Timestamp, now, successRateWindow) {
			recent = append(recent, a)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Timestamp.Before(recent[j].Timestamp) })

	r := SuccessRateReport{TotalAttempts: len(recent), Trend: domain.TrendStable}
	r.Successful = countSuccessful(recent)
	r.Failed = r.TotalAttempts - r.Successful
	if r.TotalAttempts > 0 {
		r.SuccessRate = int(math.Round(float64(r.Successful) / float64(r.TotalAttempts) * 100))
	}

	if len(recent) >= successTrendMinCount {
		mid := len(recent) / 2
		first := float64(countSuccessful(recent[:mid])) / float64(mid)
		second := float64(countSuccessful(recent[mid:])) / float64(len(recent)-mid)
		switch {
		case second > first+successTrendMargin:
			r.Trend = domain.TrendImproving
		case second < first-successTrendMargin:
			r.Trend = domain.TrendDeclining
		}
	}
	return r
}

func countSuccessful(attempts []domain.MaxAttempt) int {
	n := 0
	for _, a := range attempts {
		if a.Successful {
			n++
		}
	}
	return n
}
