package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	day  = 24 * time.Hour
	week = 7 * day

	minReintegrationWeeks = 4
)

type HoldParams struct {
	Severity         domain.Severity
	MuscleGroups     []domain.MuscleGroup
	MovementPatterns []domain.MovementPattern
	Reason           string
	// StartDate defaults to now when zero.
	StartDate     time.Time
	DurationWeeks int
}

// NewHold builds an active hold ending DurationWeeks after its start.
// The caller assigns the ID.
func NewHold(p HoldParams, now time.Time) (domain.InjuryHold, error) {
	if p.DurationWeeks <= 0 {
		return domain.InjuryHold{}, invalid(CodeInvalidHoldWindow, "duration_weeks", "hold duration must be at least one week, got %d", p.DurationWeeks)
	}
	if p.Severity != "" && !domain.ValidSeverities[p.Severity] {
		return domain.InjuryHold{}, invalid(CodeInvalidSeverity, "severity", "unknown severity %q", p.Severity)
	}
	if len(p.MuscleGroups) == 0 && len(p.MovementPatterns) == 0 {
		return domain.InjuryHold{}, invalid(CodeInvalidHoldWindow, "muscle_groups", "a hold must pause at least one muscle group or movement pattern")
	}
	start := p.StartDate
	if start.IsZero() {
		start = now
	}
	return domain.InjuryHold{
		Severity:         p.Severity,
		MuscleGroups:     p.MuscleGroups,
		MovementPatterns: p.MovementPatterns,
		Reason:           p.Reason,
		StartDate:        start,
		EndDate:          start.Add(time.Duration(p.DurationWeeks) * week),
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ResizeHold sets the hold length to weeks from its original start date.
func ResizeHold(h domain.InjuryHold, weeks int, now time.Time) (domain.InjuryHold, error) {
	if weeks <= 0 {
		return h, invalid(CodeInvalidHoldWindow, "duration_weeks", "hold duration must be at least one week, got %d", weeks)
	}
	h.EndDate = h.StartDate.Add(time.Duration(weeks) * week)
	h.UpdatedAt = now
	return h, nil
}

// EndHoldEarly closes the hold at now. A hold that has not started yet is
// cancelled instead: it goes inactive and keeps its scheduled window.
func EndHoldEarly(h domain.InjuryHold, now time.Time) (domain.InjuryHold, error) {
	if now.After(h.StartDate) {
		h.EndDate = now
	}
	h.Active = false
	h.UpdatedAt = now
	return h, nil
}

// ActiveHolds keeps holds that are flagged active and whose window is still
// open at now.
func ActiveHolds(holds []domain.InjuryHold, now time.Time) []domain.InjuryHold {
	var out []domain.InjuryHold
	for _, h := range holds {
		if h.IsActiveAt(now) {
			out = append(out, h)
		}
	}
	return out
}

// DeactivateExpired returns a copy of holds with the active flag cleared on
// every hold whose window has closed.
func DeactivateExpired(holds []domain.InjuryHold, now time.Time) []domain.InjuryHold {
	out := make([]domain.InjuryHold, len(holds))
	for i, h := range holds {
		h.Active = h.IsActiveAt(now)
		out[i] = h
	}
	return out
}

type AffectedResult struct {
	Affected bool
	Holds    []domain.InjuryHold
	Reasons  []string
}

// IsAffected checks an exercise against the holds active at now. A hold
// affects the exercise when any held muscle group is engaged or the held
// patterns include the exercise's pattern.
func IsAffected(ex domain.ExerciseProfile, holds []domain.InjuryHold, now time.Time) AffectedResult {
	var res AffectedResult
	for _, h := range ActiveHolds(holds, now) {
		var groups []string
		for _, g := range h.MuscleGroups {
			if ex.Engages(g) {
				groups = append(groups, string(g))
			}
		}
		patternHeld := slices.Contains(h.MovementPatterns, ex.Pattern)
		if len(groups) == 0 && !patternHeld {
			continue
		}

		var parts []string
		if len(groups) > 0 {
			parts = append(parts, "uses "+strings.Join(groups, ", "))
		}
		if patternHeld {
			parts = append(parts, fmt.Sprintf("requires %s pattern", ex.Pattern))
		}
		res.Affected = true
		res.Holds = append(res.Holds, h)
		res.Reasons = append(res.Reasons, fmt.Sprintf("Hold: %s (%s)", h.Reason, strings.Join(parts, ", ")))
	}
	return res
}

type RemovedExercise struct {
	Exercise domain.ExerciseProfile
	Reason   string
}

type PlanAdjustment struct {
	Allowed []domain.ExerciseProfile
	Removed []RemovedExercise
}

// AdjustPlan partitions planned exercises into allowed and removed. Both
// partitions keep the planned order.
func AdjustPlan(planned []domain.ExerciseProfile, holds []domain.InjuryHold, now time.Time) PlanAdjustment {
	adj := PlanAdjustment{
		Allowed: []domain.ExerciseProfile{},
		Removed: []RemovedExercise{},
	}
	for _, ex := range planned {
		res := IsAffected(ex, holds, now)
		if res.Affected {
			adj.Removed = append(adj.Removed, RemovedExercise{Exercise: ex, Reason: strings.Join(res.Reasons, "; ")})
			continue
		}
		adj.Allowed = append(adj.Allowed, ex)
	}
	return adj
}

type HoldImpact struct {
	TotalAffected int
	AffectedIDs   []string
	RemainingIDs  []string
	CanStillTrain bool
}

// AnalyzeImpact previews a hold against the planned exercises without
// persisting it. It runs the same AdjustPlan used for live filtering,
// evaluated at the hold's start.
func AnalyzeImpact(p HoldParams, planned []domain.ExerciseProfile, now time.Time) (HoldImpact, error) {
	hold, err := NewHold(p, now)
	if err != nil {
		return HoldImpact{}, err
	}
	adj := AdjustPlan(planned, []domain.InjuryHold{hold}, hold.StartDate)

	impact := HoldImpact{
		TotalAffected: len(adj.Removed),
		AffectedIDs:   make([]string, 0, len(adj.Removed)),
		RemainingIDs:  make([]string, 0, len(adj.Allowed)),
		CanStillTrain: len(adj.Allowed) > 0,
	}
	for _, r := range adj.Removed {
		impact.AffectedIDs = append(impact.AffectedIDs, r.Exercise.ID)
	}
	for _, ex := range adj.Allowed {
		impact.RemainingIDs = append(impact.RemainingIDs, ex.ID)
	}
	return impact, nil
}

// HoldDurationDays rounds the hold window up to whole days.
func HoldDurationDays(h domain.InjuryHold) int {
	return int(math.Ceil(float64(h.EndDate.Sub(h.StartDate)) / float64(day)))
}

var reintegrationPhases = []string{
	"Week 1-2: Start at 50-60% pre-injury strength",
	"Week 3-4: Gradually increase to 70-80% if pain-free",
	"Week 5+: Progress to 90%+ and consider normal training",
	"Monitor pain closely throughout reintegration",
}

type ReintegrationPlan struct {
	HoldDurationDays   int
	StartingWeights    map[string]float64
	ReductionPct       int
	RehabDurationWeeks int
	Phases             []string
}

// CreateReintegrationPlan applies ResumeAfterHold to every affected exercise
// that has a pre-injury max. Exercises without one are skipped.
func CreateReintegrationPlan(h domain.InjuryHold, preInjuryMaxes map[string]float64, affected []string) (ReintegrationPlan, error) {
	if !h.EndDate.After(h.StartDate) {
		return ReintegrationPlan{}, invalid(CodeInvalidHoldWindow, "end_date", "hold end must be after its start")
	}
	days := HoldDurationDays(h)
	plan := ReintegrationPlan{
		HoldDurationDays:   days,
		StartingWeights:    make(map[string]float64, len(affected)),
		RehabDurationWeeks: max(minReintegrationWeeks, int(math.Ceil(float64(days)/7))),
		Phases:             slices.Clone(reintegrationPhases),
	}
	for _, id := range affected {
		m, ok := preInjuryMaxes[id]
		if !ok || m <= 0 {
			continue
		}
		resume, err := ResumeAfterHold(m, days)
		if err != nil {
			return ReintegrationPlan{}, err
		}
		plan.StartingWeights[id] = resume.StartingWeight
		plan.ReductionPct = resume.ReductionPct
	}
	return plan, nil
}

type HoldSummary struct {
	TotalActive     int
	MuscleGroups    []domain.MuscleGroup
	Patterns        []domain.MovementPattern
	EarliestEnd     *time.Time
	DaysUntilResume *int
}

// SummarizeHolds describes the holds active at now. Groups and patterns are
// de-duplicated in first-seen order.
func SummarizeHolds(holds []domain.InjuryHold, now time.Time) HoldSummary {
	active := ActiveHolds(holds, now)
	if len(active) == 0 {
		return HoldSummary{}
	}

	s := HoldSummary{TotalActive: len(active)}
	var earliest time.Time
	for i, h := range active {
		for _, g := range h.MuscleGroups {
			if !slices.Contains(s.MuscleGroups, g) {
				s.MuscleGroups = append(s.MuscleGroups, g)
			}
		}
		for _, p := range h.MovementPatterns {
			if !slices.Contains(s.Patterns, p) {
				s.Patterns = append(s.Patterns, p)
			}
		}
		if i == 0 || h.EndDate.Before(earliest) {
			earliest = h.EndDate
		}
	}
	days := int(math.Ceil(float64(earliest.Sub(now)) / float64(day)))
	s.EarliestEnd = &earliest
	s.DaysUntilResume = &days
	return s
}

type TimelineEntry struct {
	HoldID        string
	StartDate     time.Time
	EndDate       time.Time
	DurationWeeks float64
	MuscleGroups  []domain.MuscleGroup
	Active        bool
	Reason        string
}

// HoldTimeline lists every hold with its length in weeks (one decimal) and
// its derived activity at now.
func HoldTimeline(holds []domain.InjuryHold, now time.Time) []TimelineEntry {
	out := make([]TimelineEntry, 0, len(holds))
	for _, h := range holds {
		out = append(out, TimelineEntry{
			HoldID:        h.ID,
			StartDate:     h.StartDate,
			EndDate:       h.EndDate,
			DurationWeeks: roundTo(float64(h.EndDate.Sub(h.StartDate))/float64(week), 1),
			MuscleGroups:  h.MuscleGroups,
			Active:        h.IsActiveAt(now),
			Reason:        h.Reason,
		})
	}
	return out
}

type Alternatives struct {
	CanTrain    []domain.MuscleGroup
	Suggestions []string
}

// SuggestAlternatives points training at the muscle groups not on hold.
func SuggestAlternatives(held []domain.MuscleGroup) Alternatives {
	var alt Alternatives
	for _, g := range domain.AllMuscleGroups {
		if !slices.Contains(held, g) {
			alt.CanTrain = append(alt.CanTrain, g)
		}
	}

	if len(alt.CanTrain) == 0 {
		alt.Suggestions = append(alt.Suggestions, "All major muscle groups on hold. Focus on active recovery, mobility, and rest.")
		return alt
	}

	names := make([]string, len(alt.CanTrain))
	for i, g := range alt.CanTrain {
		names[i] = string(g)
	}
	alt.Suggestions = append(alt.Suggestions, "Focus on unaffected areas: "+strings.Join(names, ", "))

	chestHeld := slices.Contains(held, domain.MuscleChest)
	legsHeld := slices.Contains(held, domain.MuscleLegs)
	if chestHeld && !legsHeld {
		alt.Suggestions = append(alt.Suggestions, "Increase leg training frequency during upper body hold")
	}
	if legsHeld && !chestHeld {
		alt.Suggestions = append(alt.Suggestions, "Opportunity to emphasize upper body development")
	}
	return alt
}
