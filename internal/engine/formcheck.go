package engine

import (
	"fmt"
	"math"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	formHistorySize         = 10
	formCriticalFailures    = 3
	formReviewFailures      = 2
	formWarningJumpPct      = 15.0
	formReviewJumpPct       = 10.0
	formTrendMarginFraction = 0.05
)

// FormSet is one tracked set. Success means the target reps were reached.
type FormSet struct {
	Weight        float64
	TargetReps    int
	CompletedReps int
	Success       bool
}

type ExerciseForm struct {
	Sets                []FormSet
	ConsecutiveFailures int
	LastSuccessWeight   float64
	LastAttemptWeight   float64
}

// FormHistory keeps the last ten sets per exercise. It is a value: Record
// returns a new history and leaves the receiver unchanged, so each caller
// owns its own.
type FormHistory struct {
	exercises map[string]ExerciseForm
}

// Exercise returns the tracked state for one exercise.
func (h FormHistory) Exercise(id string) ExerciseForm {
	return h.exercises[id]
}

func (h FormHistory) Record(exerciseID string, weight float64, targetReps, completedReps int) FormHistory {
	next := FormHistory{exercises: make(map[string]ExerciseForm, len(h.exercises)+1)}
	for k, v := range h.exercises {
		next.exercises[k] = v
	}

	prev := h.exercises[exerciseID]
	ef := ExerciseForm{
		ConsecutiveFailures: prev.ConsecutiveFailures,
		LastSuccessWeight:   prev.LastSuccessWeight,
		LastAttemptWeight:   weight,
	}
	s := FormSet{Weight: weight, TargetReps: targetReps, CompletedReps: completedReps, Success: completedReps >= targetReps}

	start := 0
	if len(prev.Sets) >= formHistorySize {
		start = len(prev.Sets) - formHistorySize + 1
	}
	ef.Sets = append(append(make([]FormSet, 0, formHistorySize), prev.Sets[start:]...), s)

	if s.Success {
		ef.ConsecutiveFailures = 0
		ef.LastSuccessWeight = weight
	} else {
		ef.ConsecutiveFailures++
	}
	next.exercises[exerciseID] = ef
	return next
}

// Reset drops the tracked state for one exercise.
func (h FormHistory) Reset(exerciseID string) FormHistory {
	next := FormHistory{exercises: make(map[string]ExerciseForm, len(h.exercises))}
	for k, v := range h.exercises {
		if k != exerciseID {
			next.exercises[k] = v
		}
	}
	return next
}

type FormPrompt struct {
	Alert   domain.FormAlert
	Reason  string
	Details string
}

// CheckFormPrompt decides whether to prompt a form check before the next
// set. Consecutive failures outrank weight jumps. previousWeight may be 0
// when there is no earlier set in this session.
func CheckFormPrompt(h FormHistory, exerciseID string, nextWeight, previousWeight float64) FormPrompt {
	ef := h.Exercise(exerciseID)

	if ef.ConsecutiveFailures >= formCriticalFailures {
		return FormPrompt{
			Alert:   domain.FormAlertCritical,
			Reason:  "consecutive_failures",
			Details: fmt.Sprintf("You've failed %d sets in a row. Let's review your form to ensure proper technique.", ef.ConsecutiveFailures),
		}
	}

	if ef.LastSuccessWeight > 0 {
		jump := (nextWeight - ef.LastSuccessWeight) / ef.LastSuccessWeight * 100
		if jump > formWarningJumpPct {
			return FormPrompt{
				Alert:   domain.FormAlertWarning,
				Reason:  "large_weight_increase",
				Details: fmt.Sprintf("You're attempting %.0f%% more weight than your last successful set. Focus on maintaining proper form throughout the movement.", jump),
			}
		}
	}

	if previousWeight > 0 && nextWeight > previousWeight {
		jump := (nextWeight - previousWeight) / previousWeight * 100
		if jump > formWarningJumpPct {
			return FormPrompt{
				Alert:   domain.FormAlertWarning,
				Reason:  "large_weight_increase",
				Details: fmt.Sprintf("You're increasing weight by %.0f%%. Remember to prioritize form over weight.", jump),
			}
		}
	}

	return FormPrompt{Alert: domain.FormAlertNone, Reason: "none"}
}

type PerformanceStats struct {
	TotalSets           int
	SuccessRate         float64
	ConsecutiveFailures int
	AverageWeight       float64
	Trend               domain.Trend
}

// FormPerformance compares average weight between the older and newer half
// of the tracked sets; a 5% move either way sets the trend.
func FormPerformance(h FormHistory, exerciseID string) PerformanceStats {
	ef := h.Exercise(exerciseID)
	stats := PerformanceStats{Trend: domain.TrendStable, ConsecutiveFailures: ef.ConsecutiveFailures}
	if len(ef.Sets) == 0 {
		return stats
	}

	stats.TotalSets = len(ef.Sets)
	var ok int
	for _, s := range ef.Sets {
		if s.Success {
			ok++
		}
	}
	stats.SuccessRate = float64(ok) / float64(len(ef.Sets)) * 100
	stats.AverageWeight = averageWeight(ef.Sets)

	mid := len(ef.Sets) / 2
	first, second := averageWeight(ef.Sets[:mid]), averageWeight(ef.Sets[mid:])
	switch {
	case second > first*(1+formTrendMarginFraction):
		stats.Trend = domain.TrendImproving
	case second < first*(1-formTrendMarginFraction):
		stats.Trend = domain.TrendDeclining
	}
	return stats
}

func averageWeight(sets []FormSet) float64 {
	if len(sets) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sets {
		sum += s.Weight
	}
	return sum / float64(len(sets))
}

// ShouldReviewForm is the softer pre-set nudge: two misses in a row or a
// planned weight more than 10% over the last success.
func ShouldReviewForm(h FormHistory, exerciseID string, plannedWeight float64) (bool, string) {
	ef := h.Exercise(exerciseID)
	if ef.ConsecutiveFailures >= formReviewFailures {
		return true, "You've missed the last 2 sets. A quick form review might help!"
	}
	if ef.LastSuccessWeight > 0 {
		jump := (plannedWeight - ef.LastSuccessWeight) / ef.LastSuccessWeight * 100
		if jump > formReviewJumpPct {
			return true, fmt.Sprintf("This is %d%% more weight than your last success. Check your form!", int(math.Round(jump)))
		}
	}
	return false, ""
}

// FormTips suggests cues from recent performance.
func FormTips(h FormHistory, exerciseID string) []string {
	ef := h.Exercise(exerciseID)
	var tips []string
	if ef.ConsecutiveFailures >= formReviewFailures {
		tips = append(tips,
			"Focus on full range of motion",
			"Control the negative (lowering) phase",
			"Don't rush through reps",
		)
	}
	if FormPerformance(h, exerciseID).Trend == domain.TrendDeclining {
		tips = append(tips,
			"Consider reducing weight to perfect your form",
			"Quality over quantity - each rep should be clean",
		)
	}
	if n := len(ef.Sets); n > 0 {
		last := ef.Sets[n-1]
		if !last.Success && last.TargetReps-last.CompletedReps >= 3 {
			tips = append(tips, "Weight might be too heavy - focus on achievable loads")
		}
	}
	return tips
}
