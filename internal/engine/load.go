package engine

import (
	"fmt"
	"math"

	"github.com/alexanderramin/trainload/internal/domain"
)

// reductionBySeverity is the only source of rehab load reductions.
var reductionBySeverity = map[domain.Severity]int{
	domain.SeverityMild:     10,
	domain.SeverityModerate: 20,
	domain.SeveritySevere:   30,
}

// LoadReductionFor returns the rehab load reduction percentage for a severity.
func LoadReductionFor(severity domain.Severity) (int, error) {
	pct, ok := reductionBySeverity[severity]
	if !ok {
		return 0, invalid(CodeInvalidSeverity, "severity", "unknown severity %q", severity)
	}
	return pct, nil
}

func validReduction(pct int) bool {
	for _, v := range reductionBySeverity {
		if v == pct {
			return true
		}
	}
	return false
}

// ApplyReduction lowers weight by pct percent and rounds to the nearest 5.
// Only the severity-derived reductions (10, 20, 30) are accepted.
func ApplyReduction(weight float64, pct int) (float64, error) {
	if weight <= 0 {
		return 0, invalid(CodeInvalidWeight, "weight", "weight must be positive, got %v", weight)
	}
	if !validReduction(pct) {
		return 0, invalid(CodeInvalidReduction, "percentage", "reduction must be one of 10, 20, 30; got %d", pct)
	}
	return roundToIncrement(weight*(1-float64(pct)/100), 5), nil
}

type ResumePlan struct {
	StartingWeight float64
	ReductionPct   int
	StartingPct    int
	Recommendation string
}

// ResumeAfterHold computes the restart weight after a training hold.
// Longer holds restart more conservatively: up to 14 days starts at 60%,
// up to 30 days at 55%, anything longer at 50%.
func ResumeAfterHold(preInjuryMax float64, holdDays int) (ResumePlan, error) {
	if preInjuryMax <= 0 {
		return ResumePlan{}, invalid(CodeInvalidMax, "pre_injury_max", "pre-injury max must be positive, got %v", preInjuryMax)
	}
	if holdDays < 0 {
		return ResumePlan{}, invalid(CodeInvalidDuration, "hold_days", "hold duration cannot be negative, got %d", holdDays)
	}

	var reduction int
	switch {
	case holdDays <= 14:
		reduction = 40
	case holdDays <= 30:
		reduction = 45
	default:
		reduction = 50
	}
	startPct := 100 - reduction

	return ResumePlan{
		StartingWeight: math.Round(preInjuryMax*float64(startPct)/100/5) * 5,
		ReductionPct:   reduction,
		StartingPct:    startPct,
		Recommendation: fmt.Sprintf("Starting at %d%% of pre-injury strength. Gradually build back over 4-8 weeks.", startPct),
	}, nil
}
