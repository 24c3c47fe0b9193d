package engine

import (
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
)

const (
	MinPainLevel = 0
	MaxPainLevel = 10

	// cautionExtraReductionPct is the additional load cut recommended when a
	// moderate pain reading is stable or falling.
	cautionExtraReductionPct = 10
)

// ValidatePainLevel rejects readings outside [0, 10].
func ValidatePainLevel(level int) error {
	if level < MinPainLevel || level > MaxPainLevel {
		return invalid(CodeInvalidPainLevel, "pain_level", "pain level must be between %d and %d, got %d", MinPainLevel, MaxPainLevel, level)
	}
	return nil
}

// NewPainCheckIn validates and builds a check-in. No record is produced for
// an out-of-range reading. The caller assigns the ID.
func NewPainCheckIn(exerciseID string, setNumber, level int, note string, at time.Time) (domain.PainCheckIn, error) {
	if err := ValidatePainLevel(level); err != nil {
		return domain.PainCheckIn{}, err
	}
	return domain.PainCheckIn{
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		PainLevel:  level,
		Note:       note,
		Timestamp:  at,
	}, nil
}

type GateDecision struct {
	State    domain.GateState
	Level    int
	Previous *int
	// ExtraReductionPct is non-zero only for ContinueWithCaution.
	ExtraReductionPct int
	Message           string
}

// ShouldContinue reports whether the next set may be performed.
func (d GateDecision) ShouldContinue() bool {
	return d.State != domain.GateStop
}

// EvaluatePain runs the pain gate for one completed set. previous is the
// immediately preceding reading for the same exercise, or nil.
//
// Moderate pain (4-5) stops the exercise only when it is rising; a flat or
// falling moderate reading continues under caution. Anything above 5 stops.
func EvaluatePain(level int, previous *int) (GateDecision, error) {
	if err := ValidatePainLevel(level); err != nil {
		return GateDecision{}, err
	}
	if previous != nil {
		if err := ValidatePainLevel(*previous); err != nil {
			return GateDecision{}, err
		}
	}

	d := GateDecision{Level: level, Previous: previous}
	switch {
	case level == 0:
		d.State = domain.GateContinue
		d.Message = "No pain reported. Continue with current weight."
	case level <= 3:
		d.State = domain.GateContinue
		d.Message = "Mild discomfort is normal. Monitor closely and stop if pain increases."
	case level <= 5:
		if previous != nil && level > *previous {
			d.State = domain.GateStop
			d.Message = "Pain is increasing. Stop exercise and consult medical professional."
		} else {
			d.State = domain.GateContinueWithCaution
			d.ExtraReductionPct = cautionExtraReductionPct
			d.Message = "Moderate pain detected. Reduce weight by additional 10% or consider stopping."
		}
	default:
		d.State = domain.GateStop
		d.Message = "Significant pain detected. STOP immediately and consult medical professional."
	}
	return d, nil
}

// EvaluateCheckIn validates a check-in and evaluates it against the latest
// earlier reading for the same exercise in history. history must be in
// chronological order.
func EvaluateCheckIn(history []domain.PainCheckIn, in domain.PainCheckIn) (GateDecision, error) {
	if err := ValidatePainLevel(in.PainLevel); err != nil {
		return GateDecision{}, err
	}
	var previous *int
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].ExerciseID == in.ExerciseID {
			p := history[i].PainLevel
			previous = &p
			break
		}
	}
	return EvaluatePain(in.PainLevel, previous)
}

// PainCadence says which sets of an exercise solicit a pain check-in.
type PainCadence string

const (
	CadenceFirstSet     PainCadence = "first_set"
	CadenceFirstTwoSets PainCadence = "first_two_sets"
	CadenceEverySet     PainCadence = "every_set"
)

// PainCadenceFor maps injury severity to check-in cadence.
func PainCadenceFor(severity domain.Severity) (PainCadence, error) {
	switch severity {
	case domain.SeveritySevere:
		return CadenceEverySet, nil
	case domain.SeverityModerate:
		return CadenceFirstTwoSets, nil
	case domain.SeverityMild:
		return CadenceFirstSet, nil
	default:
		return "", invalid(CodeInvalidSeverity, "severity", "unknown severity %q", severity)
	}
}

// ShouldPromptPainCheck reports whether setNumber (1-based) gets a check-in.
func ShouldPromptPainCheck(setNumber int, cadence PainCadence) bool {
	if setNumber < 1 {
		return false
	}
	switch cadence {
	case CadenceEverySet:
		return true
	case CadenceFirstTwoSets:
		return setNumber <= 2
	case CadenceFirstSet:
		return setNumber == 1
	default:
		return false
	}
}
