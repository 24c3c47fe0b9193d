package engine

import (
	"fmt"
	"maps"

	"github.com/alexanderramin/trainload/internal/domain"
)

const maxIntensityAdjustment = 30

// TrainingPlan is the per-client state a trainer override acts on.
type TrainingPlan struct {
	Protocols    map[string]domain.Protocol
	IntensityPct int
	Swaps        map[string]string
	RehabForced  bool
	RehabReason  string
}

// ApplyOverride returns a copy of plan with the override applied. The
// input plan is never mutated.
func ApplyOverride(plan TrainingPlan, o domain.Override) (TrainingPlan, error) {
	next := plan
	next.Protocols = maps.Clone(plan.Protocols)
	next.Swaps = maps.Clone(plan.Swaps)

	switch o := o.(type) {
	case domain.ProtocolChange:
		if o.ExerciseID == "" {
			return plan, invalid(CodeInvalidOverride, "exercise_id", "protocol change needs an exercise")
		}
		if !domain.ValidProtocols[o.NewProtocol] {
			return plan, invalid(CodeInvalidOverride, "protocol", "unknown protocol %q", o.NewProtocol)
		}
		if next.Protocols == nil {
			next.Protocols = make(map[string]domain.Protocol)
		}
		next.Protocols[o.ExerciseID] = o.NewProtocol
	case domain.IntensityAdjustment:
		if o.Percent < -maxIntensityAdjustment || o.Percent > maxIntensityAdjustment {
			return plan, invalid(CodeInvalidIntensityAdjustment, "percent",
				"intensity adjustment must be within ±%d%%, got %d", maxIntensityAdjustment, o.Percent)
		}
		next.IntensityPct = o.Percent
	case domain.ExerciseSwap:
		if o.ExerciseID == "" || o.AlternativeID == "" {
			return plan, invalid(CodeInvalidOverride, "exercise_id", "exercise swap needs both exercises")
		}
		if o.ExerciseID == o.AlternativeID {
			return plan, invalid(CodeInvalidOverride, "alternative_id", "cannot swap %q for itself", o.ExerciseID)
		}
		if next.Swaps == nil {
			next.Swaps = make(map[string]string)
		}
		next.Swaps[o.ExerciseID] = o.AlternativeID
	case domain.ForceRehab:
		next.RehabForced = true
		next.RehabReason = o.Reason
	default:
		return plan, invalid(CodeInvalidOverride, "kind", "unsupported override %s", describeOverride(o))
	}
	return next, nil
}

func describeOverride(o domain.Override) string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%q", o.Kind())
}

// AdjustedIntensity applies the plan's intensity adjustment to a weight,
// rounded to the nearest 5.
func (p TrainingPlan) AdjustedIntensity(weight float64) float64 {
	return roundToIncrement(weight*(1+float64(p.IntensityPct)/100), domain.DefaultIncrement)
}
