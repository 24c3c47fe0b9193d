package domain

type OverrideKind string

const (
	OverrideProtocolChange      OverrideKind = "protocol_change"
	OverrideIntensityAdjustment OverrideKind = "adjust_intensity"
	OverrideExerciseSwap        OverrideKind = "exercise_swap"
	OverrideForceRehab          OverrideKind = "force_rehab"
)

// Override is a trainer override. The set of implementations is closed:
// ProtocolChange, IntensityAdjustment, ExerciseSwap and ForceRehab.
type Override interface {
	Kind() OverrideKind
	isOverride()
}

type ProtocolChange struct {
	ExerciseID  string
	NewProtocol Protocol
}

// IntensityAdjustment shifts prescribed intensity by Percent points, -30..+30.
type IntensityAdjustment struct {
	Percent int
}

type ExerciseSwap struct {
	ExerciseID    string
	AlternativeID string
}

type ForceRehab struct {
	Reason string
}

func (ProtocolChange) Kind() OverrideKind      { return OverrideProtocolChange }
func (IntensityAdjustment) Kind() OverrideKind { return OverrideIntensityAdjustment }
func (ExerciseSwap) Kind() OverrideKind        { return OverrideExerciseSwap }
func (ForceRehab) Kind() OverrideKind          { return OverrideForceRehab }

func (ProtocolChange) isOverride()      {}
func (IntensityAdjustment) isOverride() {}
func (ExerciseSwap) isOverride()        {}
func (ForceRehab) isOverride()          {}
