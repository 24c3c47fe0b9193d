package domain

import "time"

// DefaultIncrement is the plate or stack step used when an exercise does not
// declare its own.
const DefaultIncrement = 5.0

// ExerciseProfile is static reference data for one exercise in the catalog.
type ExerciseProfile struct {
	ID            string
	Name          string
	PrimaryMuscle MuscleGroup
	MuscleGroups  []MuscleGroup
	Pattern       MovementPattern
	Equipment     Equipment
	Increment     float64
}

// Engages reports whether the exercise works the given muscle group.
func (e ExerciseProfile) Engages(g MuscleGroup) bool {
	for _, m := range e.MuscleGroups {
		if m == g {
			return true
		}
	}
	return false
}

// EffectiveIncrement returns the exercise increment, falling back to
// DefaultIncrement when none is declared.
func (e ExerciseProfile) EffectiveIncrement() float64 {
	if e.Increment > 0 {
		return e.Increment
	}
	return DefaultIncrement
}

// Variant is an authored alternative to a base exercise with a static
// equivalence ratio from the base exercise to the variant.
type Variant struct {
	ID             string
	Name           string
	BaseExerciseID string
	Equipment      Equipment
	Ratio          float64
	Increment      float64
}

// EffectiveIncrement mirrors ExerciseProfile.EffectiveIncrement.
func (v Variant) EffectiveIncrement() float64 {
	if v.Increment > 0 {
		return v.Increment
	}
	return DefaultIncrement
}

// EquivalenceLink is a directed conversion ratio between two exercises or
// an exercise and one of its variants. A→B need not equal 1/(B→A).
type EquivalenceLink struct {
	SourceID  string
	TargetID  string
	VariantID string
	Ratio     float64
}

// Substitution records a swap made during a workout.
type Substitution struct {
	ID                   string
	OriginalExerciseID   string
	SubstituteExerciseID string
	VariantID            string
	Reason               string
	Permanent            bool
	SubstitutedAt        time.Time
}
