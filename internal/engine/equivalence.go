package engine

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/alexanderramin/trainload/internal/domain"
)

// equipmentRatios converts load on one equipment category to another.
// The table is hand-authored and asymmetric: dumbbell totals count both
// implements, so barbell→dumbbell is 0.60 while dumbbell→barbell is 1.65.
var equipmentRatios = map[domain.Equipment]map[domain.Equipment]float64{
	domain.EquipmentBarbell: {
		domain.EquipmentMachine:  0.85,
		domain.EquipmentDumbbell: 0.60,
		domain.EquipmentCable:    0.75,
	},
	domain.EquipmentMachine: {
		domain.EquipmentBarbell:  1.15,
		domain.EquipmentDumbbell: 0.70,
		domain.EquipmentCable:    0.90,
	},
	domain.EquipmentDumbbell: {
		domain.EquipmentBarbell: 1.65,
		domain.EquipmentMachine: 1.40,
		domain.EquipmentCable:   1.25,
	},
	domain.EquipmentCable: {
		domain.EquipmentBarbell:  1.30,
		domain.EquipmentMachine:  1.10,
		domain.EquipmentDumbbell: 0.80,
	},
}

// EstimateRatio returns the equipment-pair ratio, or 1.0 for pairs the table
// does not cover (same equipment, bodyweight).
func EstimateRatio(from, to domain.Equipment) float64 {
	if r, ok := equipmentRatios[from][to]; ok {
		return r
	}
	return 1.0
}

// roundToIncrement rounds w to the nearest multiple of inc.
func roundToIncrement(w, inc float64) float64 {
	if inc <= 0 {
		inc = domain.DefaultIncrement
	}
	return math.Round(w/inc) * inc
}

type ResolveInput struct {
	OriginalID     string
	OriginalWeight float64
	TargetID       string
	// VariantID selects an authored variant. TargetID is ignored when set.
	VariantID string
}

type AdjustedWeight struct {
	OriginalID     string
	TargetID       string
	VariantID      string
	OriginalWeight float64
	Weight         float64
	Ratio          float64
	Increment      float64
	// Static is true when the ratio came from an authored link rather than
	// the equipment table.
	Static bool
}

// exerciseRatio prefers an authored link over the equipment table. The
// second result reports whether the ratio is static.
func exerciseRatio(cat Catalog, from, to domain.ExerciseProfile) (float64, bool) {
	if from.ID == to.ID {
		return 1.0, true
	}
	if l, ok := cat.Link(from.ID, to.ID); ok {
		return l.Ratio, true
	}
	return EstimateRatio(from.Equipment, to.Equipment), false
}

// Resolve converts a weight on one exercise into the equivalent weight on
// another exercise or variant. An authored link beats the equipment table.
func Resolve(cat Catalog, in ResolveInput) (AdjustedWeight, error) {
	if in.OriginalWeight <= 0 {
		return AdjustedWeight{}, invalid(CodeInvalidWeight, "original_weight", "weight must be positive, got %v", in.OriginalWeight)
	}
	original, ok := cat.Exercise(in.OriginalID)
	if !ok {
		return AdjustedWeight{}, unknownExercise(in.OriginalID)
	}

	result := AdjustedWeight{
		OriginalID:     in.OriginalID,
		OriginalWeight: in.OriginalWeight,
	}

	if in.VariantID != "" {
		v, ok := cat.Variant(in.VariantID)
		if !ok {
			return AdjustedWeight{}, &NotFoundError{Kind: "variant", ID: in.VariantID}
		}
		result.TargetID = v.BaseExerciseID
		result.VariantID = v.ID
		result.Increment = v.EffectiveIncrement()
		if v.BaseExerciseID == original.ID {
			result.Ratio = v.Ratio
			result.Static = true
		} else {
			result.Ratio = EstimateRatio(original.Equipment, v.Equipment)
		}
	} else {
		target, ok := cat.Exercise(in.TargetID)
		if !ok {
			return AdjustedWeight{}, unknownExercise(in.TargetID)
		}
		result.TargetID = target.ID
		result.Increment = target.EffectiveIncrement()
		result.Ratio, result.Static = exerciseRatio(cat, original, target)
	}

	result.Weight = roundToIncrement(in.OriginalWeight*result.Ratio, result.Increment)
	return result, nil
}

// ConvertMax carries a tested max over to another exercise or variant.
func ConvertMax(cat Catalog, max domain.MaxRecord, targetID, variantID string) (float64, error) {
	if max.Weight <= 0 {
		return 0, invalid(CodeInvalidMax, "max", "max must be positive, got %v", max.Weight)
	}
	adj, err := Resolve(cat, ResolveInput{
		OriginalID:     max.ExerciseID,
		OriginalWeight: max.Weight,
		TargetID:       targetID,
		VariantID:      variantID,
	})
	if err != nil {
		return 0, err
	}
	return adj.Weight, nil
}

// SubstituteOption is one ranked alternative for an exercise.
type SubstituteOption struct {
	ExerciseID  string
	VariantID   string
	Name        string
	Equipment   domain.Equipment
	IsVariant   bool
	Ratio       float64
	AdjustedMax float64
	Reason      string
}

// RankSubstitutes lists authored variants first, then same-primary-muscle
// exercises on different equipment, ordered by |1 - ratio| so the smallest
// load change comes first. Ties keep that discovery order. An exercise with
// no alternatives yields an empty slice, not an error.
func RankSubstitutes(cat Catalog, exerciseID string, currentMax float64) ([]SubstituteOption, error) {
	if currentMax <= 0 {
		return nil, invalid(CodeInvalidMax, "current_max", "max must be positive, got %v", currentMax)
	}
	ex, ok := cat.Exercise(exerciseID)
	if !ok {
		return nil, unknownExercise(exerciseID)
	}

	options := []SubstituteOption{}
	for _, v := range cat.VariantsOf(exerciseID) {
		options = append(options, SubstituteOption{
			ExerciseID:  v.BaseExerciseID,
			VariantID:   v.ID,
			Name:        v.Name,
			Equipment:   v.Equipment,
			IsVariant:   true,
			Ratio:       v.Ratio,
			AdjustedMax: roundToIncrement(currentMax*v.Ratio, v.EffectiveIncrement()),
			Reason:      fmt.Sprintf("Pre-defined alternative with %d%% equivalence", int(math.Round(v.Ratio*100))),
		})
	}

	for _, other := range cat.Exercises() {
		if other.ID == ex.ID || other.PrimaryMuscle != ex.PrimaryMuscle || other.Equipment == ex.Equipment {
			continue
		}
		ratio, static := exerciseRatio(cat, ex, other)
		reason := fmt.Sprintf("Similar %s exercise with %d%% estimated equivalence", ex.PrimaryMuscle, int(math.Round(ratio*100)))
		if static {
			reason = fmt.Sprintf("Linked %s exercise with %d%% equivalence", ex.PrimaryMuscle, int(math.Round(ratio*100)))
		}
		options = append(options, SubstituteOption{
			ExerciseID:  other.ID,
			Name:        other.Name,
			Equipment:   other.Equipment,
			Ratio:       ratio,
			AdjustedMax: roundToIncrement(currentMax*ratio, other.EffectiveIncrement()),
			Reason:      reason,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return math.Abs(1-options[i].Ratio) < math.Abs(1-options[j].Ratio)
	})
	return options, nil
}

// SuggestEmergencySubstitute returns the best-ranked substitute whose
// equipment is available, or nil when none is.
func SuggestEmergencySubstitute(cat Catalog, exerciseID string, unavailable []domain.Equipment, currentMax float64) (*SubstituteOption, error) {
	options, err := RankSubstitutes(cat, exerciseID, currentMax)
	if err != nil {
		return nil, err
	}
	for _, o := range options {
		if !slices.Contains(unavailable, o.Equipment) {
			return &o, nil
		}
	}
	return nil, nil
}

// SubstitutionCheck is advisory: warnings never block a substitution on
// their own.
type SubstitutionCheck struct {
	Valid         bool
	Warnings      []string
	SharedMuscles []domain.MuscleGroup
}

// ValidateSubstitution compares muscle coverage of two exercises.
func ValidateSubstitution(cat Catalog, originalID, substituteID string) (SubstitutionCheck, error) {
	original, ok := cat.Exercise(originalID)
	if !ok {
		return SubstitutionCheck{}, unknownExercise(originalID)
	}
	sub, ok := cat.Exercise(substituteID)
	if !ok {
		return SubstitutionCheck{}, unknownExercise(substituteID)
	}

	var check SubstitutionCheck
	if original.PrimaryMuscle != sub.PrimaryMuscle {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("Different primary muscles: %s vs %s", original.PrimaryMuscle, sub.PrimaryMuscle))
	}
	for _, g := range original.MuscleGroups {
		if sub.Engages(g) {
			check.SharedMuscles = append(check.SharedMuscles, g)
		}
	}
	if len(check.SharedMuscles) == 0 {
		check.Warnings = append(check.Warnings, "No overlapping muscle groups - may not be a good substitute")
	}
	check.Valid = len(check.Warnings) == 0 || len(check.SharedMuscles) > 0
	return check, nil
}

// EffectiveExerciseID follows a permanent substitution if one exists.
func EffectiveExerciseID(exerciseID string, permanent map[string]string) string {
	if sub, ok := permanent[exerciseID]; ok && sub != "" {
		return sub
	}
	return exerciseID
}

// MostCommonSubstitute returns the variant or exercise most often used in
// place of exerciseID. Ties go to the most recently used.
func MostCommonSubstitute(exerciseID string, history []domain.Substitution) (string, bool) {
	relevant := make([]domain.Substitution, 0, len(history))
	for _, s := range history {
		if s.OriginalExerciseID == exerciseID {
			relevant = append(relevant, s)
		}
	}
	if len(relevant) == 0 {
		return "", false
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].SubstitutedAt.After(relevant[j].SubstitutedAt)
	})

	counts := make(map[string]int)
	var order []string
	for _, s := range relevant {
		key := s.VariantID
		if key == "" {
			key = s.SubstituteExerciseID
		}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	best, bestCount := "", 0
	for _, key := range order {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}
	return best, true
}
