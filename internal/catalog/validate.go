package catalog

import (
	"fmt"

	"github.com/alexanderramin/trainload/internal/domain"
)

var validEquipment = map[string]bool{
	"barbell": true, "dumbbell": true, "machine": true, "cable": true, "bodyweight": true,
}

var validMuscleGroups = func() map[string]bool {
	m := make(map[string]bool, len(domain.AllMuscleGroups))
	for _, g := range domain.AllMuscleGroups {
		m[string(g)] = true
	}
	return m
}()

// ValidateSchema checks the catalog for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSchema(schema *CatalogSchema) []error {
	var errs []error

	ids := make(map[string]bool)
	for i, ex := range schema.Exercises {
		errs = append(errs, validateExercise(i, ex, ids)...)
	}

	variantIDs := make(map[string]bool)
	for i, v := range schema.Variants {
		errs = append(errs, validateVariant(i, v, ids, variantIDs)...)
	}

	pairs := make(map[string]bool)
	for i, l := range schema.Links {
		errs = append(errs, validateLink(i, l, ids, pairs)...)
	}

	return errs
}

func validateExercise(i int, ex ExerciseEntry, ids map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("exercises[%d]", i)

	if ex.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	} else if ids[ex.ID] {
		errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, ex.ID))
	} else {
		ids[ex.ID] = true
	}
	if !validMuscleGroups[ex.PrimaryMuscle] {
		errs = append(errs, fmt.Errorf("%s.primary_muscle: invalid value %q", prefix, ex.PrimaryMuscle))
	}
	if len(ex.MuscleGroups) == 0 {
		errs = append(errs, fmt.Errorf("%s.muscle_groups must not be empty", prefix))
	}
	primaryListed := false
	for _, g := range ex.MuscleGroups {
		if !validMuscleGroups[g] {
			errs = append(errs, fmt.Errorf("%s.muscle_groups: invalid value %q", prefix, g))
		}
		if g == ex.PrimaryMuscle {
			primaryListed = true
		}
	}
	if len(ex.MuscleGroups) > 0 && !primaryListed {
		errs = append(errs, fmt.Errorf("%s.muscle_groups must include primary_muscle %q", prefix, ex.PrimaryMuscle))
	}
	if !domain.ValidMovementPatterns[domain.MovementPattern(ex.Pattern)] {
		errs = append(errs, fmt.Errorf("%s.pattern: invalid value %q", prefix, ex.Pattern))
	}
	if !validEquipment[ex.Equipment] {
		errs = append(errs, fmt.Errorf("%s.equipment: invalid value %q", prefix, ex.Equipment))
	}
	if ex.Increment != nil && *ex.Increment < 0 {
		errs = append(errs, fmt.Errorf("%s.increment must be >= 0", prefix))
	}

	return errs
}

func validateVariant(i int, v VariantEntry, exerciseIDs, variantIDs map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("variants[%d]", i)

	if v.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	} else if variantIDs[v.ID] || exerciseIDs[v.ID] {
		errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, v.ID))
	} else {
		variantIDs[v.ID] = true
	}
	if !exerciseIDs[v.Base] {
		errs = append(errs, fmt.Errorf("%s.base: unknown exercise %q", prefix, v.Base))
	}
	if !validEquipment[v.Equipment] {
		errs = append(errs, fmt.Errorf("%s.equipment: invalid value %q", prefix, v.Equipment))
	}
	if v.Ratio <= 0 || v.Ratio > 2 {
		errs = append(errs, fmt.Errorf("%s.ratio must be in (0, 2], got %v", prefix, v.Ratio))
	}

	return errs
}

func validateLink(i int, l LinkEntry, exerciseIDs, pairs map[string]bool) []error {
	var errs []error
	prefix := fmt.Sprintf("links[%d]", i)

	if !exerciseIDs[l.Source] {
		errs = append(errs, fmt.Errorf("%s.source: unknown exercise %q", prefix, l.Source))
	}
	if !exerciseIDs[l.Target] {
		errs = append(errs, fmt.Errorf("%s.target: unknown exercise %q", prefix, l.Target))
	}
	if l.Source == l.Target {
		errs = append(errs, fmt.Errorf("%s: source and target are both %q", prefix, l.Source))
	}
	key := linkKey(l.Source, l.Target)
	if pairs[key] {
		errs = append(errs, fmt.Errorf("%s: duplicate link %s -> %s", prefix, l.Source, l.Target))
	}
	pairs[key] = true
	if l.Ratio <= 0 || l.Ratio > 2 {
		errs = append(errs, fmt.Errorf("%s.ratio must be in (0, 2], got %v", prefix, l.Ratio))
	}

	return errs
}
