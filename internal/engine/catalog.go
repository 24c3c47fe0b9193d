package engine

import "github.com/alexanderramin/trainload/internal/domain"

// Catalog is the exercise reference the engine reads from.
type Catalog interface {
	Exercise(id string) (domain.ExerciseProfile, bool)
	Variant(id string) (domain.Variant, bool)
	VariantsOf(exerciseID string) []domain.Variant
	Exercises() []domain.ExerciseProfile
	// Link returns an authored source->target ratio between two exercises.
	Link(sourceID, targetID string) (domain.EquivalenceLink, bool)
}
