package service

import (
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
)

// profiles resolves planned exercise IDs against the catalog, keeping order.
func profiles(cat engine.Catalog, ids []string) ([]domain.ExerciseProfile, error) {
	out := make([]domain.ExerciseProfile, 0, len(ids))
	for _, id := range ids {
		ex, ok := cat.Exercise(id)
		if !ok {
			return nil, &engine.NotFoundError{Kind: "exercise", ID: id}
		}
		out = append(out, ex)
	}
	return out, nil
}

func derefHolds(holds []*domain.InjuryHold) []domain.InjuryHold {
	out := make([]domain.InjuryHold, len(holds))
	for i, h := range holds {
		out[i] = *h
	}
	return out
}

func exerciseIDs(cat engine.Catalog) []string {
	all := cat.Exercises()
	ids := make([]string, len(all))
	for i, ex := range all {
		ids[i] = ex.ID
	}
	return ids
}
