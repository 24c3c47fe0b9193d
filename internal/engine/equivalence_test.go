package engine

import (
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/catalog"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRatio_Asymmetric(t *testing.T) {
	assert.Equal(t, 0.60, EstimateRatio(domain.EquipmentBarbell, domain.EquipmentDumbbell))
	assert.Equal(t, 1.65, EstimateRatio(domain.EquipmentDumbbell, domain.EquipmentBarbell))
	assert.Equal(t, 1.0, EstimateRatio(domain.EquipmentMachine, domain.EquipmentMachine))
	assert.Equal(t, 1.0, EstimateRatio(domain.EquipmentBodyweight, domain.EquipmentBarbell))
}

func TestResolve_BarbellToMachine(t *testing.T) {
	adj, err := Resolve(catalog.MustDefault(), ResolveInput{
		OriginalID:     "bench-press",
		OriginalWeight: 200,
		TargetID:       "machine-press",
	})
	require.NoError(t, err)
	assert.Equal(t, 170.0, adj.Weight)
	assert.Equal(t, 0.85, adj.Ratio)
	assert.False(t, adj.Static)
}

func TestResolve_RoundsToTargetIncrement(t *testing.T) {
	adj, err := Resolve(catalog.MustDefault(), ResolveInput{
		OriginalID:     "bench-press",
		OriginalWeight: 185,
		TargetID:       "dumbbell-incline-press",
	})
	require.NoError(t, err)
	// 185 * 0.60 = 111 -> nearest 2.5
	assert.Equal(t, 110.0, adj.Weight)
	assert.Equal(t, 2.5, adj.Increment)
}

func TestResolve_VariantUsesStaticRatio(t *testing.T) {
	adj, err := Resolve(catalog.MustDefault(), ResolveInput{
		OriginalID:     "bench-press",
		OriginalWeight: 200,
		VariantID:      "dumbbell-incline-variant",
	})
	require.NoError(t, err)
	assert.True(t, adj.Static)
	assert.Equal(t, 120.0, adj.Weight)
	assert.Equal(t, "dumbbell-incline-variant", adj.VariantID)
}

func TestResolve_AuthoredLinkOverridesTable(t *testing.T) {
	cat := catalog.MustDefault()
	// cable -> machine is 1.10 in the table; the authored link says 1.0.
	assert.Equal(t, 1.10, EstimateRatio(domain.EquipmentCable, domain.EquipmentMachine))

	adj, err := Resolve(cat, ResolveInput{
		OriginalID:     "lat-pulldown",
		OriginalWeight: 150,
		TargetID:       "machine-low-row",
	})
	require.NoError(t, err)
	assert.True(t, adj.Static)
	assert.Equal(t, 1.0, adj.Ratio)
	assert.Equal(t, 150.0, adj.Weight)

	// Links are directed: the reverse falls back to the table.
	back, err := Resolve(cat, ResolveInput{
		OriginalID:     "machine-low-row",
		OriginalWeight: 150,
		TargetID:       "lat-pulldown",
	})
	require.NoError(t, err)
	assert.False(t, back.Static)
	assert.Equal(t, 0.90, back.Ratio)
}

func TestRankSubstitutes_UsesAuthoredLinks(t *testing.T) {
	opts, err := RankSubstitutes(catalog.MustDefault(), "lat-pulldown", 150)
	require.NoError(t, err)
	require.NotEmpty(t, opts)

	assert.Equal(t, "machine-low-row", opts[0].ExerciseID)
	assert.Equal(t, 1.0, opts[0].Ratio)
	assert.Equal(t, "Linked back exercise with 100% equivalence", opts[0].Reason)
}

func TestResolve_SameExerciseIsIdentity(t *testing.T) {
	adj, err := Resolve(catalog.MustDefault(), ResolveInput{
		OriginalID:     "leg-press",
		OriginalWeight: 300,
		TargetID:       "leg-press",
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, adj.Weight)
	assert.Equal(t, 1.0, adj.Ratio)
}

func TestResolve_UnknownIDs(t *testing.T) {
	cat := catalog.MustDefault()

	_, err := Resolve(cat, ResolveInput{OriginalID: "nope", OriginalWeight: 100, TargetID: "bench-press"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(cat, ResolveInput{OriginalID: "bench-press", OriginalWeight: 100, TargetID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(cat, ResolveInput{OriginalID: "bench-press", OriginalWeight: 100, VariantID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_RejectsNonPositiveWeight(t *testing.T) {
	_, err := Resolve(catalog.MustDefault(), ResolveInput{OriginalID: "bench-press", OriginalWeight: 0, TargetID: "machine-press"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConvertMax(t *testing.T) {
	w, err := ConvertMax(catalog.MustDefault(), domain.MaxRecord{ExerciseID: "bench-press", Weight: 200}, "", "machine-press-variant")
	require.NoError(t, err)
	assert.Equal(t, 170.0, w)
}

func TestRankSubstitutes_VariantsAndCloserRatiosFirst(t *testing.T) {
	opts, err := RankSubstitutes(catalog.MustDefault(), "bench-press", 200)
	require.NoError(t, err)
	require.NotEmpty(t, opts)

	assert.Equal(t, "machine-press-variant", opts[0].VariantID)
	assert.Equal(t, 170.0, opts[0].AdjustedMax)
	assert.Equal(t, "Pre-defined alternative with 85% equivalence", opts[0].Reason)

	for i := 1; i < len(opts); i++ {
		prev := 1 - opts[i-1].Ratio
		cur := 1 - opts[i].Ratio
		if prev < 0 {
			prev = -prev
		}
		if cur < 0 {
			cur = -cur
		}
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestRankSubstitutes_NoAlternatives(t *testing.T) {
	cat := catalog.New([]domain.ExerciseProfile{{
		ID: "solo", Name: "Solo", PrimaryMuscle: domain.MuscleCore,
		MuscleGroups: []domain.MuscleGroup{domain.MuscleCore}, Pattern: domain.PatternHinge,
		Equipment: domain.EquipmentBodyweight,
	}}, nil)

	opts, err := RankSubstitutes(cat, "solo", 100)
	require.NoError(t, err)
	assert.NotNil(t, opts)
	assert.Empty(t, opts)
}

func TestSuggestEmergencySubstitute_SkipsUnavailableEquipment(t *testing.T) {
	opt, err := SuggestEmergencySubstitute(catalog.MustDefault(), "bench-press",
		[]domain.Equipment{domain.EquipmentMachine}, 200)
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, domain.EquipmentDumbbell, opt.Equipment)
}

func TestValidateSubstitution(t *testing.T) {
	cat := catalog.MustDefault()

	check, err := ValidateSubstitution(cat, "bench-press", "machine-press")
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Warnings)

	check, err = ValidateSubstitution(cat, "bench-press", "leg-press")
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Len(t, check.Warnings, 2)
}

func TestMostCommonSubstitute(t *testing.T) {
	history := []domain.Substitution{
		{OriginalExerciseID: "bench-press", SubstituteExerciseID: "machine-press", SubstitutedAt: testNow.Add(-3 * time.Hour)},
		{OriginalExerciseID: "bench-press", VariantID: "dumbbell-incline-variant", SubstitutedAt: testNow.Add(-2 * time.Hour)},
		{OriginalExerciseID: "bench-press", SubstituteExerciseID: "machine-press", SubstitutedAt: testNow.Add(-time.Hour)},
		{OriginalExerciseID: "leg-press", SubstituteExerciseID: "leg-extension", SubstitutedAt: testNow},
	}
	id, ok := MostCommonSubstitute("bench-press", history)
	require.True(t, ok)
	assert.Equal(t, "machine-press", id)

	_, ok = MostCommonSubstitute("lat-pulldown", history)
	assert.False(t, ok)
}

func TestEffectiveExerciseID(t *testing.T) {
	perm := map[string]string{"bench-press": "machine-press"}
	assert.Equal(t, "machine-press", EffectiveExerciseID("bench-press", perm))
	assert.Equal(t, "leg-press", EffectiveExerciseID("leg-press", perm))
}
