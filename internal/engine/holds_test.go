package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	benchPress = domain.ExerciseProfile{
		ID: "bench-press", Name: "Bench Press", PrimaryMuscle: domain.MuscleChest,
		MuscleGroups: []domain.MuscleGroup{domain.MuscleChest, domain.MuscleTriceps, domain.MuscleShoulders},
		Pattern:      domain.PatternPush, Equipment: domain.EquipmentBarbell,
	}
	latPulldown = domain.ExerciseProfile{
		ID: "lat-pulldown", Name: "Lat Pulldown", PrimaryMuscle: domain.MuscleBack,
		MuscleGroups: []domain.MuscleGroup{domain.MuscleBack, domain.MuscleBiceps},
		Pattern:      domain.PatternPull, Equipment: domain.EquipmentCable,
	}
	legPress = domain.ExerciseProfile{
		ID: "leg-press", Name: "Leg Press", PrimaryMuscle: domain.MuscleLegs,
		MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs},
		Pattern:      domain.PatternSquat, Equipment: domain.EquipmentMachine,
	}
	shoulderPress = domain.ExerciseProfile{
		ID: "shoulder-press", Name: "Shoulder Press", PrimaryMuscle: domain.MuscleShoulders,
		MuscleGroups: []domain.MuscleGroup{domain.MuscleShoulders, domain.MuscleTriceps},
		Pattern:      domain.PatternPush, Equipment: domain.EquipmentDumbbell,
	}
)

func chestHold(t *testing.T) domain.InjuryHold {
	t.Helper()
	h, err := NewHold(HoldParams{
		Severity:      domain.SeverityModerate,
		MuscleGroups:  []domain.MuscleGroup{domain.MuscleChest},
		Reason:        "pec strain",
		StartDate:     testNow.Add(-7 * 24 * time.Hour),
		DurationWeeks: 2,
	}, testNow)
	require.NoError(t, err)
	return h
}

func TestNewHold_EndDateFromWeeks(t *testing.T) {
	h := chestHold(t)
	assert.Equal(t, testNow.Add(7*24*time.Hour), h.EndDate)
	assert.True(t, h.Active)
	assert.True(t, h.IsActiveAt(testNow))
}

func TestNewHold_RejectsNonPositiveDuration(t *testing.T) {
	_, err := NewHold(HoldParams{MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs}, DurationWeeks: 0}, testNow)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, CodeInvalidHoldWindow, ve.Code)
}

func TestNewHold_RequiresScope(t *testing.T) {
	_, err := NewHold(HoldParams{DurationWeeks: 2}, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewHold_DefaultsStartToNow(t *testing.T) {
	h, err := NewHold(HoldParams{MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs}, DurationWeeks: 1}, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, h.StartDate)
}

func TestIsAffected_MuscleGroupMatch(t *testing.T) {
	res := IsAffected(benchPress, []domain.InjuryHold{chestHold(t)}, testNow)
	require.True(t, res.Affected)
	require.Len(t, res.Reasons, 1)
	assert.Equal(t, "Hold: pec strain (uses chest)", res.Reasons[0])
}

func TestIsAffected_PatternMatch(t *testing.T) {
	h, err := NewHold(HoldParams{
		MovementPatterns: []domain.MovementPattern{domain.PatternPush},
		Reason:           "elbow",
		DurationWeeks:    1,
	}, testNow)
	require.NoError(t, err)

	res := IsAffected(shoulderPress, []domain.InjuryHold{h}, testNow)
	require.True(t, res.Affected)
	assert.Equal(t, "Hold: elbow (requires push pattern)", res.Reasons[0])

	assert.False(t, IsAffected(latPulldown, []domain.InjuryHold{h}, testNow).Affected)
}

func TestIsAffected_ExpiredHoldIgnoredEvenIfFlaggedActive(t *testing.T) {
	h := chestHold(t)
	h.EndDate = testNow.Add(-time.Hour)
	require.True(t, h.Active)

	assert.False(t, IsAffected(benchPress, []domain.InjuryHold{h}, testNow).Affected)
}

func TestIsAffected_HoldEndingNowIsExpired(t *testing.T) {
	h := chestHold(t)
	h.EndDate = testNow
	assert.False(t, IsAffected(benchPress, []domain.InjuryHold{h}, testNow).Affected)
}

func TestAdjustPlan_PreservesOrderAndKeepsUnrelated(t *testing.T) {
	planned := []domain.ExerciseProfile{latPulldown, benchPress, legPress, shoulderPress}

	adj := AdjustPlan(planned, []domain.InjuryHold{chestHold(t)}, testNow)

	require.Len(t, adj.Allowed, 3)
	assert.Equal(t, "lat-pulldown", adj.Allowed[0].ID)
	assert.Equal(t, "leg-press", adj.Allowed[1].ID)
	assert.Equal(t, "shoulder-press", adj.Allowed[2].ID)
	require.Len(t, adj.Removed, 1)
	assert.Equal(t, "bench-press", adj.Removed[0].Exercise.ID)
}

func TestAdjustPlan_NoHolds(t *testing.T) {
	planned := []domain.ExerciseProfile{benchPress, legPress}
	adj := AdjustPlan(planned, nil, testNow)
	assert.Equal(t, planned, adj.Allowed)
	assert.Empty(t, adj.Removed)
}

func TestAdjustPlan_MultipleHoldsJoinReasons(t *testing.T) {
	tri, err := NewHold(HoldParams{
		MuscleGroups:  []domain.MuscleGroup{domain.MuscleTriceps},
		Reason:        "elbow",
		DurationWeeks: 1,
	}, testNow)
	require.NoError(t, err)

	adj := AdjustPlan([]domain.ExerciseProfile{benchPress}, []domain.InjuryHold{chestHold(t), tri}, testNow)
	require.Len(t, adj.Removed, 1)
	assert.Equal(t, "Hold: pec strain (uses chest); Hold: elbow (uses triceps)", adj.Removed[0].Reason)
}

func TestAnalyzeImpact_MatchesAdjustPlan(t *testing.T) {
	planned := []domain.ExerciseProfile{benchPress, latPulldown, shoulderPress}
	impact, err := AnalyzeImpact(HoldParams{
		MuscleGroups:  []domain.MuscleGroup{domain.MuscleShoulders},
		DurationWeeks: 3,
	}, planned, testNow)
	require.NoError(t, err)

	assert.Equal(t, 2, impact.TotalAffected)
	assert.Equal(t, []string{"bench-press", "shoulder-press"}, impact.AffectedIDs)
	assert.Equal(t, []string{"lat-pulldown"}, impact.RemainingIDs)
	assert.True(t, impact.CanStillTrain)
}

func TestResizeHold_FromOriginalStart(t *testing.T) {
	h := chestHold(t)
	h, err := ResizeHold(h, 4, testNow)
	require.NoError(t, err)
	assert.Equal(t, h.StartDate.Add(28*24*time.Hour), h.EndDate)

	_, err = ResizeHold(h, 0, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEndHoldEarly(t *testing.T) {
	h, err := EndHoldEarly(chestHold(t), testNow)
	require.NoError(t, err)
	assert.False(t, h.Active)
	assert.Equal(t, testNow, h.EndDate)
	assert.Empty(t, ActiveHolds([]domain.InjuryHold{h}, testNow))
}

func TestEndHoldEarly_CancelsScheduledHold(t *testing.T) {
	h := chestHold(t)
	h.StartDate = testNow.Add(48 * time.Hour)
	h.EndDate = h.StartDate.Add(14 * 24 * time.Hour)

	ended, err := EndHoldEarly(h, testNow)
	require.NoError(t, err)
	assert.False(t, ended.Active)
	assert.Equal(t, h.EndDate, ended.EndDate)
	assert.Equal(t, testNow, ended.UpdatedAt)
	assert.Empty(t, ActiveHolds([]domain.InjuryHold{ended}, h.StartDate.Add(time.Hour)))
}

func TestDeactivateExpired(t *testing.T) {
	live := chestHold(t)
	stale := chestHold(t)
	stale.EndDate = testNow.Add(-24 * time.Hour)

	out := DeactivateExpired([]domain.InjuryHold{live, stale}, testNow)
	assert.True(t, out[0].Active)
	assert.False(t, out[1].Active)
	assert.True(t, stale.Active, "input is not mutated")
}

func TestCreateReintegrationPlan(t *testing.T) {
	h := chestHold(t)
	plan, err := CreateReintegrationPlan(h, map[string]float64{"bench-press": 200}, []string{"bench-press", "machine-press"})
	require.NoError(t, err)

	assert.Equal(t, 14, plan.HoldDurationDays)
	assert.Equal(t, 40, plan.ReductionPct)
	assert.Equal(t, map[string]float64{"bench-press": 120}, plan.StartingWeights)
	assert.Equal(t, 4, plan.RehabDurationWeeks)
	assert.Len(t, plan.Phases, 4)
}

func TestCreateReintegrationPlan_LongHoldExtendsRehab(t *testing.T) {
	h := chestHold(t)
	h.EndDate = h.StartDate.Add(6 * 7 * 24 * time.Hour)
	plan, err := CreateReintegrationPlan(h, map[string]float64{"bench-press": 200}, []string{"bench-press"})
	require.NoError(t, err)
	assert.Equal(t, 6, plan.RehabDurationWeeks)
	assert.Equal(t, 50, plan.ReductionPct)
	assert.Equal(t, 100.0, plan.StartingWeights["bench-press"])
}

func TestSummarizeHolds(t *testing.T) {
	a := chestHold(t)
	b, err := NewHold(HoldParams{
		MuscleGroups:     []domain.MuscleGroup{domain.MuscleChest, domain.MuscleTriceps},
		MovementPatterns: []domain.MovementPattern{domain.PatternPush},
		DurationWeeks:    3,
	}, testNow)
	require.NoError(t, err)

	s := SummarizeHolds([]domain.InjuryHold{a, b}, testNow)
	assert.Equal(t, 2, s.TotalActive)
	assert.Equal(t, []domain.MuscleGroup{domain.MuscleChest, domain.MuscleTriceps}, s.MuscleGroups)
	assert.Equal(t, []domain.MovementPattern{domain.PatternPush}, s.Patterns)
	require.NotNil(t, s.DaysUntilResume)
	assert.Equal(t, 7, *s.DaysUntilResume)
	assert.Equal(t, a.EndDate, *s.EarliestEnd)
}

func TestSummarizeHolds_NoneActive(t *testing.T) {
	s := SummarizeHolds(nil, testNow)
	assert.Zero(t, s.TotalActive)
	assert.Nil(t, s.EarliestEnd)
}

func TestHoldTimeline(t *testing.T) {
	h := chestHold(t)
	h.ID = "h1"
	entries := HoldTimeline([]domain.InjuryHold{h}, testNow)
	require.Len(t, entries, 1)
	assert.Equal(t, 2.0, entries[0].DurationWeeks)
	assert.True(t, entries[0].Active)

	entries = HoldTimeline([]domain.InjuryHold{h}, testNow.Add(30*24*time.Hour))
	assert.False(t, entries[0].Active)
}

func TestSuggestAlternatives(t *testing.T) {
	alt := SuggestAlternatives([]domain.MuscleGroup{domain.MuscleChest})
	assert.NotContains(t, alt.CanTrain, domain.MuscleChest)
	assert.Contains(t, alt.Suggestions, "Increase leg training frequency during upper body hold")

	alt = SuggestAlternatives([]domain.MuscleGroup{domain.MuscleLegs})
	assert.Contains(t, alt.Suggestions, "Opportunity to emphasize upper body development")

	alt = SuggestAlternatives(domain.AllMuscleGroups)
	assert.Empty(t, alt.CanTrain)
	assert.Equal(t, []string{"All major muscle groups on hold. Focus on active recovery, mobility, and rest."}, alt.Suggestions)
}
