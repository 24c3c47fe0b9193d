package engine

import (
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/catalog"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sets(pairs ...[2]float64) []domain.SetRecord {
	out := make([]domain.SetRecord, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.SetRecord{Weight: p[0], Reps: int(p[1]), RestSeconds: 90})
	}
	return out
}

func sampleSession() domain.SessionRecord {
	done := testNow
	return domain.SessionRecord{
		ID:          "s1",
		StartedAt:   testNow.Add(-time.Hour),
		CompletedAt: &done,
		Exercises: []domain.ExerciseLog{
			{ExerciseID: "bench-press", Sets: sets([2]float64{70, 6}, [2]float64{160, 1}, [2]float64{180, 1}, [2]float64{200, 1})},
			{ExerciseID: "lat-pulldown", Sets: sets([2]float64{100, 8}, [2]float64{120, 6})},
		},
	}
}

func TestComputeVolume_TotalsAndOrdering(t *testing.T) {
	r := ComputeVolume(catalog.MustDefault(), sampleSession())

	assert.Equal(t, 2480.0, r.TotalVolume)
	require.Len(t, r.PerExercise, 2)
	assert.Equal(t, "lat-pulldown", r.PerExercise[0].ExerciseID)
	assert.Equal(t, 1520.0, r.PerExercise[0].Volume)
	assert.Equal(t, "bench-press", r.PerExercise[1].ExerciseID)
	assert.Equal(t, 960.0, r.PerExercise[1].Volume)
}

func TestComputeVolume_MuscleGroupsGetFullVolume(t *testing.T) {
	r := ComputeVolume(catalog.MustDefault(), sampleSession())

	assert.Equal(t, 960.0, r.PerMuscleGroup[domain.MuscleChest])
	assert.Equal(t, 960.0, r.PerMuscleGroup[domain.MuscleTriceps])
	assert.Equal(t, 1520.0, r.PerMuscleGroup[domain.MuscleBack])
	assert.Equal(t, 1520.0, r.PerMuscleGroup[domain.MuscleBiceps])
}

func TestComputeVolume_TiesKeepSessionOrder(t *testing.T) {
	s := domain.SessionRecord{Exercises: []domain.ExerciseLog{
		{ExerciseID: "leg-press", Sets: sets([2]float64{100, 10})},
		{ExerciseID: "leg-curl", Sets: sets([2]float64{50, 20})},
	}}
	r := ComputeVolume(catalog.MustDefault(), s)
	assert.Equal(t, "leg-press", r.PerExercise[0].ExerciseID)
	assert.Equal(t, "leg-curl", r.PerExercise[1].ExerciseID)
}

func TestComputeVolume_UnknownExerciseCountsTowardTotalOnly(t *testing.T) {
	s := domain.SessionRecord{Exercises: []domain.ExerciseLog{
		{ExerciseID: "mystery", Sets: sets([2]float64{10, 10})},
	}}
	r := ComputeVolume(catalog.MustDefault(), s)
	assert.Equal(t, 100.0, r.TotalVolume)
	assert.Empty(t, r.PerMuscleGroup)
}

func TestComputeVolume_Idempotent(t *testing.T) {
	cat := catalog.MustDefault()
	s := sampleSession()
	assert.Equal(t, ComputeVolume(cat, s), ComputeVolume(cat, s))
}

func TestClassifyIntensity_Boundaries(t *testing.T) {
	assert.Equal(t, domain.ZoneWarmup, ClassifyIntensity(35))
	assert.Equal(t, domain.ZoneWorking, ClassifyIntensity(35.1))
	assert.Equal(t, domain.ZoneWorking, ClassifyIntensity(64.9))
	assert.Equal(t, domain.ZoneHeavy, ClassifyIntensity(65))
	assert.Equal(t, domain.ZoneHeavy, ClassifyIntensity(84.9))
	// 85 opens the max zone, like 65 opens heavy.
	assert.Equal(t, domain.ZoneMax, ClassifyIntensity(85))
	assert.Equal(t, domain.ZoneMax, ClassifyIntensity(85.1))
}

func TestComputeIntensity_BucketsSumTo100(t *testing.T) {
	maxes := map[string]float64{"bench-press": 200, "lat-pulldown": 130}
	r := ComputeIntensity(sampleSession(), maxes)

	assert.Equal(t, 6, r.ClassifiedSets)
	var sum float64
	for _, b := range r.Buckets {
		sum += b.Percentage
	}
	assert.InDelta(t, 100, sum, 1)

	// bench: 35, 80, 90, 100; pulldown: 76.9, 92.3
	assert.Equal(t, 1, r.WarmupCount)
	assert.Equal(t, 0, r.WorkingCount)
	assert.Equal(t, 2, r.HeavyCount)
	assert.Equal(t, 3, r.MaxCount)
}

func TestComputeIntensity_ExcludesSetsWithoutMax(t *testing.T) {
	r := ComputeIntensity(sampleSession(), map[string]float64{"bench-press": 200})
	assert.Equal(t, 4, r.ClassifiedSets)
	assert.Equal(t, 76.3, r.AverageIntensity)
}

func TestComputeIntensity_NoMaxes(t *testing.T) {
	r := ComputeIntensity(sampleSession(), nil)
	assert.Zero(t, r.ClassifiedSets)
	assert.Zero(t, r.AverageIntensity)
	for _, b := range r.Buckets {
		assert.Zero(t, b.Percentage)
	}
}

func TestComputeIntensity_Idempotent(t *testing.T) {
	maxes := map[string]float64{"bench-press": 200}
	s := sampleSession()
	assert.Equal(t, ComputeIntensity(s, maxes), ComputeIntensity(s, maxes))
}

func TestComputeTimeUnderTension(t *testing.T) {
	tut := ComputeTimeUnderTension(sampleSession())
	assert.Equal(t, 3600, tut.TotalWorkoutTime)
	assert.Equal(t, 540, tut.TotalRestTime)
	assert.Equal(t, 3060, tut.TotalWorkTime)
	// 23 reps
	assert.Equal(t, 69, tut.EstimatedTUT)
	assert.Equal(t, 1.9, tut.Efficiency)
}

func TestComputeTimeUnderTension_Incomplete(t *testing.T) {
	s := sampleSession()
	s.CompletedAt = nil
	tut := ComputeTimeUnderTension(s)
	assert.Zero(t, tut.TotalWorkoutTime)
	assert.Zero(t, tut.Efficiency)
	assert.Equal(t, 69, tut.EstimatedTUT)
}

func TestComputeTimeUnderTension_EfficiencyNotCapped(t *testing.T) {
	s := sampleSession()
	s.StartedAt = testNow.Add(-time.Minute)
	tut := ComputeTimeUnderTension(s)
	assert.Equal(t, 60, tut.TotalWorkoutTime)
	assert.Zero(t, tut.TotalWorkTime)
	// 69s of estimated tension in a 60s session
	assert.Equal(t, 115.0, tut.Efficiency)
}

func TestCompareToLastWorkout_DeadBand(t *testing.T) {
	cat := catalog.MustDefault()
	prev := sampleSession()

	cur := sampleSession()
	cur.Exercises = append(cur.Exercises, domain.ExerciseLog{ExerciseID: "leg-press", Sets: sets([2]float64{100, 1})})
	cmp := CompareToLastWorkout(cat, cur, prev)
	assert.Equal(t, domain.TrendStable, cmp.Trend)

	cur.Exercises[2].Sets = sets([2]float64{200, 1})
	cmp = CompareToLastWorkout(cat, cur, prev)
	assert.Equal(t, domain.TrendImproving, cmp.Trend)
	assert.Equal(t, 200.0, cmp.VolumeChange)

	cmp = CompareToLastWorkout(cat, prev, cur)
	assert.Equal(t, domain.TrendDeclining, cmp.Trend)
}

func TestCompareToLastWorkout_EmptyPrevious(t *testing.T) {
	cmp := CompareToLastWorkout(catalog.MustDefault(), sampleSession(), domain.SessionRecord{})
	assert.Zero(t, cmp.VolumeChangePercent)
	assert.Equal(t, domain.TrendStable, cmp.Trend)
}

func TestBodyPartBalance_FlagsUnderworkedGroups(t *testing.T) {
	s := domain.SessionRecord{Exercises: []domain.ExerciseLog{
		{ExerciseID: "bench-press", Sets: sets([2]float64{200, 5})},
		{ExerciseID: "bicep-cable-curl", Sets: sets([2]float64{20, 10})},
	}}
	r := BodyPartBalance(catalog.MustDefault(), s)

	assert.Equal(t, domain.MuscleChest, r.MostWorked)
	assert.Equal(t, domain.MuscleBiceps, r.LeastWorked)
	require.Len(t, r.Imbalances, 1)
	assert.Equal(t, domain.MuscleBiceps, r.Imbalances[0].MuscleGroup)
	assert.Equal(t, domain.ImbalanceHigh, r.Imbalances[0].Severity)
	assert.Contains(t, r.Recommendations, "Consider adding more volume for: biceps")
	assert.Contains(t, r.Recommendations, "Increase pulling exercises (back, biceps) relative to pushing")
}

func TestBodyPartBalance_Empty(t *testing.T) {
	r := BodyPartBalance(catalog.MustDefault(), domain.SessionRecord{})
	assert.Equal(t, []string{"Complete workouts to see muscle balance analysis"}, r.Recommendations)
}

func TestVolumeTrends_ChronologicalWithChange(t *testing.T) {
	first := sampleSession()
	first.ID = "first"
	firstDone := testNow.Add(-48 * time.Hour)
	first.CompletedAt = &firstDone

	second := sampleSession()
	second.ID = "second"
	second.Exercises = second.Exercises[:1]

	points := VolumeTrends(catalog.MustDefault(), []domain.SessionRecord{second, first})
	require.Len(t, points, 2)
	assert.Equal(t, "first", points[0].SessionID)
	assert.Zero(t, points[0].ChangeFromPrevious)
	assert.Equal(t, -1520.0, points[1].ChangeFromPrevious)
	assert.Equal(t, -61.0, points[1].ChangePercent)
}
