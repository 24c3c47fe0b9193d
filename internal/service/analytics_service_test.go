package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/alexanderramin/trainload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logTwoWorkouts stores an older bench-only session and a newer one that
// adds lat pulldowns.
func logTwoWorkouts(t *testing.T, svc AnalyticsService) (older, newer *domain.SessionRecord) {
	t.Helper()
	ctx := context.Background()
	s := testutil.Set
	older = testutil.NewTestWorkout(testutil.Now.Add(-72*time.Hour),
		testutil.WithExercise("bench-press", s(100, 5), s(100, 5), s(100, 5)))
	newer = testutil.NewTestWorkout(testutil.Now.Add(-24*time.Hour),
		testutil.WithExercise("bench-press", s(110, 5), s(110, 5), s(110, 5)),
		testutil.WithExercise("lat-pulldown", s(80, 10), s(80, 10)))
	require.NoError(t, svc.LogWorkout(ctx, older))
	require.NoError(t, svc.LogWorkout(ctx, newer))
	return older, newer
}

func TestAnalyticsService_LogWorkoutValidates(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()
	ctx := context.Background()

	unknown := testutil.NewTestWorkout(testutil.Now, testutil.WithExercise("no-such-lift", testutil.Set(50, 5)))
	err := svc.LogWorkout(ctx, unknown)
	assert.ErrorIs(t, err, engine.ErrNotFound)

	negative := testutil.NewTestWorkout(testutil.Now, testutil.WithExercise("bench-press", testutil.Set(-5, 5)))
	err = svc.LogWorkout(ctx, negative)
	assert.ErrorIs(t, err, engine.ErrValidation)

	recent, err := env.workouts.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestAnalyticsService_LogWorkoutAssignsDefaults(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()

	session := &domain.SessionRecord{Exercises: []domain.ExerciseLog{
		{ExerciseID: "leg-press", Sets: []domain.SetRecord{testutil.Set(300, 6)}},
	}}
	require.NoError(t, svc.LogWorkout(context.Background(), session))
	assert.NotEmpty(t, session.ID)
	assert.True(t, session.StartedAt.Equal(testutil.Now))

	stored, err := env.workouts.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Exercises, 1)
	assert.Equal(t, 6, stored.Exercises[0].Sets[0].Reps)
}

func TestAnalyticsService_NoWorkouts(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()

	_, err := svc.Volume(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Compare(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAnalyticsService_VolumeDefaultsToLatest(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()
	older, _ := logTwoWorkouts(t, svc)

	latest, err := svc.Volume(context.Background(), "")
	require.NoError(t, err)
	assert.InDelta(t, 3250.0, latest.TotalVolume, 0.001)
	require.Len(t, latest.PerExercise, 2)
	assert.Equal(t, "bench-press", latest.PerExercise[0].ExerciseID)
	assert.InDelta(t, 1600.0, latest.PerMuscleGroup[domain.MuscleBiceps], 0.001)

	first, err := svc.Volume(context.Background(), older.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, first.TotalVolume, 0.001)
}

func TestAnalyticsService_CompareAndTrends(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()
	older, newer := logTwoWorkouts(t, svc)

	cmp, err := svc.Compare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TrendImproving, cmp.Trend)
	assert.InDelta(t, 1750.0, cmp.VolumeChange, 0.001)

	points, err := svc.Trends(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, older.ID, points[0].SessionID)
	assert.Equal(t, newer.ID, points[1].SessionID)
	assert.InDelta(t, 1750.0, points[1].ChangeFromPrevious, 0.001)
}

func TestAnalyticsService_CompareSingleWorkout(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()
	require.NoError(t, svc.LogWorkout(context.Background(),
		testutil.NewTestWorkout(testutil.Now, testutil.WithExercise("bench-press", testutil.Set(100, 5)))))

	cmp, err := svc.Compare(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 500.0, cmp.VolumeChange, 0.001)
	assert.Zero(t, cmp.VolumeChangePercent)
}

func TestAnalyticsService_IntensityAndTimeUnderTension(t *testing.T) {
	env := setupEnv(t)
	seedBenchMax(t, env, 200)
	svc := env.analyticsService()
	logTwoWorkouts(t, svc)

	intensity, err := svc.Intensity(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, intensity.ClassifiedSets, "lat pulldown has no max")
	assert.Equal(t, 3, intensity.WorkingCount)
	assert.InDelta(t, 55.0, intensity.AverageIntensity, 0.001)

	tut, err := svc.TimeUnderTension(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3600, tut.TotalWorkoutTime)
	assert.Equal(t, 450, tut.TotalRestTime)
	assert.Equal(t, 105, tut.EstimatedTUT)
}

func TestAnalyticsService_FormCheckWeightJump(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()
	logTwoWorkouts(t, svc)

	r, err := svc.FormCheck(context.Background(), "bench-press", 130)
	require.NoError(t, err)
	assert.Equal(t, domain.FormAlertWarning, r.Prompt.Alert)
	assert.True(t, r.Review)
	assert.Equal(t, 6, r.Stats.TotalSets)
	assert.InDelta(t, 100.0, r.Stats.SuccessRate, 0.001)
	assert.InDelta(t, 105.0, r.Stats.AverageWeight, 0.001)
	assert.Equal(t, domain.TrendImproving, r.Stats.Trend)

	r, err = svc.FormCheck(context.Background(), "bench-press", 115)
	require.NoError(t, err)
	assert.Equal(t, domain.FormAlertNone, r.Prompt.Alert)
	assert.False(t, r.Review)
}

func TestAnalyticsService_FormCheckConsecutiveFailures(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()
	logTwoWorkouts(t, svc)

	s := testutil.Set
	missed := testutil.NewTestWorkout(testutil.Now.Add(-2*time.Hour),
		testutil.WithExercise("bench-press", s(120, 2), s(120, 2), s(120, 3)))
	require.NoError(t, svc.LogWorkout(context.Background(), missed))

	r, err := svc.FormCheck(context.Background(), "bench-press", 120)
	require.NoError(t, err)
	assert.Equal(t, domain.FormAlertCritical, r.Prompt.Alert)
	assert.Equal(t, 3, r.Stats.ConsecutiveFailures)
	assert.Contains(t, r.Tips, "Focus on full range of motion")
}

func TestAnalyticsService_FormCheckValidates(t *testing.T) {
	env := setupEnv(t)
	svc := env.analyticsService()

	_, err := svc.FormCheck(context.Background(), "no-such-lift", 100)
	assert.ErrorIs(t, err, engine.ErrNotFound)

	_, err = svc.FormCheck(context.Background(), "bench-press", 0)
	assert.ErrorIs(t, err, engine.ErrValidation)

	r, err := svc.FormCheck(context.Background(), "bench-press", 100)
	require.NoError(t, err)
	assert.Zero(t, r.Stats.TotalSets)
	assert.Equal(t, domain.FormAlertNone, r.Prompt.Alert)
}
