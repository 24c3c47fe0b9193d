package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/alexanderramin/trainload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chestHoldRequest(weeks int) app.CreateHoldRequest {
	req := app.NewCreateHoldRequest()
	req.Severity = domain.SeverityModerate
	req.MuscleGroups = []domain.MuscleGroup{domain.MuscleChest}
	req.Reason = "pec strain"
	req.DurationWeeks = weeks
	return req
}

func TestHoldService_CreatePersists(t *testing.T) {
	env := setupEnv(t)
	obs := &recordingObserver{}
	svc := env.holdService(obs)
	ctx := context.Background()

	hold, err := svc.Create(ctx, chestHoldRequest(2))
	require.NoError(t, err)
	require.NotEmpty(t, hold.ID)
	assert.True(t, hold.EndDate.Equal(testutil.Now.Add(14*24*time.Hour)))

	stored, err := env.holds.GetByID(ctx, hold.ID)
	require.NoError(t, err)
	assert.Equal(t, "pec strain", stored.Reason)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-hold", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, hold.ID, obs.events[0].Fields["hold_id"])
}

func TestHoldService_CreateRejectsZeroWeeks(t *testing.T) {
	env := setupEnv(t)
	obs := &recordingObserver{}
	svc := env.holdService(obs)
	ctx := context.Background()

	_, err := svc.Create(ctx, chestHoldRequest(0))
	assert.ErrorIs(t, err, engine.ErrValidation)

	all, err := env.holds.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestHoldService_ExpiryIsDerivedFromClock(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	hold, err := svc.Create(ctx, chestHoldRequest(1))
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	env.clock.Advance(7 * 24 * time.Hour)

	active, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active, "a hold ending exactly now is expired")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	// Stored flag is untouched until ExpireHolds runs.
	stored, err := env.holds.GetByID(ctx, hold.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)

	n, err := svc.ExpireHolds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	stored, err = env.holds.GetByID(ctx, hold.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestHoldService_ResizeAndEndEarly(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	hold, err := svc.Create(ctx, chestHoldRequest(2))
	require.NoError(t, err)

	resized, err := svc.Resize(ctx, hold.ID, 4)
	require.NoError(t, err)
	assert.True(t, resized.EndDate.Equal(hold.StartDate.Add(28*24*time.Hour)))

	env.clock.Advance(3 * 24 * time.Hour)
	ended, err := svc.EndEarly(ctx, hold.ID)
	require.NoError(t, err)
	assert.False(t, ended.Active)
	assert.True(t, ended.EndDate.Equal(env.clock.Now()))

	_, err = svc.Resize(ctx, "missing", 2)
	assert.Error(t, err)
}

func TestHoldService_EndEarlyCancelsScheduledHold(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	req := chestHoldRequest(2)
	start := testutil.Now.Add(72 * time.Hour)
	req.StartDate = &start
	hold, err := svc.Create(ctx, req)
	require.NoError(t, err)

	ended, err := svc.EndEarly(ctx, hold.ID)
	require.NoError(t, err)
	assert.False(t, ended.Active)
	assert.True(t, ended.EndDate.Equal(hold.EndDate))
	assert.True(t, ended.StartDate.Equal(start))
}

func TestHoldService_FilterPlan(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	_, err := svc.Create(ctx, chestHoldRequest(2))
	require.NoError(t, err)

	adj, err := svc.FilterPlan(ctx, []string{"bench-press", "lat-pulldown", "leg-press"})
	require.NoError(t, err)
	require.Len(t, adj.Removed, 1)
	assert.Equal(t, "bench-press", adj.Removed[0].Exercise.ID)
	require.Len(t, adj.Allowed, 2)
	assert.Equal(t, "lat-pulldown", adj.Allowed[0].ID)

	_, err = svc.FilterPlan(ctx, []string{"nope"})
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestHoldService_PreviewDoesNotPersist(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	impact, err := svc.Preview(ctx, chestHoldRequest(2), []string{"bench-press", "leg-press"})
	require.NoError(t, err)
	assert.Equal(t, 1, impact.TotalAffected)
	assert.True(t, impact.CanStillTrain)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHoldService_Reintegration(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	require.NoError(t, env.maxes.Create(ctx, testutil.NewTestMaxRecord("bench-press", 200, testutil.Now.Add(-48*time.Hour))))
	require.NoError(t, env.maxes.Create(ctx, testutil.NewTestMaxRecord("leg-press", 400, testutil.Now.Add(-48*time.Hour))))

	hold, err := svc.Create(ctx, chestHoldRequest(2))
	require.NoError(t, err)

	plan, err := svc.Reintegration(ctx, hold.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, plan.HoldDurationDays)
	assert.InDelta(t, 120.0, plan.StartingWeights["bench-press"], 0.001)
	assert.NotContains(t, plan.StartingWeights, "leg-press")
	assert.Len(t, plan.Phases, 4)
}

func TestHoldService_SummaryAndAlternatives(t *testing.T) {
	env := setupEnv(t)
	svc := env.holdService()
	ctx := context.Background()

	_, err := svc.Create(ctx, chestHoldRequest(2))
	require.NoError(t, err)

	summary, timeline, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalActive)
	assert.Equal(t, []domain.MuscleGroup{domain.MuscleChest}, summary.MuscleGroups)
	require.NotNil(t, summary.DaysUntilResume)
	assert.Equal(t, 14, *summary.DaysUntilResume)
	assert.Len(t, timeline, 1)

	alt, err := svc.Alternatives(ctx)
	require.NoError(t, err)
	assert.NotContains(t, alt.CanTrain, domain.MuscleChest)
	assert.Contains(t, alt.CanTrain, domain.MuscleBack)
}
