package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRehabStateRepo_CreateAndGetActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRehabStateRepo(db)
	ctx := context.Background()

	state := testutil.NewTestRehabState("bench-press", 200, testutil.WithRehabSeverity(domain.SeveritySevere, 30))
	require.NoError(t, repo.Create(ctx, state))

	fetched, err := repo.GetActive(ctx, "bench-press")
	require.NoError(t, err)
	assert.Equal(t, state.ID, fetched.ID)
	assert.Equal(t, 30, fetched.LoadReductionPct)
	assert.InDelta(t, 140.0, fetched.CurrentWeight, 0.001)
	assert.Equal(t, domain.RehabRepMin, fetched.TargetRepMin)
	assert.True(t, fetched.MaxTestingDisabled)
	assert.Nil(t, fetched.EndedAt)
}

func TestRehabStateRepo_GetActive_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRehabStateRepo(db)

	_, err := repo.GetActive(context.Background(), "leg-press")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRehabStateRepo_EndThenRestart(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRehabStateRepo(db)
	ctx := context.Background()

	first := testutil.NewTestRehabState("bench-press", 200)
	require.NoError(t, repo.Create(ctx, first))

	// A second active state for the same exercise violates the partial index.
	assert.Error(t, repo.Create(ctx, testutil.NewTestRehabState("bench-press", 200)))

	ended := testutil.Now.Add(21 * 24 * time.Hour)
	first.Active = false
	first.EndedAt = &ended
	first.SessionCount = 6
	require.NoError(t, repo.Update(ctx, first))

	_, err := repo.GetActive(ctx, "bench-press")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, testutil.NewTestRehabState("bench-press", 190)))
	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.InDelta(t, 190.0, active[0].PreInjuryMax, 0.001)
}

func TestRehabSessionRepo_ListByExerciseOrdered(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRehabSessionRepo(db)
	ctx := context.Background()

	pain := 3
	later := testutil.NewTestRehabSession("bench-press", 150, testutil.Now.Add(48*time.Hour), nil)
	earlier := testutil.NewTestRehabSession("bench-press", 140, testutil.Now, &pain)
	other := testutil.NewTestRehabSession("leg-press", 300, testutil.Now, nil)
	for _, s := range []*domain.RehabSession{later, earlier, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	sessions, err := repo.ListByExercise(ctx, "bench-press")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, earlier.ID, sessions[0].ID)
	require.NotNil(t, sessions[0].PainLevel)
	assert.Equal(t, 3, *sessions[0].PainLevel)
	assert.Nil(t, sessions[1].PainLevel)

	since, err := repo.ListSince(ctx, testutil.Now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, later.ID, since[0].ID)
}

func TestPainCheckInRepo_Latest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePainCheckInRepo(db)
	ctx := context.Background()

	_, err := repo.Latest(ctx, "bench-press")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, testutil.NewTestPainCheckIn("bench-press", 2, testutil.Now)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestPainCheckIn("bench-press", 6, testutil.Now.Add(time.Minute))))

	latest, err := repo.Latest(ctx, "bench-press")
	require.NoError(t, err)
	assert.Equal(t, 6, latest.PainLevel)

	all, err := repo.ListByExercise(ctx, "bench-press")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].PainLevel)
}

func TestPainCheckInRepo_RejectsOutOfRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePainCheckInRepo(db)

	assert.Error(t, repo.Create(context.Background(), testutil.NewTestPainCheckIn("bench-press", 11, testutil.Now)))
}
