package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkoutRepo(database)
	ctx := context.Background()

	w := testutil.NewTestWorkout(testutil.Now,
		testutil.WithExercise("bench-press", testutil.Set(185, 5), testutil.Set(185, 4)),
		testutil.WithExercise("lat-pulldown", testutil.Set(140, 6)),
		testutil.WithExercise("plank"),
	)
	require.NoError(t, repo.Create(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.CompletedAt)
	assert.True(t, fetched.StartedAt.Equal(testutil.Now))
	require.Len(t, fetched.Exercises, 3)
	assert.Equal(t, "bench-press", fetched.Exercises[0].ExerciseID)
	require.Len(t, fetched.Exercises[0].Sets, 2)
	assert.Equal(t, 5, fetched.Exercises[0].Sets[0].Reps)
	assert.Equal(t, 4, fetched.Exercises[0].Sets[1].Reps)
	assert.Equal(t, 90, fetched.Exercises[0].Sets[0].RestSeconds)
	assert.Equal(t, "lat-pulldown", fetched.Exercises[1].ExerciseID)
	assert.Empty(t, fetched.Exercises[2].Sets)
}

func TestWorkoutRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteWorkoutRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutRepo_ListRecentNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkoutRepo(database)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		w := testutil.NewTestWorkout(testutil.Now.Add(time.Duration(i)*24*time.Hour),
			testutil.WithExercise("leg-press", testutil.Set(300+float64(i)*10, 5)))
		require.NoError(t, repo.Create(ctx, w))
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].StartedAt.After(recent[1].StartedAt))
	assert.InDelta(t, 330.0, recent[0].Exercises[0].Sets[0].Weight, 0.001)
}

func TestWorkoutRepo_CreateRollsBackAsUnit(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: errors.New("disk full")}
	w := testutil.NewTestWorkout(testutil.Now,
		testutil.WithExercise("bench-press", testutil.Set(185, 5), testutil.Set(185, 5)))

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteWorkoutRepo(tx).Create(ctx, w)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = NewSQLiteWorkoutRepo(database).GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var setRows int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM set_logs`).Scan(&setRows))
	assert.Zero(t, setRows)
}
