package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/catalog"
	"github.com/alexanderramin/trainload/internal/db"
	"github.com/alexanderramin/trainload/internal/repository"
	"github.com/alexanderramin/trainload/internal/testutil"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	clock    *testClock
	catalog  *catalog.Catalog
	holds    *repository.SQLiteHoldRepo
	states   *repository.SQLiteRehabStateRepo
	sessions *repository.SQLiteRehabSessionRepo
	checkIns *repository.SQLitePainCheckInRepo
	workouts *repository.SQLiteWorkoutRepo
	maxes    *repository.SQLiteMaxRecordRepo
	attempts *repository.SQLiteMaxAttemptRepo
	missed   *repository.SQLiteMissedSessionRepo
	flags    *repository.SQLiteCoachingFlagRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		clock:    &testClock{t: testutil.Now},
		catalog:  catalog.MustDefault(),
		holds:    repository.NewSQLiteHoldRepo(database),
		states:   repository.NewSQLiteRehabStateRepo(database),
		sessions: repository.NewSQLiteRehabSessionRepo(database),
		checkIns: repository.NewSQLitePainCheckInRepo(database),
		workouts: repository.NewSQLiteWorkoutRepo(database),
		maxes:    repository.NewSQLiteMaxRecordRepo(database),
		attempts: repository.NewSQLiteMaxAttemptRepo(database),
		missed:   repository.NewSQLiteMissedSessionRepo(database),
		flags:    repository.NewSQLiteCoachingFlagRepo(database),
	}
}

func (e *testEnv) holdService(observers ...UseCaseObserver) HoldService {
	return NewHoldService(e.holds, e.maxes, e.catalog, e.uow, e.clock.Now, observers...)
}

func (e *testEnv) rehabService() RehabService {
	return NewRehabService(e.states, e.sessions, e.checkIns, e.maxes, e.uow, e.clock.Now, 0)
}

func (e *testEnv) substitutionService() SubstitutionService {
	return NewSubstitutionService(e.catalog, e.maxes)
}

func (e *testEnv) analyticsService() AnalyticsService {
	return NewAnalyticsService(e.workouts, e.maxes, e.catalog, e.uow, e.clock.Now)
}

func (e *testEnv) coachingService() CoachingService {
	return NewCoachingService(CoachingRepos{
		Flags:    e.flags,
		Maxes:    e.maxes,
		Attempts: e.attempts,
		Missed:   e.missed,
		Workouts: e.workouts,
	}, e.catalog, e.uow, e.clock.Now)
}

func intPtr(v int) *int { return &v }
