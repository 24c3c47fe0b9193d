package engine

import (
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysAgo(n int) time.Time { return testNow.Add(-time.Duration(n) * 24 * time.Hour) }

func attempt(exerciseID string, ok bool, age int) domain.MaxAttempt {
	return domain.MaxAttempt{ExerciseID: exerciseID, Weight: 200, Reps: 4, Successful: ok, Timestamp: daysAgo(age)}
}

func TestDetectPlateau_TwoFlatExercises(t *testing.T) {
	maxes := []domain.MaxRecord{
		{ExerciseID: "bench-press", Weight: 200, TestedAt: daysAgo(20)},
		{ExerciseID: "bench-press", Weight: 200, TestedAt: daysAgo(2)},
		{ExerciseID: "leg-press", Weight: 300, TestedAt: daysAgo(25)},
		{ExerciseID: "leg-press", Weight: 300, TestedAt: daysAgo(1)},
		{ExerciseID: "lat-pulldown", Weight: 120, TestedAt: daysAgo(20)},
		{ExerciseID: "lat-pulldown", Weight: 130, TestedAt: daysAgo(3)},
	}
	f := DetectPlateau(maxes, testNow)
	require.NotNil(t, f)
	assert.Equal(t, domain.FlagPlateau, f.Type)
	assert.Equal(t, domain.FlagMedium, f.Severity)
	assert.Equal(t, "Plateau detected on 2 exercises - no 4RM progress in 4 weeks", f.Message)
	assert.False(t, f.Acknowledged)
}

func TestDetectPlateau_IgnoresOldRecords(t *testing.T) {
	maxes := []domain.MaxRecord{
		{ExerciseID: "bench-press", Weight: 200, TestedAt: daysAgo(40)},
		{ExerciseID: "bench-press", Weight: 200, TestedAt: daysAgo(2)},
		{ExerciseID: "leg-press", Weight: 300, TestedAt: daysAgo(25)},
		{ExerciseID: "leg-press", Weight: 300, TestedAt: daysAgo(1)},
	}
	assert.Nil(t, DetectPlateau(maxes, testNow))
}

func TestDetectTestingRisk(t *testing.T) {
	attempts := []domain.MaxAttempt{
		attempt("bench-press", true, 1), attempt("bench-press", true, 5), attempt("bench-press", true, 10),
		attempt("leg-press", true, 1), attempt("leg-press", true, 5),
	}
	f := DetectTestingRisk(attempts, testNow)
	require.NotNil(t, f)
	assert.Equal(t, domain.FlagOvertrainingRisk, f.Type)
	assert.Equal(t, domain.FlagHigh, f.Severity)
	assert.Equal(t, "1 exercise(s) tested too frequently - risk of overtraining", f.Message)

	assert.Nil(t, DetectTestingRisk(attempts[3:], testNow))
}

func TestDetectFatigue_CountsAcrossExercises(t *testing.T) {
	attempts := []domain.MaxAttempt{
		attempt("bench-press", false, 1),
		attempt("leg-press", false, 3),
		attempt("lat-pulldown", false, 13),
		attempt("lat-pulldown", false, 20),
	}
	f := DetectFatigue(attempts, testNow)
	require.NotNil(t, f)
	assert.Equal(t, "3 failed P1 attempts recently - possible fatigue or overreaching", f.Message)

	assert.Nil(t, DetectFatigue(attempts[1:], testNow))
}

func TestDetectInjuryConcern(t *testing.T) {
	missed := []domain.MissedSession{
		{Reason: domain.MissedInjury, ScheduledAt: daysAgo(2)},
		{Reason: domain.MissedInjury, ScheduledAt: daysAgo(10)},
		{Reason: domain.MissedTimeConstraints, ScheduledAt: daysAgo(11)},
		{Reason: domain.MissedInjury, ScheduledAt: daysAgo(29)},
	}
	f := DetectInjuryConcern(missed, testNow)
	require.NotNil(t, f)
	assert.Equal(t, domain.FlagInjuryConcern, f.Type)
	assert.Equal(t, "3 injury-related cancellations this month - review training intensity", f.Message)

	missed[3].ScheduledAt = daysAgo(31)
	assert.Nil(t, DetectInjuryConcern(missed, testNow))
}

func TestDetectFlags_UnionOfDetectors(t *testing.T) {
	h := FlagHistory{
		Attempts: []domain.MaxAttempt{
			attempt("bench-press", false, 1), attempt("bench-press", false, 2), attempt("bench-press", false, 3),
		},
		Missed: []domain.MissedSession{
			{Reason: domain.MissedInjury, ScheduledAt: daysAgo(1)},
			{Reason: domain.MissedInjury, ScheduledAt: daysAgo(2)},
			{Reason: domain.MissedInjury, ScheduledAt: daysAgo(3)},
		},
	}
	flags := DetectFlags(h, testNow)
	require.Len(t, flags, 3)
	assert.Equal(t, domain.FlagOvertrainingRisk, flags[0].Type)
	assert.Equal(t, domain.FlagFatigue, flags[1].Type)
	assert.Equal(t, domain.FlagInjuryConcern, flags[2].Type)
}

func TestDetectFlags_NothingFires(t *testing.T) {
	assert.Empty(t, DetectFlags(FlagHistory{}, testNow))
}

func TestSuccessRate_TrendByHalves(t *testing.T) {
	attempts := []domain.MaxAttempt{
		attempt("bench-press", false, 60),
		attempt("bench-press", false, 50),
		attempt("bench-press", true, 40),
		attempt("bench-press", true, 30),
		attempt("bench-press", true, 20),
		attempt("bench-press", true, 10),
		attempt("bench-press", true, 120),
	}
	r := SuccessRate(attempts, testNow)
	assert.Equal(t, 6, r.TotalAttempts)
	assert.Equal(t, 4, r.Successful)
	assert.Equal(t, 2, r.Failed)
	assert.Equal(t, 67, r.SuccessRate)
	assert.Equal(t, domain.TrendImproving, r.Trend)
}

func TestSuccessRate_TooFewForTrend(t *testing.T) {
	r := SuccessRate([]domain.MaxAttempt{attempt("bench-press", false, 5), attempt("bench-press", true, 1)}, testNow)
	assert.Equal(t, 50, r.SuccessRate)
	assert.Equal(t, domain.TrendStable, r.Trend)
}
