package engine

import (
	"testing"

	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReductionFor_AllSeverities(t *testing.T) {
	cases := map[domain.Severity]int{
		domain.SeverityMild:     10,
		domain.SeverityModerate: 20,
		domain.SeveritySevere:   30,
	}
	for sev, want := range cases {
		got, err := LoadReductionFor(sev)
		require.NoError(t, err)
		assert.Equal(t, want, got, "severity %s", sev)
	}
}

func TestLoadReductionFor_UnknownSeverity(t *testing.T) {
	_, err := LoadReductionFor("critical")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeInvalidSeverity, ve.Code)
}

func TestApplyReduction_TwentyPercentOf200(t *testing.T) {
	got, err := ApplyReduction(200, 20)
	require.NoError(t, err)
	assert.Equal(t, 160.0, got)
}

func TestApplyReduction_RoundsToFive(t *testing.T) {
	got, err := ApplyReduction(135, 10)
	require.NoError(t, err)
	// 121.5 -> 120
	assert.Equal(t, 120.0, got)
}

func TestApplyReduction_RejectsOffPolicyPercentage(t *testing.T) {
	_, err := ApplyReduction(200, 15)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeInvalidReduction, ve.Code)
}

func TestApplyReduction_RejectsNonPositiveWeight(t *testing.T) {
	_, err := ApplyReduction(0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResumeAfterHold_StepFunction(t *testing.T) {
	tests := []struct {
		days      int
		reduction int
		weight    float64
	}{
		{days: 7, reduction: 40, weight: 120},
		{days: 14, reduction: 40, weight: 120},
		{days: 15, reduction: 45, weight: 110},
		{days: 30, reduction: 45, weight: 110},
		{days: 31, reduction: 50, weight: 100},
	}
	for _, tt := range tests {
		plan, err := ResumeAfterHold(200, tt.days)
		require.NoError(t, err)
		assert.Equal(t, tt.reduction, plan.ReductionPct, "days=%d", tt.days)
		assert.Equal(t, tt.weight, plan.StartingWeight, "days=%d", tt.days)
	}
}

func TestResumeAfterHold_Recommendation(t *testing.T) {
	plan, err := ResumeAfterHold(200, 10)
	require.NoError(t, err)
	assert.Equal(t, 60, plan.StartingPct)
	assert.Contains(t, plan.Recommendation, "Starting at 60% of pre-injury strength")
}

func TestResumeAfterHold_InvalidMax(t *testing.T) {
	for _, max := range []float64{0, -50} {
		_, err := ResumeAfterHold(max, 10)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, CodeInvalidMax, ve.Code)
	}
}

func TestResumeAfterHold_NegativeDuration(t *testing.T) {
	_, err := ResumeAfterHold(200, -1)
	assert.ErrorIs(t, err, ErrValidation)
}
