package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestFormatGateDecision(t *testing.T) {
	prev := 3
	out := stripANSI(FormatGateDecision(engine.GateDecision{
		State:             domain.GateContinueWithCaution,
		Level:             4,
		Previous:          &prev,
		ExtraReductionPct: 10,
		Message:           "Moderate pain detected.",
	}))
	assert.Contains(t, out, "CAUTION")
	assert.Contains(t, out, "4/10")
	assert.Contains(t, out, "previous 3")
	assert.Contains(t, out, "extra 10%")
}

func TestFormatHoldList(t *testing.T) {
	assert.Contains(t, stripANSI(FormatHoldList(nil, now)), "No injury holds")

	holds := []domain.InjuryHold{
		{
			ID: "hold-0001-aaaa", Severity: domain.SeverityModerate,
			MuscleGroups: []domain.MuscleGroup{domain.MuscleChest},
			StartDate:    now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 13), Active: true,
		},
		{
			ID: "hold-0002-bbbb", Severity: domain.SeverityMild,
			MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs},
			StartDate:    now.AddDate(0, 0, -30), EndDate: now.AddDate(0, 0, -16), Active: true,
		},
	}
	out := stripANSI(FormatHoldList(holds, now))
	assert.Contains(t, out, "hold-000")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "Expired", "stored flag alone does not make a hold active")
	assert.Contains(t, out, "in 13d")
}

func TestFormatRehabStart_Refused(t *testing.T) {
	out := stripANSI(FormatRehabStart(&app.StartRehabResult{
		Appropriateness: engine.Appropriateness{Warning: "Seek medical evaluation.", Matched: []string{"sharp"}},
	}, "lb"))
	assert.Contains(t, out, "not recommended")
	assert.Contains(t, out, "sharp")
}

func TestFormatRehabStart_Plan(t *testing.T) {
	out := stripANSI(FormatRehabStart(&app.StartRehabResult{
		Appropriateness: engine.Appropriateness{Appropriate: true},
		Plan: &engine.RehabPlan{
			Severity: domain.SeverityModerate, LoadReductionPct: 20,
			TargetRepMin: 10, TargetRepMax: 15, Cadence: engine.CadenceFirstTwoSets,
			MaxTestingDisabled: true,
		},
		States: []*domain.RehabState{{ExerciseID: "bench-press", PreInjuryMax: 200, CurrentWeight: 160}},
	}, "lb"))
	assert.Contains(t, out, "-20%")
	assert.Contains(t, out, "10-15")
	assert.Contains(t, out, "first two sets")
	assert.Contains(t, out, "160 lb")
	assert.Contains(t, out, "80%")
}

func TestFormatRehabProgress_ShowsHighestMilestone(t *testing.T) {
	recovery, err := engine.RecoveryProgress(160, 200)
	if err != nil {
		t.Fatal(err)
	}
	out := stripANSI(FormatRehabProgress(&app.RehabProgress{
		State:        &domain.RehabState{ExerciseID: "bench-press", PreInjuryMax: 200, CurrentWeight: 160},
		Recovery:     recovery,
		Advice:       engine.ProgressionAdvice{NextWeight: 160, Reasoning: "Hold the load."},
		SessionCount: 2,
	}, "lb"))
	assert.Contains(t, out, "Milestone: Three Quarters Strong")

	none, err := engine.RecoveryProgress(40, 200)
	if err != nil {
		t.Fatal(err)
	}
	out = stripANSI(FormatRehabProgress(&app.RehabProgress{
		State:    &domain.RehabState{ExerciseID: "bench-press", PreInjuryMax: 200, CurrentWeight: 40},
		Recovery: none,
	}, "lb"))
	assert.NotContains(t, out, "Milestone:")
}

func TestFormatReintegration_SortsExercises(t *testing.T) {
	out := stripANSI(FormatReintegration(engine.ReintegrationPlan{
		HoldDurationDays: 14, ReductionPct: 40, RehabDurationWeeks: 2,
		StartingWeights: map[string]float64{"machine-press": 100, "bench-press": 120},
		Phases:          []string{"Week 1: light", "Week 2: build"},
	}, "lb"))
	assert.Less(t, strings.Index(out, "bench-press"), strings.Index(out, "machine-press"))
	assert.Contains(t, out, "120 lb")
	assert.Contains(t, out, "2. Week 2: build")
}

func TestFormatSubstitutes(t *testing.T) {
	assert.Contains(t, stripANSI(FormatSubstitutes("leg-press", nil, "lb")), "No substitutes")

	out := stripANSI(FormatSubstitutes("bench-press", []engine.SubstituteOption{
		{VariantID: "machine-press-variant", Name: "Machine Chest Press", Equipment: domain.EquipmentMachine, IsVariant: true, Ratio: 0.85, AdjustedMax: 170},
	}, "lb"))
	assert.Contains(t, out, "Machine Chest Press")
	assert.Contains(t, out, "0.85")
	assert.Contains(t, out, "170 lb")
	assert.Contains(t, out, "variant")
}

func TestFormatFlags(t *testing.T) {
	assert.Contains(t, stripANSI(FormatFlags(nil, now)), "No coaching flags")

	out := stripANSI(FormatFlags([]domain.CoachingFlag{{
		ID: "flag-123456789", Type: domain.FlagInjuryConcern, Severity: domain.FlagHigh,
		Message: "3 injury-related cancellations", GeneratedAt: now,
	}}, now))
	assert.Contains(t, out, "injury_concern")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "today")
}

func TestFormatTimeUnderTension(t *testing.T) {
	out := stripANSI(FormatTimeUnderTension(engine.TimeUnderTension{
		TotalWorkoutTime: 3600, TotalRestTime: 450, TotalWorkTime: 3150, EstimatedTUT: 105, Efficiency: 2.9,
	}))
	assert.Contains(t, out, "60m")
	assert.Contains(t, out, "7m 30s")
	assert.Contains(t, out, "1m 45s")
}

func TestFormatComparison(t *testing.T) {
	out := stripANSI(FormatComparison(engine.WorkoutComparison{
		VolumeChange: 1750, VolumeChangePercent: 116.7, Trend: domain.TrendImproving, Message: "Great progress!",
	}, "lb"))
	assert.Contains(t, out, "IMPROVING")
	assert.Contains(t, out, "+1750 lb")
	assert.Contains(t, out, "+116.7%")
}
