package engine

import "fmt"

type DetrainingResponse struct {
	DaysMissed        int
	ReductionPct      int
	DisableMaxTesting bool
	RestartInRehab    bool
	Recommendation    string
}

// AssessDetraining maps days since the last workout to a load response.
// Within each band the shorter half takes the smaller reduction.
func AssessDetraining(daysMissed int) (DetrainingResponse, error) {
	if daysMissed < 0 {
		return DetrainingResponse{}, invalid(CodeInvalidDuration, "days_missed", "days missed cannot be negative, got %d", daysMissed)
	}

	r := DetrainingResponse{DaysMissed: daysMissed}
	switch {
	case daysMissed <= 3:
		r.Recommendation = "Resume normal training. No adjustment needed."
	case daysMissed <= 7:
		r.ReductionPct = 5
		if daysMissed > 5 {
			r.ReductionPct = 10
		}
		r.Recommendation = fmt.Sprintf("Reduce working weights by %d%% for your first session back.", r.ReductionPct)
	case daysMissed <= 21:
		r.ReductionPct = 10
		if daysMissed > 14 {
			r.ReductionPct = 20
		}
		r.DisableMaxTesting = true
		r.Recommendation = fmt.Sprintf("Reduce working weights by %d%% and skip max testing until you have rebuilt for a week.", r.ReductionPct)
	default:
		r.ReductionPct = 20
		r.DisableMaxTesting = true
		r.RestartInRehab = true
		r.Recommendation = "Restart in Rehab Mode and rebuild gradually before returning to normal training."
	}
	return r, nil
}
