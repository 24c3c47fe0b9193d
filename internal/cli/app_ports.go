package cli

import (
	"time"

	"github.com/alexanderramin/trainload/internal/app"
)

func (a *App) checkInUseCase() app.PainCheckInUseCase {
	if a.CheckIn != nil {
		return a.CheckIn
	}
	return a.Rehab
}

func (a *App) logWorkoutUseCase() app.LogWorkoutUseCase {
	if a.LogWorkout != nil {
		return a.LogWorkout
	}
	return a.Analytics
}

func (a *App) evaluateFlagsUseCase() app.EvaluateFlagsUseCase {
	if a.EvaluateFlags != nil {
		return a.EvaluateFlags
	}
	return a.Coaching
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) holdWeeks() int {
	if a.HoldWeeks > 0 {
		return a.HoldWeeks
	}
	return app.DefaultHoldWeeks
}
