package cli

import (
	"time"

	trainapp "github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/catalog"
	"github.com/alexanderramin/trainload/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Holds         service.HoldService
	Rehab         service.RehabService
	Substitutions service.SubstitutionService
	Analytics     service.AnalyticsService
	Coaching      service.CoachingService
	Catalog       *catalog.Catalog

	// Units labels every rendered load ("lb" or "kg").
	Units string
	// HoldWeeks is the default hold length for new holds.
	HoldWeeks int

	// Optional narrow use-case ports. When nil the services above are used.
	CheckIn       trainapp.PainCheckInUseCase
	LogWorkout    trainapp.LogWorkoutUseCase
	EvaluateFlags trainapp.EvaluateFlagsUseCase

	// IsInteractive reports whether prompts may be shown on stdin.
	IsInteractive func() bool
	// Now is the reference time for relative dates in output.
	Now func() time.Time
}

// NewRootCmd creates the top-level "trainload" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "trainload",
		Short:         "Training load and recovery decisions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newHoldCmd(app),
		newRehabCmd(app),
		newPainCmd(app),
		newLiveCmd(app),
		newSubstituteCmd(app),
		newWorkoutCmd(app),
		newAnalyticsCmd(app),
		newCoachCmd(app),
		newCatalogCmd(app),
	)

	return root
}
