package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainload/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newLiveCmd(app *App) *cobra.Command {
	var sets int

	cmd := &cobra.Command{
		Use:   "live EXERCISE",
		Short: "Pain-gated set-by-set session for one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sets <= 0 {
				return fmt.Errorf("--sets must be positive")
			}
			if app.Catalog != nil {
				if _, ok := app.Catalog.Exercise(args[0]); !ok {
					return fmt.Errorf("unknown exercise %q", args[0])
				}
			}
			cadence, err := liveCadence(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("live sessions need an interactive terminal; use \"pain\" instead")
			}
			checkIn := app.checkInUseCase()
			if checkIn == nil {
				return fmt.Errorf("pain check-in use case is not configured")
			}

			final, err := tea.NewProgram(
				newLiveModel(checkIn, args[0], sets, cadence),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(liveModel); ok && m.err != nil {
				return m.err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&sets, "sets", 3, "Planned working sets")
	return cmd
}

// liveCadence derives the check-in cadence from the exercise's active rehab
// severity. The pain gate only runs while rehab is active.
func liveCadence(ctx context.Context, app *App, exerciseID string) (engine.PainCadence, error) {
	if app.Rehab == nil {
		return "", fmt.Errorf("rehab service is not configured")
	}
	states, err := app.Rehab.ListActive(ctx)
	if err != nil {
		return "", err
	}
	for _, st := range states {
		if st.ExerciseID == exerciseID {
			return engine.PainCadenceFor(st.Severity)
		}
	}
	return "", fmt.Errorf("%s is not in active rehab; start it with \"rehab start --exercises %s\"", exerciseID, exerciseID)
}
