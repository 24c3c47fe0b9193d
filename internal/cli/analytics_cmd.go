package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAnalyticsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"stats"},
		Short:   "Volume, intensity and balance of logged workouts",
	}

	cmd.AddCommand(
		workoutReportCmd(app, "volume", "Volume per exercise and muscle group", func(ctx context.Context, id string) (string, error) {
			r, err := app.Analytics.Volume(ctx, id)
			return formatter.FormatVolume(r, app.Units), err
		}),
		workoutReportCmd(app, "intensity", "Sets per intensity zone against recorded maxes", func(ctx context.Context, id string) (string, error) {
			r, err := app.Analytics.Intensity(ctx, id)
			return formatter.FormatIntensity(r), err
		}),
		workoutReportCmd(app, "tut", "Estimated time under tension", func(ctx context.Context, id string) (string, error) {
			r, err := app.Analytics.TimeUnderTension(ctx, id)
			return formatter.FormatTimeUnderTension(r), err
		}),
		workoutReportCmd(app, "balance", "Muscle group balance and push/pull ratio", func(ctx context.Context, id string) (string, error) {
			r, err := app.Analytics.Balance(ctx, id)
			return formatter.FormatBalance(r), err
		}),
		newAnalyticsCompareCmd(app),
		newAnalyticsTrendsCmd(app),
		newAnalyticsFormCmd(app),
	)

	return cmd
}

// workoutReportCmd builds a per-workout report command. --workout selects
// a workout; the latest is used otherwise.
func workoutReportCmd(app *App, use, short string, render func(ctx context.Context, workoutID string) (string, error)) *cobra.Command {
	var workoutID string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := render(context.Background(), workoutID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&workoutID, "workout", "", "Workout ID (default: latest)")
	return cmd
}

func newAnalyticsCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the latest workout with the one before it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Analytics.Compare(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatComparison(c, app.Units))
			return nil
		},
	}
}

func newAnalyticsTrendsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Volume across recent workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := app.Analytics.Trends(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrends(points, app.Units))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of recent workouts")
	return cmd
}

func newAnalyticsFormCmd(app *App) *cobra.Command {
	var weight float64

	cmd := &cobra.Command{
		Use:   "form EXERCISE",
		Short: "Check whether the next set calls for a form review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Analytics.FormCheck(context.Background(), args[0], weight)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFormCheck(r, app.Units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Planned weight for the next set")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}
