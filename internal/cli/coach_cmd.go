package cli

import (
	"context"
	"fmt"
	"time"

	trainapp "github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/spf13/cobra"
)

func newCoachCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Maxes, attempts, missed sessions and coaching flags",
	}

	cmd.AddCommand(
		newCoachEvaluateCmd(app),
		newCoachFlagsCmd(app),
		newCoachAckCmd(app),
		newCoachMaxCmd(app),
		newCoachMaxesCmd(app),
		newCoachAttemptCmd(app),
		newCoachMissedCmd(app),
		newCoachSuccessCmd(app),
		newCoachDetrainingCmd(app),
	)

	return cmd
}

func newCoachEvaluateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Run every flag detector over recent history",
		RunE: func(cmd *cobra.Command, args []string) error {
			evaluate := app.evaluateFlagsUseCase()
			if evaluate == nil {
				return fmt.Errorf("evaluate-flags use case is not configured")
			}
			flags, err := evaluate.Evaluate(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFlags(flags, app.now()))
			return nil
		},
	}
}

func newCoachFlagsCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "List coaching flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := app.Coaching.ListFlags(context.Background(), all)
			if err != nil {
				return err
			}
			flags := make([]domain.CoachingFlag, len(stored))
			for i, f := range stored {
				flags[i] = *f
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFlags(flags, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include acknowledged flags")
	return cmd
}

func newCoachAckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ack ID",
		Short: "Acknowledge a coaching flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveFlagID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Coaching.Acknowledge(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Acknowledged flag %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newCoachMaxCmd(app *App) *cobra.Command {
	var weight float64

	cmd := &cobra.Command{
		Use:   "max EXERCISE",
		Short: "Record a tested four-rep max",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Coaching.RecordMax(context.Background(), args[0], weight)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s max: %s\n", m.ExerciseID, formatter.FormatWeight(m.Weight, app.Units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Max weight")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newCoachMaxesCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "maxes",
		Short: "Show the latest max per exercise, or history with --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if days > 0 {
				since := app.now().Add(-time.Duration(days) * 24 * time.Hour)
				records, err := app.Coaching.MaxHistory(ctx, since)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMaxHistory(records, app.Units))
				return nil
			}
			latest, err := app.Coaching.LatestMaxes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMaxes(latest, app.Units, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "List every max from the last N days")
	return cmd
}

func newCoachAttemptCmd(app *App) *cobra.Command {
	var weight float64
	var reps int
	var success bool

	cmd := &cobra.Command{
		Use:   "attempt EXERCISE",
		Short: "Record a max-testing attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Coaching.RecordAttempt(context.Background(), trainapp.RecordAttemptRequest{
				ExerciseID: args[0],
				Weight:     weight,
				Reps:       reps,
				Successful: success,
			})
			if err != nil {
				return err
			}
			outcome := formatter.StyleYellow.Render("missed")
			if a.Successful {
				outcome = formatter.StyleGreen.Render("new max")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attempt on %s at %s: %s\n", a.ExerciseID, formatter.FormatWeight(a.Weight, app.Units), outcome)
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight attempted")
	cmd.Flags().IntVar(&reps, "reps", 0, "Reps completed")
	cmd.Flags().BoolVar(&success, "success", false, "The attempt succeeded")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newCoachMissedCmd(app *App) *cobra.Command {
	var reason, note, date string

	cmd := &cobra.Command{
		Use:   "missed",
		Short: "Record a missed session",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := app.now()
			if date != "" {
				t, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
				}
				at = t
			}
			req := trainapp.NewRecordMissedRequest(at)
			req.Reason = domain.MissedReason(reason)
			req.Note = note
			m, err := app.Coaching.RecordMissed(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded missed session on %s (%s)\n", formatter.FormatDate(m.ScheduledAt), m.Reason)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", string(domain.MissedOther), "injury, no_gym_access, time_constraints or other")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().StringVar(&date, "date", "", "Scheduled date YYYY-MM-DD (default today)")
	return cmd
}

func newCoachSuccessCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "success-rate",
		Short: "Max-testing success rate over 90 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Coaching.SuccessRate(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSuccessRate(r))
			return nil
		},
	}
}

func newCoachDetrainingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detraining",
		Short: "How much to back off after time away",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Coaching.Detraining(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDetraining(d))
			return nil
		},
	}
}
