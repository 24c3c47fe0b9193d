package cli

import (
	"context"
	"fmt"
	"time"

	trainapp "github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHoldCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hold",
		Short: "Pause training for injured muscle groups",
	}

	cmd.AddCommand(
		newHoldCreateCmd(app),
		newHoldListCmd(app),
		newHoldShowCmd(app),
		newHoldResizeCmd(app),
		newHoldEndCmd(app),
		newHoldPreviewCmd(app),
		newHoldFilterCmd(app),
		newHoldSummaryCmd(app),
		newHoldAlternativesCmd(app),
		newHoldReintegrateCmd(app),
		newHoldExpireCmd(app),
	)

	return cmd
}

// holdRequestFlags collects the flags shared by create and preview.
type holdRequestFlags struct {
	muscles  *listFlag
	patterns *listFlag
	severity string
	weeks    int
	reason   string
	start    string
}

func (f *holdRequestFlags) register(cmd *cobra.Command, defaultWeeks int) {
	f.muscles = newMuscleFlag()
	f.patterns = newPatternFlag()
	addHoldFlags(cmd.Flags(), f.muscles, f.patterns, &f.severity, &f.weeks, defaultWeeks, &f.reason)
	cmd.Flags().StringVar(&f.start, "start", "", "Start date YYYY-MM-DD (default today)")
}

func (f *holdRequestFlags) request() (trainapp.CreateHoldRequest, error) {
	sev, err := parseSeverity(f.severity)
	if err != nil {
		return trainapp.CreateHoldRequest{}, err
	}
	req := trainapp.NewCreateHoldRequest()
	req.Severity = sev
	req.MuscleGroups = f.muscles.muscles()
	req.MovementPatterns = f.patterns.patterns()
	req.Reason = f.reason
	req.DurationWeeks = f.weeks
	if f.start != "" {
		t, err := time.Parse("2006-01-02", f.start)
		if err != nil {
			return trainapp.CreateHoldRequest{}, fmt.Errorf("invalid --start %q: use YYYY-MM-DD", f.start)
		}
		req.StartDate = &t
	}
	if len(req.MuscleGroups) == 0 && len(req.MovementPatterns) == 0 {
		return trainapp.CreateHoldRequest{}, fmt.Errorf("a hold needs --muscles or --patterns")
	}
	return req, nil
}

func newHoldCreateCmd(app *App) *cobra.Command {
	var flags holdRequestFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place a new injury hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			h, err := app.Holds.Create(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHold(*h, app.now()))
			return nil
		},
	}
	flags.register(cmd, app.holdWeeks())
	return cmd
}

func newHoldListCmd(app *App) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List injury holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			list := app.Holds.List
			if activeOnly {
				list = app.Holds.ListActive
			}
			holds, err := list(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHoldList(holds, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only show holds in effect now")
	return cmd
}

func newHoldShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveHoldID(ctx, app, args[0])
			if err != nil {
				return err
			}
			h, err := app.Holds.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHold(*h, app.now()))
			return nil
		},
	}
}

func newHoldResizeCmd(app *App) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "resize ID",
		Short: "Change a hold's length, measured from its start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveHoldID(ctx, app, args[0])
			if err != nil {
				return err
			}
			h, err := app.Holds.Resize(ctx, id, weeks)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHold(*h, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 0, "New duration in weeks")
	_ = cmd.MarkFlagRequired("weeks")
	return cmd
}

func newHoldEndCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "end ID",
		Short: "End a hold early",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveHoldID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				confirmed := false
				if err := confirmForm("End this hold now?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Hold left in place.")
					return nil
				}
			}
			h, err := app.Holds.EndEarly(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHold(*h, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newHoldPreviewCmd(app *App) *cobra.Command {
	var flags holdRequestFlags
	plan := newIDFlag()

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show which exercises a hold would remove, without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			impact, err := app.Holds.Preview(context.Background(), req, plan.values)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHoldImpact(impact))
			return nil
		},
	}
	flags.register(cmd, app.holdWeeks())
	cmd.Flags().Var(plan, "plan", "Planned exercise IDs (default: whole catalog)")
	return cmd
}

func newHoldFilterCmd(app *App) *cobra.Command {
	plan := newIDFlag()

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Remove held exercises from a workout plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := plan.values
			if len(ids) == 0 {
				ids = allExerciseIDs(app)
			}
			adj, err := app.Holds.FilterPlan(context.Background(), ids)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanAdjustment(adj))
			return nil
		},
	}
	cmd.Flags().Var(plan, "plan", "Planned exercise IDs (default: whole catalog)")
	return cmd
}

func newHoldSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize active holds and the hold timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, timeline, err := app.Holds.Summary(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHoldSummary(summary, timeline))
			return nil
		},
	}
}

func newHoldAlternativesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives",
		Short: "Suggest what to train while holds are active",
		RunE: func(cmd *cobra.Command, args []string) error {
			alt, err := app.Holds.Alternatives(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAlternatives(alt))
			return nil
		},
	}
}

func newHoldReintegrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reintegrate ID",
		Short: "Plan starting weights for returning after a hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveHoldID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Holds.Reintegration(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReintegration(plan, app.Units))
			return nil
		},
	}
}

func newHoldExpireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Mark lapsed holds inactive",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Holds.ExpireHolds(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expired %d hold(s).\n", n)
			return nil
		},
	}
}
