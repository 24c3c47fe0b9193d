package cli

import (
	"context"
	"fmt"

	trainapp "github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRehabCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rehab",
		Short: "Train back from an injury at reduced load",
	}

	cmd.AddCommand(
		newRehabStartCmd(app),
		newRehabStatusCmd(app),
		newRehabLogCmd(app),
		newRehabProgressCmd(app),
		newRehabGraduateCmd(app),
		newRehabSummaryCmd(app),
		newRehabReportCmd(app),
		newRehabExitCmd(app),
	)

	return cmd
}

func newRehabStartCmd(app *App) *cobra.Command {
	var severity, description string
	exercises := newIDFlag()

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Enter rehab mode for some or all exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := parseSeverity(severity)
			if err != nil {
				return err
			}
			req := trainapp.NewStartRehabRequest()
			req.Severity = sev
			req.Description = description
			req.ExerciseIDs = exercises.values

			res, err := app.Rehab.Start(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRehabStart(res, app.Units))
			return nil
		},
	}
	cmd.Flags().StringVar(&severity, "severity", "mild", "Injury severity: mild, moderate, severe")
	cmd.Flags().StringVar(&description, "description", "", "Describe the injury; red-flag symptoms block rehab mode")
	cmd.Flags().Var(exercises, "exercises", "Exercise IDs (default: every exercise with a max)")
	return cmd
}

func newRehabStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List exercises currently in rehab",
		RunE: func(cmd *cobra.Command, args []string) error {
			states, err := app.Rehab.ListActive(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRehabStates(states, app.Units))
			return nil
		},
	}
}

func newRehabLogCmd(app *App) *cobra.Command {
	var weight float64
	var pain int

	cmd := &cobra.Command{
		Use:   "log EXERCISE",
		Short: "Log a rehab session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := trainapp.LogRehabSessionRequest{ExerciseID: args[0], Weight: weight}
			if cmd.Flags().Changed("pain") {
				req.PainLevel = &pain
			}
			s, err := app.Rehab.LogSession(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s at %s (%s of pre-injury max)\n",
				s.ExerciseID, formatter.FormatWeight(s.CurrentWeight, app.Units),
				formatter.FormatPct(100*s.CurrentWeight/s.PreInjuryMax))
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Working weight used")
	cmd.Flags().IntVar(&pain, "pain", 0, "Pain level 0-10 (omit if not recorded)")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func newRehabProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress EXERCISE",
		Short: "Show recovery and next-session advice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Rehab.Progress(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRehabProgress(p, app.Units))
			return nil
		},
	}
}

func newRehabGraduateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "graduate EXERCISE",
		Short: "Check whether an exercise can leave rehab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Rehab.Graduation(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGraduation(r))
			return nil
		},
	}
}

func newRehabSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize the current rehab block",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Rehab.Summary(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRehabSummary(s))
			return nil
		},
	}
}

func newRehabReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report EXERCISE",
		Short: "Pain report for a coach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Rehab.PainReport(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPainReport(args[0], r))
			return nil
		},
	}
}

func newRehabExitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "Leave rehab mode once every exercise has recovered",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Rehab.Exit(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExitAssessment(a))
			return nil
		},
	}
}
