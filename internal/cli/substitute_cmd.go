package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/alexanderramin/trainload/internal/engine"
	"github.com/spf13/cobra"
)

func newSubstituteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "substitute",
		Aliases: []string{"sub"},
		Short:   "Find equivalent exercises and convert weights",
	}

	cmd.AddCommand(
		newSubstituteRankCmd(app),
		newSubstituteResolveCmd(app),
		newSubstituteCheckCmd(app),
		newSubstituteEmergencyCmd(app),
		newSubstituteConvertCmd(app),
	)

	return cmd
}

func newSubstituteRankCmd(app *App) *cobra.Command {
	var currentMax float64

	cmd := &cobra.Command{
		Use:   "rank EXERCISE",
		Short: "Rank substitutes by how little the load changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := app.Substitutions.Rank(context.Background(), args[0], currentMax)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubstitutes(args[0], options, app.Units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&currentMax, "max", 0, "Current max (default: latest recorded)")
	return cmd
}

func newSubstituteResolveCmd(app *App) *cobra.Command {
	var weight float64
	var variant string

	cmd := &cobra.Command{
		Use:   "resolve FROM [TO]",
		Short: "Convert a weight to another exercise or variant",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := engine.ResolveInput{OriginalID: args[0], OriginalWeight: weight, VariantID: variant}
			if len(args) == 2 {
				in.TargetID = args[1]
			}
			if in.TargetID == "" && in.VariantID == "" {
				return fmt.Errorf("give a target exercise or --variant")
			}
			adj, err := app.Substitutions.Resolve(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAdjustedWeight(adj, app.Units))
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight on the original exercise (default: latest max)")
	cmd.Flags().StringVar(&variant, "variant", "", "Target variant ID")
	return cmd
}

func newSubstituteCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check ORIGINAL SUBSTITUTE",
		Short: "Compare muscle coverage of two exercises",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Substitutions.Validate(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubstitutionCheck(c))
			return nil
		},
	}
}

func newSubstituteEmergencyCmd(app *App) *cobra.Command {
	unavailable := newEquipmentFlag()

	cmd := &cobra.Command{
		Use:   "emergency EXERCISE",
		Short: "Pick the best substitute when equipment is taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Substitutions.Emergency(context.Background(), args[0], unavailable.equipment())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmergency(o, unavailable.equipment(), app.Units))
			return nil
		},
	}
	cmd.Flags().Var(unavailable, "unavailable", "Equipment that is not available (comma-separated)")
	return cmd
}

func newSubstituteConvertCmd(app *App) *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "convert FROM [TO]",
		Short: "Carry the latest recorded max over to another exercise",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var to string
			if len(args) == 2 {
				to = args[1]
			}
			if to == "" && variant == "" {
				return fmt.Errorf("give a target exercise or --variant")
			}
			w, err := app.Substitutions.ConvertMax(context.Background(), args[0], to, variant)
			if err != nil {
				return err
			}
			target := to
			if variant != "" {
				target = variant
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Estimated %s max: %s\n", target, formatter.Bold(formatter.FormatWeight(w, app.Units)))
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "Target variant ID")
	return cmd
}
