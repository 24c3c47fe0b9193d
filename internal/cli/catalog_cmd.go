package cli

import (
	"fmt"

	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	muscles := newMuscleFlag()

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List known exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Catalog == nil {
				return fmt.Errorf("exercise catalog is not loaded")
			}
			var shown []domain.ExerciseProfile
			for _, ex := range app.Catalog.Exercises() {
				if len(muscles.values) == 0 || engagesAny(ex, muscles.muscles()) {
					shown = append(shown, ex)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(shown, app.Units))
			return nil
		},
	}
	cmd.Flags().Var(muscles, "muscles", "Only exercises engaging these muscle groups")
	cmd.AddCommand(newCatalogLinksCmd(app))
	return cmd
}

func newCatalogLinksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List static equivalence ratios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Catalog == nil {
				return fmt.Errorf("exercise catalog is not loaded")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLinks(app.Catalog.Links()))
			return nil
		},
	}
}

func engagesAny(ex domain.ExerciseProfile, groups []domain.MuscleGroup) bool {
	for _, g := range groups {
		if ex.Engages(g) {
			return true
		}
	}
	return false
}
