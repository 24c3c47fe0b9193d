package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/alexanderramin/trainload/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Log completed workouts",
	}
	cmd.AddCommand(newWorkoutLogCmd(app))
	return cmd
}

func newWorkoutLogCmd(app *App) *cobra.Command {
	var sets []string
	var minutes, rest, repMin, repMax int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a workout, one --set per set",
		Example: `  trainload workout log --set bench-press:185x5 --set bench-press:185x5 \
    --set lat-pulldown:120x8 --minutes 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sets) == 0 {
				return fmt.Errorf("at least one --set is required")
			}
			exercises, err := parseSets(sets, rest, repMin, repMax)
			if err != nil {
				return err
			}
			end := app.now()
			session := &domain.SessionRecord{
				StartedAt:   end.Add(-time.Duration(minutes) * time.Minute),
				CompletedAt: &end,
				Exercises:   exercises,
			}

			logWorkout := app.logWorkoutUseCase()
			if logWorkout == nil {
				return fmt.Errorf("log-workout use case is not configured")
			}
			if err := logWorkout.LogWorkout(context.Background(), session); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged workout %s: %d exercise(s), %d set(s)\n",
				formatter.TruncID(session.ID), len(exercises), len(sets))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "A set as EXERCISE:WEIGHTxREPS (repeatable)")
	cmd.Flags().IntVar(&minutes, "minutes", 60, "Workout length in minutes")
	cmd.Flags().IntVar(&rest, "rest", 90, "Rest after each set in seconds")
	cmd.Flags().IntVar(&repMin, "rep-min", 4, "Target rep range lower bound")
	cmd.Flags().IntVar(&repMax, "rep-max", 6, "Target rep range upper bound")
	return cmd
}

// parseSets groups "exercise:weightxreps" entries by exercise, keeping the
// order in which exercises first appear.
func parseSets(raw []string, rest, repMin, repMax int) ([]domain.ExerciseLog, error) {
	var logs []domain.ExerciseLog
	index := make(map[string]int)
	for _, entry := range raw {
		id, load, ok := strings.Cut(entry, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid set %q: use EXERCISE:WEIGHTxREPS", entry)
		}
		weightStr, repsStr, ok := strings.Cut(strings.ToLower(load), "x")
		if !ok {
			return nil, fmt.Errorf("invalid set %q: use EXERCISE:WEIGHTxREPS", entry)
		}
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q", entry)
		}
		reps, err := strconv.Atoi(repsStr)
		if err != nil {
			return nil, fmt.Errorf("invalid reps in %q", entry)
		}

		set := domain.SetRecord{Weight: weight, Reps: reps, TargetRepMin: repMin, TargetRepMax: repMax, RestSeconds: rest}
		i, seen := index[id]
		if !seen {
			i = len(logs)
			index[id] = i
			logs = append(logs, domain.ExerciseLog{ExerciseID: id})
		}
		logs[i].Sets = append(logs[i].Sets, set)
	}
	return logs, nil
}
