package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	trainapp "github.com/alexanderramin/trainload/internal/app"
	"github.com/alexanderramin/trainload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPainCmd(app *App) *cobra.Command {
	var set, level int
	var note string

	cmd := &cobra.Command{
		Use:   "pain EXERCISE",
		Short: "Record pain after a set and get a continue/stop decision",
		Long: `Record a 0-10 pain reading after a completed set.

Without --level an interactive prompt asks for the reading.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := trainapp.NewCheckInRequest(args[0])
			req.SetNumber = set
			req.Note = note

			if cmd.Flags().Changed("level") {
				req.PainLevel = level
			} else {
				if !app.interactive() {
					return fmt.Errorf("--level is required when not running in a terminal")
				}
				var levelStr string
				if err := painCheckInForm(args[0], set, &levelStr, &req.Note).Run(); err != nil {
					return err
				}
				v, err := strconv.Atoi(strings.TrimSpace(levelStr))
				if err != nil {
					return fmt.Errorf("invalid pain level %q", levelStr)
				}
				req.PainLevel = v
			}

			checkIn := app.checkInUseCase()
			if checkIn == nil {
				return fmt.Errorf("pain check-in use case is not configured")
			}
			res, err := checkIn.CheckIn(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGateDecision(res.Decision))
			return nil
		},
	}
	cmd.Flags().IntVar(&set, "set", 1, "Set number just completed")
	cmd.Flags().IntVar(&level, "level", 0, "Pain level 0-10")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	return cmd
}
