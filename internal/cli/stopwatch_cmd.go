package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newStopwatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Record focus time kept outside the timer",
	}

	cmd.AddCommand(
		newStopwatchLogCmd(app),
		newStopwatchListCmd(app),
	)

	return cmd
}

func newStopwatchLogCmd(app *App) *cobra.Command {
	var minutes int
	var at, note string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a block of free-running focus time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes == 0 && app.interactive() {
				minStr := ""
				if err := stopwatchForm(&minStr, &note).Run(); err != nil {
					return err
				}
				minutes, _ = strconv.Atoi(minStr)
			}
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}
			if err := validateOptionalTime(at); err != nil {
				return fmt.Errorf("--at: %w", err)
			}

			b := &domain.StopwatchBlock{Seconds: minutes * 60, Note: note}
			if at != "" {
				b.StartedAt, _ = time.Parse(time.RFC3339, at)
			}
			if err := app.Stopwatch.LogBlock(cmd.Context(), b); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s of focus (%s)\n",
				formatter.FormatMinutes(minutes), formatter.TruncID(b.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Block duration in minutes")
	cmd.Flags().StringVar(&at, "at", "", "Start time (RFC 3339); defaults to minutes before now")
	cmd.Flags().StringVar(&note, "note", "", "Block note")

	return cmd
}

func newStopwatchListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent stopwatch blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := app.Stopwatch.ListRecent(cmd.Context(), days)
			if err != nil {
				return err
			}
			if len(blocks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stopwatch blocks found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBlockTable(blocks, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of recent days to show")

	return cmd
}
