package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/spf13/cobra"
)

type dayJSON struct {
	Date                 string `json:"date"`
	SessionCount         int    `json:"sessionCount"`
	PomodoroSessionCount int    `json:"pomodoroSessionCount"`
	FreeRunningSeconds   int    `json:"freeRunningSeconds"`
	PomodoroSeconds      int    `json:"pomodoroSeconds"`
	TotalFocusMinutes    int    `json:"totalFocusMinutes"`
	Intensity            int    `json:"intensity"`
}

type activityJSON struct {
	Start         string    `json:"startDate"`
	End           string    `json:"endDate"`
	Tier          string    `json:"tier"`
	TotalSessions int       `json:"totalSessions"`
	TotalMinutes  int       `json:"totalMinutes"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
	Days          []dayJSON `json:"days"`
}

func toActivityJSON(w domain.ActivityWindow) activityJSON {
	out := activityJSON{
		Start:         w.StartDate.Format(domain.DateLayout),
		End:           w.EndDate.Format(domain.DateLayout),
		Tier:          string(w.Tier),
		TotalSessions: w.TotalSessions,
		TotalMinutes:  w.TotalMinutes,
		CurrentStreak: w.CurrentStreak,
		LongestStreak: w.LongestStreak,
		Days:          make([]dayJSON, 0, len(w.Days)),
	}
	for _, d := range w.Days {
		out.Days = append(out.Days, dayJSON{
			Date:                 d.Date.Format(domain.DateLayout),
			SessionCount:         d.SessionCount,
			PomodoroSessionCount: d.PomodoroSessionCount,
			FreeRunningSeconds:   d.FreeRunningSeconds,
			PomodoroSeconds:      d.PomodoroSeconds,
			TotalFocusMinutes:    d.TotalFocusMinutes,
			Intensity:            d.IntensityLevel,
		})
	}
	return out
}

func newActivityCmd(app *App) *cobra.Command {
	var from, to dateFlag
	var weeks int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the activity heatmap with streaks and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if weeks <= 0 {
				return fmt.Errorf("--weeks must be positive")
			}
			end := to.or(app.Activity.Today())
			start := from.or(service.TrailingRange(end, weeks*7).Start)

			w, err := app.Activity.GetActivity(cmd.Context(), start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(toActivityJSON(w))
			}

			grid, err := analytics.BuildGrid(w.Days, w.StartDate, w.EndDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatActivity(w, grid))
			return nil
		},
	}

	cmd.Flags().Var(&from, "from", "First date (YYYY-MM-DD); defaults to --weeks before --to")
	cmd.Flags().Var(&to, "to", "Last date (YYYY-MM-DD); defaults to today")
	cmd.Flags().IntVar(&weeks, "weeks", 26, "Number of weeks to show when --from is omitted")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the activity window as JSON")

	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Compare the last 7, 30 and 365 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.Activity.Today()
			labels := []string{"7 days", "30 days", "365 days"}
			ranges := []service.DateRange{
				service.TrailingRange(today, 7),
				service.TrailingRange(today, 30),
				service.TrailingRange(today, 365),
			}

			windows, err := app.Activity.GetWindows(cmd.Context(), ranges)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(labels, windows))
			return nil
		},
	}
}
