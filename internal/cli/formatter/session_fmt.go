package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// FormatSessionTable lists session records, newest first as given.
func FormatSessionTable(records []*domain.SessionRecord, now time.Time) string {
	headers := []string{"ID", "MODE", "STARTED", "PLANNED", "ACTUAL", "RESULT", "TASK"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		result := StyleGreen.Render("✔ completed")
		if !r.Completed {
			result = StyleYellow.Render("■ stopped")
		}
		task := r.TaskRef
		if len(task) > 30 {
			task = task[:27] + "..."
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			ModeStyle(r.Mode).Render(r.Mode.Label()),
			HumanTimestampFrom(r.StartedAt, now),
			FormatClock(r.PlannedSeconds),
			FormatClock(r.ActualSeconds),
			result,
			Dim(task),
		})
	}
	return RenderBox("Sessions", RenderTable(headers, rows))
}

// FormatBlockTable lists stopwatch blocks.
func FormatBlockTable(blocks []*domain.StopwatchBlock, now time.Time) string {
	headers := []string{"ID", "STARTED", "DURATION", "NOTE"}
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		note := b.Note
		if len(note) > 40 {
			note = note[:37] + "..."
		}
		rows = append(rows, []string{
			TruncID(b.ID),
			HumanTimestampFrom(b.StartedAt, now),
			FormatClock(b.Seconds),
			Dim(note),
		})
	}
	return RenderBox("Stopwatch", RenderTable(headers, rows))
}

// FormatRemoved confirms a deletion.
func FormatRemoved(kind, id string) string {
	return fmt.Sprintf("Removed %s %s", kind, TruncID(id))
}
