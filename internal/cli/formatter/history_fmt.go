package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/calplan/internal/session"
)

// FormatHistory renders recent generation runs as a table.
func FormatHistory(runs []session.Run, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No generation runs yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := StyleGreen.Render("ok")
		if !r.Success {
			status = StyleRed.Render("failed")
		}
		rows = append(rows, []string{
			HumanTimestamp(r.StartedAt.In(now.Location()), now),
			r.Step,
			status,
			fmt.Sprintf("%d ms", r.DurationMs),
			Truncate(r.Error, 60),
		})
	}
	return RenderTable([]string{"When", "Step", "Result", "Took", "Error"}, rows)
}
