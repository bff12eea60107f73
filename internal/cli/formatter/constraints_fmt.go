package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/calplan/internal/domain"
)

// FormatConstraints renders the constraint summary: working hours, density
// and each preference with its id.
func FormatConstraints(sc *domain.SchedulingConstraints) string {
	var b strings.Builder
	b.WriteString(Header("Constraints") + "\n")
	fmt.Fprintf(&b, "Working hours   %s - %s\n", Bold(sc.WorkingHoursStart), Bold(sc.WorkingHoursEnd))
	fmt.Fprintf(&b, "Meeting density %s\n\n", Bold(sc.MeetingDensity.Label()))

	if len(sc.Constraints) == 0 {
		b.WriteString(Dim("No scheduling preferences.") + "\n")
		return b.String()
	}
	for _, c := range sc.Constraints {
		fmt.Fprintf(&b, "  %s %s %s\n", Dim("•"), c.Description, Dim("["+shortID(c.ID)+"]"))
	}
	return b.String()
}

// FormatExamples lists the suggested constraints with their 1-based index.
func FormatExamples(examples []string, has func(string) bool) string {
	var b strings.Builder
	for i, e := range examples {
		mark := " "
		if has != nil && has(e) {
			mark = StyleGreen.Render("✔")
		}
		fmt.Fprintf(&b, "  %s %s %s\n", mark, Dim(fmt.Sprintf("%d.", i+1)), e)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
