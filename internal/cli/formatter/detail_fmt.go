package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/calplan/internal/calendar"
)

// FormatDetail renders one event's detail panel.
func FormatDetail(d calendar.Detail) string {
	var b strings.Builder

	title := SwatchStyle(d.Swatch).Bold(true).Render(d.Title)
	if d.Flexible {
		title += "  " + StyleGreen.Render("[flexible]")
	}
	b.WriteString(title + "\n\n")

	fmt.Fprintf(&b, "%s  %s\n", Dim("When"), d.Day+", "+d.TimeRange)
	if d.Location != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Where"), d.Location)
	}

	if len(d.Participants) > 0 {
		b.WriteString("\n" + Bold("Participants") + "\n")
		for _, p := range d.Participants {
			line := p.Name
			if p.Role != "" {
				line += Dim(" - " + p.Role)
			}
			b.WriteString("  " + line + "\n")
		}
	}

	if d.Description != "" {
		b.WriteString("\n" + Bold("Description") + "\n")
		b.WriteString(d.Description + "\n")
	}

	if len(d.Objectives) > 0 {
		b.WriteString("\n" + Bold("Objectives") + "\n")
		for _, o := range d.Objectives {
			label := ObjectiveStyle(o.Index).Render(fmt.Sprintf("Objectif %d", o.Index))
			text := o.Text
			if text == "" {
				text = Dim("(no context loaded)")
			}
			b.WriteString("  " + label + "  " + text + "\n")
		}
	}
	return b.String()
}
