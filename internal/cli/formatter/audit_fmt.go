package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/calplan/internal/calendar"
)

// FormatAudit renders an audit report. A clean report is one line.
func FormatAudit(r calendar.Report) string {
	if r.Clean() {
		return StyleGreen.Render("✔") + " No overlaps, every fixed commitment kept.\n"
	}

	var b strings.Builder
	if len(r.Overlaps) > 0 {
		b.WriteString(Header(fmt.Sprintf("Overlaps (%d)", len(r.Overlaps))) + "\n")
		for _, o := range r.Overlaps {
			fmt.Fprintf(&b, "  %s %s %s\n    %s %s\n",
				StyleYellow.Render("▲"), Bold(o.First.Event.Title), Dim(placedWhen(o.First)),
				Bold(o.Second.Event.Title), Dim(placedWhen(o.Second)))
		}
		b.WriteString("\n")
	}
	if len(r.Missing) > 0 {
		b.WriteString(Header(fmt.Sprintf("Missing commitments (%d)", len(r.Missing))) + "\n")
		for _, m := range r.Missing {
			fmt.Fprintf(&b, "  %s %s %s\n", StyleRed.Render("✖"), Bold(m.Title), Dim(m.StartTime+" - "+m.EndTime))
		}
		b.WriteString("\n")
	}
	if len(r.Moved) > 0 {
		b.WriteString(Header(fmt.Sprintf("Moved commitments (%d)", len(r.Moved))) + "\n")
		for _, mv := range r.Moved {
			fmt.Fprintf(&b, "  %s %s %s %s\n", StyleYellow.Render("↷"), Bold(mv.Meeting.Title),
				Dim(mv.Meeting.StartTime+" →"), placedWhen(mv.Event))
		}
		b.WriteString("\n")
	}
	if len(r.Unparsable) > 0 {
		b.WriteString(Header(fmt.Sprintf("Unreadable events (%d)", len(r.Unparsable))) + "\n")
		for _, err := range r.Unparsable {
			b.WriteString("  " + Dim(err.Error()) + "\n")
		}
	}
	return b.String()
}

func placedWhen(p calendar.Placed) string {
	return p.Start.Format("Mon 2 Jan") + " " + calendar.TimeRange(p)
}
