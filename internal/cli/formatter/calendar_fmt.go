package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/calplan/internal/calendar"
)

// LinesPerHour is how many terminal lines one grid hour occupies.
const LinesPerHour = 2

const (
	hourLabelWidth  = 6
	defaultColWidth = 16
)

// WeekGrid is everything needed to draw one week.
type WeekGrid struct {
	Week     calendar.Week
	Events   []calendar.Placed
	Hours    calendar.HourRange
	Today    time.Time
	Selected int // batch index of the highlighted event, -1 for none
	ColWidth int
}

type gridCell struct {
	text     string
	swatch   calendar.Swatch
	selected bool
	filled   bool
}

// RenderWeek draws the week as hour rows by day columns. Each event fills
// the lines its layout covers; lines past the last hour are clipped.
func RenderWeek(g WeekGrid) string {
	colWidth := g.ColWidth
	if colWidth <= 0 {
		colWidth = defaultColWidth
	}
	rows := g.Hours.Rows()
	totalLines := len(rows) * LinesPerHour
	unitsPerLine := float64(calendar.UnitsPerHour) / LinesPerHour

	cols := calendar.EventsForWeek(g.Events, g.Week)
	var cells [calendar.DaysPerWeek][]gridCell
	for d := range cols {
		cells[d] = make([]gridCell, totalLines)
		for _, p := range cols[d] {
			layout := g.Hours.Place(p)
			first := int(layout.Top / unitsPerLine)
			n := max(1, int(math.Ceil(layout.Bottom()/unitsPerLine))-first)
			swatch := calendar.ColorFor(p.Event.Description, p.Event.Title)
			for i := 0; i < n && first+i < totalLines; i++ {
				c := gridCell{swatch: swatch, selected: p.Index == g.Selected, filled: true}
				switch i {
				case 0:
					c.text = p.Event.Title
					if c.selected {
						c.text = "▶" + c.text
					}
				case 1:
					c.text = calendar.TimeRange(p)
				}
				cells[d][first+i] = c
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", hourLabelWidth))
	for _, day := range g.Week.Days() {
		label := day.Format("Mon 2")
		style := StyleBold
		if calendar.SameDay(day, g.Today) {
			style = StyleHeader
		}
		b.WriteString(" " + style.Render(Pad(label, colWidth)))
	}
	b.WriteString("\n")

	for line := 0; line < totalLines; line++ {
		label := ""
		if line%LinesPerHour == 0 {
			label = fmt.Sprintf("%02d:00", rows[line/LinesPerHour])
		}
		b.WriteString(Dim(Pad(label, hourLabelWidth)))
		for d := range cells {
			b.WriteString(" " + renderCell(cells[d][line], colWidth, line%LinesPerHour == 0))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c gridCell, width int, hourLine bool) string {
	if !c.filled {
		if hourLine {
			return Dim(strings.Repeat("┈", width))
		}
		return strings.Repeat(" ", width)
	}
	style := EventBlock(c.swatch)
	if c.selected {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(Pad(Truncate(c.text, width), width))
}

// FormatAgenda lists the week's events day by day, for plain output.
func FormatAgenda(w calendar.Week, events []calendar.Placed) string {
	var b strings.Builder
	b.WriteString(Header("Week of "+w.Start.Format("2 January 2006")) + "\n")
	cols := calendar.EventsForWeek(events, w)
	empty := true
	for i, day := range w.Days() {
		if len(cols[i]) == 0 {
			continue
		}
		empty = false
		b.WriteString("\n" + Bold(day.Format("Monday 2 January")) + "\n")
		for _, p := range cols[i] {
			swatch := calendar.ColorFor(p.Event.Description, p.Event.Title)
			line := fmt.Sprintf("  %s  %s", Dim(calendar.TimeRange(p)), SwatchStyle(swatch).Render(p.Event.Title))
			if calendar.IsFlexible(p.Event.Description) {
				line += " " + StyleGreen.Render("[flexible]")
			}
			if p.Event.Location != "" {
				line += " " + Dim("@ "+p.Event.Location)
			}
			b.WriteString(line + "\n")
		}
	}
	if empty {
		b.WriteString(Dim("No events this week.") + "\n")
	}
	return b.String()
}

// FormatObjectiveCoverage shows each objective, its placement hint and how
// many events of the batch reference it.
func FormatObjectiveCoverage(objectives []string, events []calendar.Placed) string {
	var b strings.Builder
	b.WriteString(Header("Objectives") + "\n")
	if len(objectives) == 0 {
		b.WriteString(Dim("No context loaded.") + "\n")
		return b.String()
	}
	counts := make(map[int]int)
	for _, p := range events {
		for _, n := range calendar.ReferencedObjectives(p.Event.Description) {
			counts[n]++
		}
	}
	for i, o := range objectives {
		n := i + 1
		style := ObjectiveStyle(n)
		fmt.Fprintf(&b, "\n%s  %s\n", style.Render(fmt.Sprintf("Objectif %d", n)), Bold(o))
		if i < len(calendar.ObjectiveHints) {
			b.WriteString("  " + Dim(calendar.ObjectiveHints[i]) + "\n")
		}
		b.WriteString("  " + RenderShare(counts[n], len(events), 20, style.UnsetBold()) + " events\n")
	}
	return b.String()
}

// GridWidth is the rendered width of a week grid with the given columns.
func GridWidth(colWidth int) int {
	return hourLabelWidth + calendar.DaysPerWeek*(colWidth+1)
}

// ColWidthFor picks a column width that fits the terminal width.
func ColWidthFor(termWidth int) int {
	if termWidth <= 0 {
		return defaultColWidth
	}
	w := (termWidth - hourLabelWidth) / calendar.DaysPerWeek
	return max(6, min(w-1, 24))
}

// Legend renders the objective color legend on one line.
func Legend() string {
	parts := make([]string, 0, len(calendar.ObjectiveSwatches))
	for i := range calendar.ObjectiveSwatches {
		parts = append(parts, ObjectiveStyle(i+1).Render("■")+" "+fmt.Sprintf("Objectif %d", i+1))
	}
	return strings.Join(parts, "   ")
}
