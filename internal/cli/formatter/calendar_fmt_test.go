package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrid(t *testing.T) WeekGrid {
	t.Helper()
	monday := testutil.Monday(time.UTC)
	placed, errs := calendar.ParseEvents(testutil.SampleEvents(monday), time.UTC)
	require.Empty(t, errs)
	return WeekGrid{
		Week:     calendar.WeekOf(monday),
		Events:   placed,
		Hours:    calendar.DefaultHourRange,
		Today:    monday,
		Selected: -1,
		ColWidth: 16,
	}
}

func TestRenderWeek_Layout(t *testing.T) {
	out := stripANSI(RenderWeek(sampleGrid(t)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 1+10*LinesPerHour, "header plus two lines per hour 9..18")
	assert.Contains(t, lines[0], "Mon 2")
	assert.Contains(t, lines[0], "Sun 8")
	assert.True(t, strings.HasPrefix(lines[1], "09:00"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-2], "18:00"))

	// Comité de direction starts at 10:00: the first line of the 10:00 row.
	assert.Contains(t, lines[1+LinesPerHour], "Comité de direc…")
	assert.Contains(t, lines[2+LinesPerHour], "10:00 - 11:00")
}

func TestRenderWeek_SelectedEventMarked(t *testing.T) {
	g := sampleGrid(t)
	g.Selected = 1

	out := stripANSI(RenderWeek(g))
	assert.Contains(t, out, "▶Analyse")
	assert.Equal(t, 1, strings.Count(out, "▶"))
}

func TestRenderWeek_LateEventStaysOnGrid(t *testing.T) {
	g := sampleGrid(t)
	late, _ := calendar.ParseEvents([]domain.CalendarEvent{{
		Title: "Dîner client", StartTime: "2026-03-03T20:00:00", EndTime: "2026-03-03T22:00:00",
	}}, time.UTC)
	g.Events = late

	out := stripANSI(RenderWeek(g))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[len(lines)-1], "Dîner client")
}

func TestRenderWeek_OffHourEventCoversEveryLineItTouches(t *testing.T) {
	g := sampleGrid(t)
	short, _ := calendar.ParseEvents([]domain.CalendarEvent{{
		Title: "Point rapide", StartTime: "2026-03-02T10:15:00", EndTime: "2026-03-02T10:45:00",
	}}, time.UTC)
	g.Events = short

	out := stripANSI(RenderWeek(g))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[1+LinesPerHour], "Point rapide")
	assert.Contains(t, lines[2+LinesPerHour], "10:15 - 10:45")
}

func TestGridWidth(t *testing.T) {
	assert.Equal(t, hourLabelWidth+calendar.DaysPerWeek*17, GridWidth(16))
	assert.Greater(t, GridWidth(ColWidthFor(50)), 50, "narrowest columns overflow tiny terminals")
}

func TestFormatAgenda(t *testing.T) {
	g := sampleGrid(t)
	out := stripANSI(FormatAgenda(g.Week, g.Events))

	assert.Contains(t, out, "WEEK OF 2 MARCH 2026")
	assert.Contains(t, out, "Monday 2 March")
	assert.Contains(t, out, "14:00 - 15:30  Analyse des pertes @ Bureau production")
	assert.Contains(t, out, "Formation saisonniers [flexible]")
	assert.NotContains(t, out, "Thursday")

	empty := stripANSI(FormatAgenda(g.Week.Next(1), g.Events))
	assert.Contains(t, empty, "No events this week.")
}

func TestFormatObjectiveCoverage(t *testing.T) {
	g := sampleGrid(t)
	pc := testutil.SampleContext(testutil.Monday(time.UTC))

	out := stripANSI(FormatObjectiveCoverage(pc.CurrentUser.Objectives, g.Events))
	assert.Contains(t, out, "Objectif 1  Réduire les pertes post-récolte de 10 %")
	assert.Contains(t, out, calendar.ObjectiveHints[1])
	assert.Equal(t, 3, strings.Count(out, "1/5 events"))

	assert.Contains(t, stripANSI(FormatObjectiveCoverage(nil, nil)), "No context loaded.")
}

func TestColWidthFor(t *testing.T) {
	assert.Equal(t, defaultColWidth, ColWidthFor(0))
	assert.Equal(t, 6, ColWidthFor(40))
	assert.Equal(t, 24, ColWidthFor(400))
	assert.LessOrEqual(t, GridWidth(ColWidthFor(120)), 120)
}
