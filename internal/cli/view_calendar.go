package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/alexanderramin/calplan/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type calendarTab int

const (
	tabCalendar calendarTab = iota
	tabObjectives
	tabConstraints
	tabCount
)

var tabNames = [tabCount]string{"Calendar", "Objectives", "Constraints"}

var (
	keyPrevWeek    = key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "week"))
	keyNextWeek    = key.NewBinding(key.WithKeys("l", "right"))
	keyThisWeek    = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "upcoming week"))
	keyPrevEvent   = key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "select"))
	keyNextEvent   = key.NewBinding(key.WithKeys("j", "down"))
	keyOpen        = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	keyRegenerate  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate"))
	keyConstraints = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "constraints"))
	keyNextTab     = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab"))
	keyPrevTab     = key.NewBinding(key.WithKeys("shift+tab"))
)

// calendarView shows the batch on a week grid. A failed regeneration keeps
// the previous batch on screen.
type calendarView struct {
	state *SharedState

	placed     []calendar.Placed
	unreadable int
	selected   int // position in weekEvents
	tab        calendarTab

	spin         spinner.Model
	generating   bool
	regenOnStart bool
	// queued is set when new constraints arrive during a generation; the
	// view regenerates once that generation ends.
	queued       bool
	err          error
	notice       string
}

func newCalendarView(state *SharedState, regenerate bool) *calendarView {
	v := &calendarView{state: state, spin: newSpinner(), regenOnStart: regenerate}
	v.reload()
	return v
}

func (v *calendarView) reload() {
	v.placed, v.unreadable = nil, 0
	if st := v.state.Session; st != nil && st.Batch != nil {
		placed, errs := calendar.ParseEvents(st.Batch.Events, v.state.App.location())
		v.placed = placed
		v.unreadable = len(errs)
	}
	v.clampSelection()
}

func (v *calendarView) weekEvents() []calendar.Placed {
	var out []calendar.Placed
	for _, day := range calendar.EventsForWeek(v.placed, v.state.Week) {
		out = append(out, day...)
	}
	return out
}

func (v *calendarView) clampSelection() {
	n := len(v.weekEvents())
	if v.selected >= n {
		v.selected = n - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

func (v *calendarView) selectedEvent() (calendar.Placed, bool) {
	events := v.weekEvents()
	if len(events) == 0 {
		return calendar.Placed{}, false
	}
	return events[v.selected], true
}

func (v *calendarView) Init() tea.Cmd {
	st := v.state.Session
	if v.regenOnStart || (st != nil && st.FirstMissing() == session.KeyBatch) {
		queue := v.regenOnStart
		v.regenOnStart = false
		return v.regenerate(queue)
	}
	return nil
}

// regenerate starts a generation unless one is running. With queue set, a
// running generation defers this one until it ends instead of dropping it.
// Missing context or constraints are reported without calling the model.
func (v *calendarView) regenerate(queue bool) tea.Cmd {
	if v.generating || v.state.App.Planner.Busy() {
		if queue {
			v.queued = true
			v.notice = "New constraints will apply when the current generation finishes."
			return nil
		}
		v.notice = "A generation is already running."
		return nil
	}
	if _, err := v.state.Session.RequireContext(); err != nil {
		v.err = err
		return nil
	}
	if _, err := v.state.Session.RequireConstraints(); err != nil {
		v.err = err
		return nil
	}
	v.generating = true
	v.err = nil
	v.notice = ""
	return tea.Batch(v.spin.Tick, regenerateCmd(v.state))
}

func (v *calendarView) runQueued() tea.Cmd {
	if !v.queued {
		return nil
	}
	v.queued = false
	return v.regenerate(false)
}

func (v *calendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case batchReadyMsg:
		v.generating = false
		v.err = nil
		v.selected = 0
		v.reload()
		v.notice = fmt.Sprintf("Generated %d events.", len(v.placed))
		return v, v.runQueued()

	case contextReadyMsg:
		v.reload()
		return v, nil

	case stepFailedMsg:
		if msg.step == planning.StepCalendar {
			v.generating = false
			v.err = msg.err
			return v, v.runQueued()
		}
		return v, nil

	case regenerateMsg:
		return v, v.regenerate(true)

	case spinner.TickMsg:
		if !v.generating {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *calendarView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyPrevWeek):
		v.state.Week = v.state.Week.Prev(1)
		v.selected = 0
	case key.Matches(msg, keyNextWeek):
		v.state.Week = v.state.Week.Next(1)
		v.selected = 0
	case key.Matches(msg, keyThisWeek):
		v.state.Week = calendar.DefaultWeek(v.state.Now())
		v.selected = 0
	case key.Matches(msg, keyPrevEvent):
		v.selected--
	case key.Matches(msg, keyNextEvent):
		v.selected++
	case key.Matches(msg, keyOpen):
		if p, ok := v.selectedEvent(); ok {
			return v, pushView(newDetailView(v.state, p))
		}
	case key.Matches(msg, keyRegenerate):
		return v, v.regenerate(false)
	case key.Matches(msg, keyConstraints):
		if v.generating {
			return v, nil
		}
		return v, pushView(newConstraintsView(v.state))
	case key.Matches(msg, keyNextTab):
		v.tab = (v.tab + 1) % tabCount
	case key.Matches(msg, keyPrevTab):
		v.tab = (v.tab + tabCount - 1) % tabCount
	}
	v.clampSelection()
	return v, nil
}

func (v *calendarView) View() string {
	var b strings.Builder
	w := v.state.Week
	b.WriteString(formatter.Bold(w.Label()) + "  " + formatter.Dim("week of "+w.Start.Format("2 Jan")) + "    " + formatter.Legend() + "\n")

	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		if calendarTab(i) == v.tab {
			tabs = append(tabs, formatter.StyleHeader.Render("["+name+"]"))
		} else {
			tabs = append(tabs, formatter.Dim(" "+name+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	switch v.tab {
	case tabCalendar:
		b.WriteString(v.renderGrid())
	case tabObjectives:
		var objectives []string
		if st := v.state.Session; st != nil && st.Context != nil {
			objectives = st.Context.CurrentUser.Objectives
		}
		b.WriteString(formatter.FormatObjectiveCoverage(objectives, v.placed))
	case tabConstraints:
		if sc := v.sessionConstraints(); sc != nil {
			b.WriteString(formatter.FormatConstraints(sc))
		} else {
			b.WriteString(formatter.Dim("No constraints saved.") + "\n")
		}
	}

	b.WriteString("\n" + v.statusLine())
	return b.String()
}

func (v *calendarView) sessionConstraints() *domain.SchedulingConstraints {
	if v.state.Session == nil {
		return nil
	}
	return v.state.Session.Constraints
}

func (v *calendarView) renderGrid() string {
	if v.state.Session == nil || v.state.Session.Batch == nil {
		return formatter.Dim("No calendar yet. Press r to generate.") + "\n"
	}
	selected := -1
	if p, ok := v.selectedEvent(); ok {
		selected = p.Index
	}
	colWidth := formatter.ColWidthFor(v.state.Width)
	if v.state.Width > 0 && formatter.GridWidth(colWidth) > v.state.Width {
		return formatter.Dim("Too narrow for the grid, showing the agenda.") + "\n" +
			formatter.FormatAgenda(v.state.Week, v.placed)
	}
	return formatter.RenderWeek(formatter.WeekGrid{
		Week:     v.state.Week,
		Events:   v.placed,
		Hours:    calendar.HourRangeFor(v.sessionConstraints()),
		Today:    v.state.Now(),
		Selected: selected,
		ColWidth: colWidth,
	})
}

func (v *calendarView) statusLine() string {
	switch {
	case v.generating:
		line := v.spin.View() + " " + formatter.Dim("Generating calendar…")
		if v.notice != "" {
			line += "  " + formatter.StyleYellow.Render(v.notice)
		}
		return line
	case v.err != nil:
		return formatter.StyleRed.Render(errorLine(v.err)) + "  " + formatter.Dim("r: retry")
	}
	var parts []string
	if v.notice != "" {
		parts = append(parts, formatter.Dim(v.notice))
	}
	if v.unreadable > 0 {
		parts = append(parts, formatter.StyleYellow.Render(fmt.Sprintf("%d events could not be read", v.unreadable)))
	}
	if len(parts) == 0 && len(v.placed) > 0 && len(v.weekEvents()) == 0 {
		parts = append(parts, formatter.Dim("No events this week."))
	}
	return strings.Join(parts, "  ")
}

func (v *calendarView) ID() ViewID    { return ViewCalendar }
func (v *calendarView) Title() string { return "Calendar" }
func (v *calendarView) ShortHelp() []key.Binding {
	return []key.Binding{keyPrevWeek, keyPrevEvent, keyOpen, keyRegenerate, keyConstraints, keyNextTab}
}
