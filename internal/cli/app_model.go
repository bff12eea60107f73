package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/session"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type startMode int

const (
	// startGuided opens on the first step the session still needs.
	startGuided startMode = iota
	// startCalendar opens on the week grid.
	startCalendar
)

var (
	keyQuit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	keyBack = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
)

// appModel is the root bubbletea Model. It owns the view stack and
// installs each step's resulting session before views see the result.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(ctx context.Context, app *App, st *session.State, mode startMode) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	state := &SharedState{App: app, Ctx: ctx, Session: st}
	state.Week = calendar.DefaultWeek(state.Now())

	m := appModel{state: state}
	m.viewStack = []View{m.firstView(mode)}
	return m
}

func (m appModel) firstView(mode startMode) View {
	st := m.state.Session
	if mode == startCalendar || (st != nil && st.Batch != nil && st.FirstMissing() == "") {
		return newCalendarView(m.state, false)
	}
	return newContextView(m.state)
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case contextReadyMsg:
		m.state.Session = msg.st
		return m, m.broadcast(msg)

	case batchReadyMsg:
		// Only the batch is taken: constraints saved while the generation
		// ran are newer than the ones it started from.
		if m.state.Session != nil {
			msg.st = m.state.Session.WithBatch(msg.st.Batch)
		}
		m.state.Session = msg.st
		return m, m.broadcast(msg)

	case constraintsSavedMsg:
		m.state.Session = msg.st
		return m.afterConstraints()

	case stepFailedMsg:
		m.state.App.logger().Error("generation failed", "step", msg.step, "error", msg.err)
		return m, m.broadcast(msg)
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// afterConstraints leaves the form and regenerates: in the calendar view
// underneath when there is one, otherwise in a calendar view that takes
// the form's place.
func (m appModel) afterConstraints() (tea.Model, tea.Cmd) {
	n := len(m.viewStack)
	if n > 0 && m.viewStack[n-1].ID() == ViewConstraints {
		if n > 1 && m.viewStack[n-2].ID() == ViewCalendar {
			m.viewStack = m.viewStack[:n-1]
			return m, m.regenerateActive()
		}
		return m, replaceView(newCalendarView(m.state, true))
	}
	if top := m.activeView(); top != nil && top.ID() == ViewCalendar {
		return m, m.regenerateActive()
	}
	return m, pushView(newCalendarView(m.state, true))
}

func (m *appModel) regenerateActive() tea.Cmd {
	updated, cmd := m.activeView().Update(regenerateMsg{})
	m.setActiveView(updated.(View))
	return cmd
}

// broadcast forwards msg to every view so views under the top stay current.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	v := m.activeView()
	if v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case key.Matches(msg, keyQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keyBack):
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	if v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())
	result := strings.Join(sections, "\n")

	// Pad to terminal height so the alt-screen renderer leaves no stale lines.
	if m.state.Height > 0 {
		if lines := strings.Count(result, "\n") + 1; lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	header := formatter.StylePurple.Render("calplan")
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}
	return header + "\n" + formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	v := m.activeView()
	if v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	if v == nil || !viewCapturesInput(v) {
		hints = append(hints, formatter.Dim("q: quit"))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
