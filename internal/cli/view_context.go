package cli

import (
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyNewContext = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new context"))
	keyContinue   = key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "constraints"))
)

// contextView reviews the professional context. It generates one on open
// when the session has none.
type contextView struct {
	state      *SharedState
	vp         viewport.Model
	spin       spinner.Model
	generating bool
	err        error
}

func newContextView(state *SharedState) *contextView {
	v := &contextView{
		state: state,
		vp:    viewport.New(state.Width, max(1, state.ContentHeight()-1)),
		spin:  newSpinner(),
	}
	v.refresh()
	return v
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))
}

func (v *contextView) refresh() {
	if v.state.Session == nil || v.state.Session.Context == nil {
		v.vp.SetContent("")
		return
	}
	v.vp.SetContent(formatter.FormatContext(v.state.Session.Context, v.state.App.location()))
	v.vp.GotoTop()
}

func (v *contextView) Init() tea.Cmd {
	if v.state.Session == nil || v.state.Session.Context == nil {
		return v.generate()
	}
	return nil
}

func (v *contextView) generate() tea.Cmd {
	if v.generating || v.state.App.Planner.Busy() {
		return nil
	}
	v.generating = true
	v.err = nil
	return tea.Batch(v.spin.Tick, generateContextCmd(v.state))
}

func (v *contextView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = max(1, v.state.ContentHeight()-1)
		return v, nil

	case contextReadyMsg:
		v.generating = false
		v.err = nil
		v.refresh()
		return v, nil

	case stepFailedMsg:
		if msg.step == planning.StepContext {
			v.generating = false
			v.err = msg.err
		}
		return v, nil

	case spinner.TickMsg:
		if !v.generating {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyNewContext):
			return v, v.generate()
		case key.Matches(msg, keyContinue):
			if v.generating || v.state.Session == nil || v.state.Session.Context == nil {
				return v, nil
			}
			return v, pushView(newConstraintsView(v.state))
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *contextView) View() string {
	if v.generating {
		return "\n  " + v.spin.View() + " " + formatter.Dim("Generating professional context…")
	}
	line := formatter.Dim("Professional context")
	if v.err != nil {
		line = formatter.StyleRed.Render(errorLine(v.err)) + "  " + formatter.Dim("n: retry")
	}
	return line + "\n" + v.vp.View()
}

func (v *contextView) ID() ViewID    { return ViewContext }
func (v *contextView) Title() string { return "Context" }
func (v *contextView) ShortHelp() []key.Binding {
	return []key.Binding{keyNewContext, keyContinue}
}
