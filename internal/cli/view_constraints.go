package cli

import (
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type constraintsFailedMsg struct {
	err error
}

// constraintsView wraps the constraint form. Completing it saves the
// constraints and hands over to the calendar view for generation.
type constraintsView struct {
	state  *SharedState
	values *constraintForm
	form   *huh.Form
	err    error
	saving bool
}

func newConstraintsView(state *SharedState) *constraintsView {
	var sc *domain.SchedulingConstraints
	if state.Session != nil {
		sc = state.Session.Constraints
	}
	values := newConstraintForm(sc)
	return &constraintsView{state: state, values: values, form: values.build()}
}

func (v *constraintsView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *constraintsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
	case constraintsFailedMsg:
		v.saving = false
		v.err = msg.err
		v.values = newConstraintForm(v.values.base)
		v.form = v.values.build()
		return v, v.form.Init()
	}
	if v.saving {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		v.saving = true
		return v, tea.Batch(cmd, v.save())
	}
	return v, cmd
}

func (v *constraintsView) save() tea.Cmd {
	state := v.state
	values := v.values
	st := state.Session
	return func() tea.Msg {
		sc, err := values.snapshot()
		if err != nil {
			return constraintsFailedMsg{err: err}
		}
		next, err := state.App.Planner.SetConstraints(state.Ctx, st, sc)
		if err != nil {
			return constraintsFailedMsg{err: err}
		}
		return constraintsSavedMsg{st: next}
	}
}

func (v *constraintsView) View() string {
	out := v.form.View()
	if v.err != nil {
		out = formatter.StyleRed.Render(errorLine(v.err)) + "\n\n" + out
	}
	if v.saving {
		out += "\n" + formatter.Dim("Saving…")
	}
	return out
}

func (v *constraintsView) CapturesInput() bool { return true }

func (v *constraintsView) ID() ViewID    { return ViewConstraints }
func (v *constraintsView) Title() string { return "Constraints" }
func (v *constraintsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	}
}
