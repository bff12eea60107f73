package cli

import (
	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailView shows one event in a scrollable panel.
type detailView struct {
	state  *SharedState
	detail calendar.Detail
	vp     viewport.Model
}

func newDetailView(state *SharedState, p calendar.Placed) *detailView {
	d := calendar.BuildDetail(p, state.Session.Context)
	vp := viewport.New(max(state.Width, 40), state.ContentHeight())
	vp.SetContent(formatter.FormatDetail(d))
	return &detailView{state: state, detail: d, vp: vp}
}

func (v *detailView) Init() tea.Cmd { return nil }

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.vp.Width = size.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *detailView) View() string {
	return v.vp.View()
}

func (v *detailView) ID() ViewID    { return ViewDetail }
func (v *detailView) Title() string { return v.detail.Title }
func (v *detailView) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll"))}
}
