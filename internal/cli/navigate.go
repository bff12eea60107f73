package cli

import (
	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/alexanderramin/calplan/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages handled by appModel.

type pushViewMsg struct {
	view View
}

type popViewMsg struct{}

type replaceViewMsg struct {
	view View
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// Step results. appModel installs the new session before forwarding them
// to the views.

type contextReadyMsg struct {
	st *session.State
}

type constraintsSavedMsg struct {
	st *session.State
}

type batchReadyMsg struct {
	st *session.State
}

type stepFailedMsg struct {
	step planning.Step
	err  error
}

// regenerateMsg asks the calendar view to start a new generation.
type regenerateMsg struct{}

func generateContextCmd(s *SharedState) tea.Cmd {
	st := s.Session
	return func() tea.Msg {
		next, err := s.App.Planner.NewContext(s.Ctx, st)
		if err != nil {
			return stepFailedMsg{step: planning.StepContext, err: err}
		}
		return contextReadyMsg{st: next}
	}
}

func regenerateCmd(s *SharedState) tea.Cmd {
	st := s.Session
	return func() tea.Msg {
		next, err := s.App.Planner.Regenerate(s.Ctx, st)
		if err != nil {
			return stepFailedMsg{step: planning.StepCalendar, err: err}
		}
		return batchReadyMsg{st: next}
	}
}
