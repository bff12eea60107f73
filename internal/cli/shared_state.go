package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/session"
)

// SharedState is shared by every view through a pointer. Session is
// replaced, never mutated, when a step completes.
type SharedState struct {
	App     *App
	Ctx     context.Context
	Session *session.State

	// Week is the week the calendar view shows.
	Week calendar.Week

	Width  int
	Height int
}

// Now returns the planner's clock in the display zone.
func (s *SharedState) Now() time.Time {
	return s.App.Planner.Now().In(s.App.location())
}

// ContentHeight is the terminal height minus the header (title and
// separator) and the status bar (separator and hints).
func (s *SharedState) ContentHeight() int {
	return max(1, s.Height-4)
}
