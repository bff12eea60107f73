package calendar

import (
	"github.com/alexanderramin/calplan/internal/domain"
)

// ObjectiveRef is an objective referenced by an event.
type ObjectiveRef struct {
	Index int
	Text  string
}

// Detail is everything the event detail view shows.
type Detail struct {
	Title        string
	Flexible     bool
	Swatch       Swatch
	Day          string
	TimeRange    string
	Location     string
	Participants []domain.EventParticipant
	Description  string
	Objectives   []ObjectiveRef
}

// BuildDetail assembles the detail view. Objective texts are looked up in
// pc when it is available; without it only the indexes are known.
func BuildDetail(p Placed, pc *domain.ProfessionalContext) Detail {
	d := Detail{
		Title:        p.Event.Title,
		Flexible:     IsFlexible(p.Event.Description),
		Swatch:       ColorFor(p.Event.Description, p.Event.Title),
		Day:          p.Start.Format("Monday 2 January 2006"),
		TimeRange:    TimeRange(p),
		Location:     p.Event.Location,
		Participants: p.Event.Participants,
		Description:  p.Event.Description,
	}
	for _, n := range ReferencedObjectives(p.Event.Description) {
		ref := ObjectiveRef{Index: n}
		if pc != nil {
			ref.Text = pc.Objective(n)
		}
		d.Objectives = append(d.Objectives, ref)
	}
	return d
}

// TimeRange renders "HH:MM - HH:MM".
func TimeRange(p Placed) string {
	return p.Start.Format("15:04") + " - " + p.End.Format("15:04")
}

// ObjectiveHints describe how each objective is placed in the week.
var ObjectiveHints = [domain.ObjectiveCount]string{
	"Optimized for mornings and early in the week",
	"Spread across the week",
	"Planned around the available slots",
}
