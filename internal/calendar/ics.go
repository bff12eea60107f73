package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/calplan/internal/domain"
)

const (
	icsProductID = "-//calplan//calendar export//FR"
	icsLocalTime = "20060102T150405"
)

// ExportICS renders the batch as an iCalendar document with one VEVENT per
// event. Times are written as floating local times, matching the
// zone-less timestamps of the batch. Events with unparsable times are
// skipped and reported.
func ExportICS(batch *domain.Batch, loc *time.Location) (string, []error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)

	placed, errs := ParseEvents(batch.Events, loc)
	for _, p := range placed {
		ev := cal.AddEvent(fmt.Sprintf("%s-%d@calplan", batch.ID, p.Index))
		ev.SetDtStampTime(batch.GeneratedAt.UTC())
		ev.SetProperty(ical.ComponentPropertyDtStart, p.Start.Format(icsLocalTime))
		ev.SetProperty(ical.ComponentPropertyDtEnd, p.End.Format(icsLocalTime))
		ev.SetSummary(p.Event.Title)
		ev.SetDescription(icsDescription(p.Event))
		if p.Event.Location != "" {
			ev.SetLocation(p.Event.Location)
		}
	}
	return cal.Serialize(), errs
}

// icsDescription keeps the objective marker and appends participants,
// which have names but no addresses to use as ATTENDEEs.
func icsDescription(e domain.CalendarEvent) string {
	if len(e.Participants) == 0 {
		return e.Description
	}
	names := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		if p.Role != "" {
			names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.Role))
		} else {
			names = append(names, p.Name)
		}
	}
	return strings.TrimSpace(e.Description + "\n\nParticipants: " + strings.Join(names, ", "))
}
