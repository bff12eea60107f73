package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
)

// Placed is an event with parsed times. Index is its position in the batch.
type Placed struct {
	Event domain.CalendarEvent
	Index int
	Start time.Time
	End   time.Time
}

// Duration returns End-Start, or zero when the end precedes the start.
func (p Placed) Duration() time.Duration {
	if p.End.Before(p.Start) {
		return 0
	}
	return p.End.Sub(p.Start)
}

// ParseEvents parses every event's timestamps in loc. Events whose start
// cannot be parsed are reported and left out; an unparsable end is taken
// as the start.
func ParseEvents(events []domain.CalendarEvent, loc *time.Location) ([]Placed, []error) {
	placed := make([]Placed, 0, len(events))
	var errs []error
	for i, e := range events {
		start, err := domain.ParseTimestamp(e.StartTime, loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("event %d %q: %w", i, e.Title, err))
			continue
		}
		end, err := domain.ParseTimestamp(e.EndTime, loc)
		if err != nil {
			end = start
		}
		placed = append(placed, Placed{Event: e, Index: i, Start: start, End: end})
	}
	return placed, errs
}

// EventsForDay selects events starting on day's calendar date, ordered by
// start time. Week membership plays no part.
func EventsForDay(placed []Placed, day time.Time) []Placed {
	var out []Placed
	for _, p := range placed {
		if SameDay(day, p.Start) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// EventsForWeek groups events by weekday column.
func EventsForWeek(placed []Placed, w Week) [DaysPerWeek][]Placed {
	var cols [DaysPerWeek][]Placed
	for i, day := range w.Days() {
		cols[i] = EventsForDay(placed, day)
	}
	return cols
}
