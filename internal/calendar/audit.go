package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
)

// Overlap is a pair of events whose time ranges intersect.
type Overlap struct {
	First  Placed
	Second Placed
}

// Moved is a fixed commitment found in the batch at a different time.
type Moved struct {
	Meeting domain.Meeting
	Event   Placed
}

// Report describes how a batch relates to its context. It is informational:
// a batch is displayed as generated whatever the report says.
type Report struct {
	Overlaps   []Overlap
	Missing    []domain.Meeting
	Moved      []Moved
	Unparsable []error
}

// Clean reports whether the audit found nothing.
func (r Report) Clean() bool {
	return len(r.Overlaps) == 0 && len(r.Missing) == 0 && len(r.Moved) == 0 && len(r.Unparsable) == 0
}

// Audit checks a batch for overlapping events and, when pc is given, for
// fixed meetings that were dropped or rescheduled. Every event is on the
// current user's calendar, so any two intersecting events overlap.
func Audit(events []domain.CalendarEvent, pc *domain.ProfessionalContext, loc *time.Location) Report {
	placed, errs := ParseEvents(events, loc)
	report := Report{Unparsable: errs}

	sorted := append([]Placed(nil), placed...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if !sorted[j].Start.Before(sorted[i].End) {
				break
			}
			report.Overlaps = append(report.Overlaps, Overlap{First: sorted[i], Second: sorted[j]})
		}
	}

	if pc == nil {
		return report
	}
	for _, m := range pc.FixedMeetings() {
		start, err1 := domain.ParseTimestamp(m.StartTime, loc)
		end, err2 := domain.ParseTimestamp(m.EndTime, loc)
		if err1 != nil || err2 != nil {
			continue
		}
		var sameTitle []Placed
		exact := false
		for _, p := range placed {
			if !sameTitleText(p.Event.Title, m.Title) {
				continue
			}
			if p.Start.Equal(start) && p.End.Equal(end) {
				exact = true
				break
			}
			sameTitle = append(sameTitle, p)
		}
		switch {
		case exact:
		case len(sameTitle) > 0:
			report.Moved = append(report.Moved, Moved{Meeting: m, Event: sameTitle[0]})
		default:
			report.Missing = append(report.Missing, m)
		}
	}
	return report
}

func sameTitleText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
