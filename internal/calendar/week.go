// Package calendar computes the week-grid presentation of a generated
// batch: which days are shown, where each event sits, how it is colored,
// and what its detail view contains.
package calendar

import "time"

// DaysPerWeek is the number of columns in the grid.
const DaysPerWeek = 7

// NextMonday returns midnight of the first Monday strictly after now.
// On a Monday it returns the following week's Monday.
func NextMonday(now time.Time) time.Time {
	days := (8 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// Week is one displayed Monday-to-Sunday span.
type Week struct {
	Start time.Time
}

// WeekOf returns the week containing t.
func WeekOf(t time.Time) Week {
	return Week{Start: StartOfWeek(t)}
}

// DefaultWeek is the week shown when the view opens.
func DefaultWeek(now time.Time) Week {
	return Week{Start: NextMonday(now)}
}

// Next moves forward by whole weeks (n may be negative).
func (w Week) Next(n int) Week {
	return Week{Start: w.Start.AddDate(0, 0, 7*n)}
}

// Prev moves backward by n whole weeks.
func (w Week) Prev(n int) Week {
	return w.Next(-n)
}

// Days lists the seven dates of the week, Monday first.
func (w Week) Days() [DaysPerWeek]time.Time {
	var days [DaysPerWeek]time.Time
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Label renders the month heading, e.g. "March 2026".
func (w Week) Label() string {
	return w.Start.Format("January 2006")
}

// SameDay reports whether a and b fall on the same calendar date in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
