// Package constraints accumulates the user's scheduling preferences into a
// domain.SchedulingConstraints snapshot.
package constraints

import (
	"strings"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/google/uuid"
)

// Defaults offered before the user changes anything.
const (
	DefaultStart   = "09:00"
	DefaultEnd     = "18:00"
	DefaultDensity = domain.DensityMedium
)

// Examples are the suggestions a user can add with one action.
var Examples = []string{
	"Je n'aime pas avoir des réunions le matin",
	"Je préfère travailler sur les sujets importants en début de semaine",
	"Je ne suis pas disponible le jeudi de 14h à 16h",
	"J'ai besoin d'au moins 2 heures de temps concentré chaque jour",
	"Je préfère avoir mes réunions regroupées",
	"Je prends une pause déjeuner d'une heure entre 12h et 14h",
	"Je préfère commencer ma journée par du travail de réflexion",
	"J'aime garder mes vendredis après-midi pour les tâches administratives",
	"Je suis plus productif en fin de journée",
}

// Collector is the in-memory constraint accumulator for one planning
// session. It is not safe for concurrent use.
type Collector struct {
	items   []domain.Constraint
	start   string
	end     string
	density domain.MeetingDensity
	newID   func() string
}

// New returns a collector holding the defaults and no constraints.
func New() *Collector {
	return &Collector{
		start:   DefaultStart,
		end:     DefaultEnd,
		density: DefaultDensity,
		newID:   func() string { return uuid.New().String() },
	}
}

// FromSnapshot seeds a collector from previously saved constraints. Empty
// fields keep their defaults.
func FromSnapshot(sc *domain.SchedulingConstraints) *Collector {
	c := New()
	if sc == nil {
		return c
	}
	if sc.WorkingHoursStart != "" {
		c.start = sc.WorkingHoursStart
	}
	if sc.WorkingHoursEnd != "" {
		c.end = sc.WorkingHoursEnd
	}
	if sc.MeetingDensity != "" {
		c.density = sc.MeetingDensity
	}
	c.items = append(c.items, sc.Constraints...)
	return c
}

// SetWorkingHours sets both bounds. Each must be H:MM or HH:MM and is
// stored zero-padded; ordering is not checked.
func (c *Collector) SetWorkingHours(start, end string) error {
	start, err := NormalizeClock("workingHoursStart", start)
	if err != nil {
		return err
	}
	end, err = NormalizeClock("workingHoursEnd", end)
	if err != nil {
		return err
	}
	c.start, c.end = start, end
	return nil
}

// SetDensity sets the meeting density.
func (c *Collector) SetDensity(d domain.MeetingDensity) error {
	d = domain.MeetingDensity(strings.ToLower(strings.TrimSpace(string(d))))
	if !domain.ValidDensities[d] {
		return &domain.ValidationError{Field: "meetingDensity", Message: "must be light, medium or heavy"}
	}
	c.density = d
	return nil
}

// Add appends text as a new constraint. Blank text and text already
// present (exact match after trimming) are ignored; the bool reports
// whether anything was added.
func (c *Collector) Add(text string) (domain.Constraint, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Constraint{}, false
	}
	if c.Has(text) {
		return domain.Constraint{}, false
	}
	item := domain.Constraint{ID: c.newID(), Description: text}
	c.items = append(c.items, item)
	return item, true
}

// AddExample adds Examples[i]. Out-of-range indexes are ignored.
func (c *Collector) AddExample(i int) (domain.Constraint, bool) {
	if i < 0 || i >= len(Examples) {
		return domain.Constraint{}, false
	}
	return c.Add(Examples[i])
}

// Has reports whether a constraint with exactly this text exists.
func (c *Collector) Has(text string) bool {
	for _, item := range c.items {
		if item.Description == text {
			return true
		}
	}
	return false
}

// Remove deletes the constraint with id and reports whether it existed.
func (c *Collector) Remove(id string) bool {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Constraints returns a copy of the current list in insertion order.
func (c *Collector) Constraints() []domain.Constraint {
	return append([]domain.Constraint(nil), c.items...)
}

// Snapshot returns the value handed to calendar generation.
func (c *Collector) Snapshot() *domain.SchedulingConstraints {
	items := c.Constraints()
	if items == nil {
		items = []domain.Constraint{}
	}
	return &domain.SchedulingConstraints{
		Constraints:       items,
		WorkingHoursStart: c.start,
		WorkingHoursEnd:   c.end,
		MeetingDensity:    c.density,
	}
}

// ValidateClock checks that v is a 24-hour H:MM or HH:MM value.
func ValidateClock(field, v string) error {
	_, err := NormalizeClock(field, v)
	return err
}

// NormalizeClock parses a 24-hour H:MM or HH:MM value and returns it as
// HH:MM, so "9:00" becomes "09:00".
func NormalizeClock(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if n := len(v); n != 4 && n != 5 {
		return "", &domain.ValidationError{Field: field, Message: "expected HH:MM"}
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return "", &domain.ValidationError{Field: field, Message: "expected HH:MM"}
	}
	return t.Format("15:04"), nil
}
