package cli

import (
	"slices"
	"strings"

	"github.com/alexanderramin/calplan/internal/constraints"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/charmbracelet/huh"
)

// constraintForm holds the values bound to the constraint form. Existing
// preferences and the suggested examples share one multi-select; new
// preferences are typed one per line.
type constraintForm struct {
	base *domain.SchedulingConstraints

	start   string
	end     string
	density domain.MeetingDensity
	keep    []string
	extra   string
}

func newConstraintForm(sc *domain.SchedulingConstraints) *constraintForm {
	f := &constraintForm{base: sc}
	c := collectorFor(sc)
	snap := c.Snapshot()
	f.start = snap.WorkingHoursStart
	f.end = snap.WorkingHoursEnd
	f.density = snap.MeetingDensity
	f.keep = snap.Descriptions()
	return f
}

func collectorFor(sc *domain.SchedulingConstraints) *constraints.Collector {
	if sc == nil {
		return constraints.New()
	}
	return constraints.FromSnapshot(sc)
}

// options lists current preferences first, then examples not yet chosen.
func (f *constraintForm) options() []huh.Option[string] {
	var opts []huh.Option[string]
	seen := make(map[string]bool)
	for _, d := range f.keep {
		opts = append(opts, huh.NewOption(d, d).Selected(true))
		seen[d] = true
	}
	for _, e := range constraints.Examples {
		if !seen[e] {
			opts = append(opts, huh.NewOption(e, e))
		}
	}
	return opts
}

func (f *constraintForm) build() *huh.Form {
	densities := make([]huh.Option[domain.MeetingDensity], 0, 3)
	for _, d := range []domain.MeetingDensity{domain.DensityLight, domain.DensityMedium, domain.DensityHeavy} {
		densities = append(densities, huh.NewOption(d.Label(), d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Working hours start").
				Placeholder(constraints.DefaultStart).
				Value(&f.start).
				Validate(func(s string) error { return constraints.ValidateClock("workingHoursStart", s) }),
			huh.NewInput().
				Title("Working hours end").
				Placeholder(constraints.DefaultEnd).
				Value(&f.end).
				Validate(func(s string) error { return constraints.ValidateClock("workingHoursEnd", s) }),
			huh.NewSelect[domain.MeetingDensity]().
				Title("Meeting density").
				Options(densities...).
				Value(&f.density),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Scheduling preferences").
				Description("space: toggle").
				Options(f.options()...).
				Value(&f.keep),
			huh.NewText().
				Title("Other preferences (one per line)").
				Value(&f.extra),
		),
	).WithTheme(calplanHuhTheme()).WithShowHelp(false)
}

// snapshot applies the form values to the starting constraints. Existing
// preferences keep their ids; unchecked ones are removed.
func (f *constraintForm) snapshot() (*domain.SchedulingConstraints, error) {
	c := collectorFor(f.base)
	if err := c.SetWorkingHours(strings.TrimSpace(f.start), strings.TrimSpace(f.end)); err != nil {
		return nil, err
	}
	if err := c.SetDensity(f.density); err != nil {
		return nil, err
	}
	for _, item := range c.Constraints() {
		if !slices.Contains(f.keep, item.Description) {
			c.Remove(item.ID)
		}
	}
	for _, d := range f.keep {
		c.Add(d)
	}
	for _, line := range strings.Split(f.extra, "\n") {
		c.Add(line)
	}
	return c.Snapshot(), nil
}
