package calendar

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/calplan/internal/domain"
)

// Grid units: one hour is UnitsPerHour tall and no event is shorter than
// MinEventUnits.
const (
	UnitsPerHour  = 60
	MinEventUnits = 30

	defaultFirstHour = 9
	defaultLastHour  = 18
)

// HourRange is the inclusive span of hour rows shown in the grid.
type HourRange struct {
	First int
	Last  int
}

// DefaultHourRange is used when no constraints are available.
var DefaultHourRange = HourRange{First: defaultFirstHour, Last: defaultLastHour}

// HourRangeFor derives the rows from working hours: the start hour through
// the end hour, inclusive. Unparsable values fall back to the defaults.
func HourRangeFor(sc *domain.SchedulingConstraints) HourRange {
	if sc == nil {
		return DefaultHourRange
	}
	first, ok := clockHour(sc.WorkingHoursStart)
	if !ok {
		first = defaultFirstHour
	}
	last, ok := clockHour(sc.WorkingHoursEnd)
	if !ok {
		last = defaultLastHour
	}
	if last < first {
		last = first
	}
	return HourRange{First: first, Last: last}
}

func clockHour(v string) (int, bool) {
	h, _, found := strings.Cut(strings.TrimSpace(v), ":")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(h)
	if err != nil || n < 0 || n > 23 {
		return 0, false
	}
	return n, true
}

// Rows lists the hour of each grid row.
func (r HourRange) Rows() []int {
	n := r.Last - r.First + 1
	if n < 1 {
		n = 1
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = r.First + i
	}
	return rows
}

// Height is the total grid height in units.
func (r HourRange) Height() float64 {
	return float64(len(r.Rows()) * UnitsPerHour)
}

// Layout is an event's vertical position in grid units.
type Layout struct {
	Top    float64
	Height float64
}

// Bottom returns Top+Height.
func (l Layout) Bottom() float64 { return l.Top + l.Height }

// Place positions an event. Events starting before the first row sit at
// the top, events starting after the last row are pinned to the bottom so
// they stay visible, and every event is at least MinEventUnits tall.
func (r HourRange) Place(p Placed) Layout {
	start := float64(p.Start.Hour()) + float64(p.Start.Minute())/60
	top := math.Max(0, (start-float64(r.First))*UnitsPerHour)
	if maxTop := r.Height() - MinEventUnits; top > maxTop {
		top = maxTop
	}
	height := math.Max(MinEventUnits, p.Duration().Minutes()*UnitsPerHour/60)
	return Layout{Top: top, Height: height}
}
