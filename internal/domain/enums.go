package domain

// MeetingDensity is the coarse control over how packed a schedule should be.
type MeetingDensity string

const (
	DensityLight  MeetingDensity = "light"
	DensityMedium MeetingDensity = "medium"
	DensityHeavy  MeetingDensity = "heavy"
)

// ValidDensities is the canonical set of accepted density strings.
var ValidDensities = map[MeetingDensity]bool{
	DensityLight: true, DensityMedium: true, DensityHeavy: true,
}

// Label returns the display label for the density.
func (d MeetingDensity) Label() string {
	switch d {
	case DensityLight:
		return "Light"
	case DensityMedium:
		return "Medium"
	case DensityHeavy:
		return "Heavy"
	default:
		return string(d)
	}
}
