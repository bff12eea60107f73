package domain

// Constraint is one free-text scheduling preference entered by the user.
type Constraint struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SchedulingConstraints is the snapshot produced by the constraint collector.
type SchedulingConstraints struct {
	Constraints       []Constraint   `json:"constraints"`
	WorkingHoursStart string         `json:"workingHoursStart"`
	WorkingHoursEnd   string         `json:"workingHoursEnd"`
	MeetingDensity    MeetingDensity `json:"meetingDensity"`
}

// Descriptions returns the constraint texts in order.
func (s *SchedulingConstraints) Descriptions() []string {
	out := make([]string, 0, len(s.Constraints))
	for _, c := range s.Constraints {
		out = append(out, c.Description)
	}
	return out
}
