package domain

// ProfessionalContext is the aggregate produced by context generation. It is
// replaced wholesale, never patched.
type ProfessionalContext struct {
	CompanyType string      `json:"companyType"`
	CompanyName string      `json:"companyName"`
	Colleagues  []Person    `json:"colleagues"`
	CurrentUser CurrentUser `json:"currentUser"`
	Meetings    []Meeting   `json:"meetings"`
}

// FixedMeetings returns the non-flexible meetings in their original order.
func (c *ProfessionalContext) FixedMeetings() []Meeting {
	fixed := make([]Meeting, 0, len(c.Meetings))
	for _, m := range c.Meetings {
		if !m.IsFlexible {
			fixed = append(fixed, m)
		}
	}
	return fixed
}

// PersonName resolves a participant ID to a display name. The second return
// value is false when the ID is neither the current user nor a colleague.
func (c *ProfessionalContext) PersonName(id string) (string, bool) {
	if id == c.CurrentUser.ID {
		return c.CurrentUser.Name, true
	}
	for _, p := range c.Colleagues {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}

// Objective returns the 1-based objective text, or "" when out of range.
func (c *ProfessionalContext) Objective(index int) string {
	if index < 1 || index > len(c.CurrentUser.Objectives) {
		return ""
	}
	return c.CurrentUser.Objectives[index-1]
}
