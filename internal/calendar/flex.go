package calendar

import "strings"

// FlexibleKeywords mark an event as movable when found in its description.
var FlexibleKeywords = []string{
	"flexible",
	"peut être déplacé",
	"optionnel",
	"si disponible",
}

// IsFlexible infers flexibility from description text alone.
func IsFlexible(description string) bool {
	d := strings.ToLower(description)
	for _, kw := range FlexibleKeywords {
		if strings.Contains(d, kw) {
			return true
		}
	}
	return false
}
