package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
)

// FormatContext renders a professional context for review: company, the
// current user and objectives, colleagues and meetings.
func FormatContext(pc *domain.ProfessionalContext, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(Header("Company") + "\n")
	fmt.Fprintf(&b, "%s %s\n\n", Bold(pc.CompanyName), Dim("("+pc.CompanyType+")"))

	b.WriteString(Header("You") + "\n")
	fmt.Fprintf(&b, "%s, %s\n\n", Bold(pc.CurrentUser.Name), pc.CurrentUser.Job)

	b.WriteString(Header("Objectives") + "\n")
	b.WriteString(FormatObjectives(pc.CurrentUser.Objectives))
	b.WriteString("\n")

	b.WriteString(Header("Colleagues") + "\n")
	if len(pc.Colleagues) == 0 {
		b.WriteString(Dim("  none") + "\n")
	}
	rows := make([][]string, 0, len(pc.Colleagues))
	for _, c := range pc.Colleagues {
		rows = append(rows, []string{c.Name, c.Job, Dim(fmt.Sprintf("%d meetings", len(c.Meetings)))})
	}
	if len(rows) > 0 {
		b.WriteString(RenderTable([]string{"Name", "Role", ""}, rows))
	}
	b.WriteString("\n")

	b.WriteString(Header("Meetings") + "\n")
	if len(pc.Meetings) == 0 {
		b.WriteString(Dim("  none") + "\n")
	}
	for _, m := range pc.Meetings {
		b.WriteString(formatMeeting(pc, m, loc))
	}
	return b.String()
}

// FormatObjectives renders the numbered objective list with swatch colors.
func FormatObjectives(objectives []string) string {
	var b strings.Builder
	for i, o := range objectives {
		label := fmt.Sprintf("Objectif %d", i+1)
		b.WriteString("  " + ObjectiveStyle(i+1).Render(label) + "  " + o + "\n")
	}
	return b.String()
}

func formatMeeting(pc *domain.ProfessionalContext, m domain.Meeting, loc *time.Location) string {
	badge := StyleRed.Render("fixed")
	if m.IsFlexible {
		badge = StyleGreen.Render("flexible")
	}

	when := m.StartTime
	if start, err := domain.ParseTimestamp(m.StartTime, loc); err == nil {
		when = start.Format("Mon 2 Jan 15:04")
		if end, err := domain.ParseTimestamp(m.EndTime, loc); err == nil {
			when += "-" + end.Format("15:04")
		}
	}

	names := make([]string, 0, len(m.Participants))
	for _, id := range m.Participants {
		if name, ok := pc.PersonName(id); ok {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s  %s\n", Pad(badge, 8), Bold(m.Title), Dim(when))
	if len(names) > 0 {
		fmt.Fprintf(&b, "            %s\n", Dim(strings.Join(names, ", ")))
	}
	if m.Objective != "" {
		fmt.Fprintf(&b, "            %s\n", Dim("→ "+m.Objective))
	}
	return b.String()
}
