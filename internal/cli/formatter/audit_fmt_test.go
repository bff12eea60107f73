package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/session"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatAudit_Clean(t *testing.T) {
	out := stripANSI(FormatAudit(calendar.Report{}))
	assert.Contains(t, out, "No overlaps")
}

func TestFormatAudit_Findings(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	events := append(testutil.SampleEvents(monday), domain.CalendarEvent{
		Title: "Travail concentré", StartTime: "2026-03-02T10:30:00", EndTime: "2026-03-02T12:00:00",
	}, domain.CalendarEvent{Title: "Sans heure", StartTime: "demain"})

	report := calendar.Audit(events, testutil.SampleContext(monday), time.UTC)
	out := stripANSI(FormatAudit(report))

	assert.Contains(t, out, "OVERLAPS (1)")
	assert.Contains(t, out, "Travail concentré")
	assert.Contains(t, out, "UNREADABLE EVENTS (1)")
	assert.Contains(t, out, "MISSING COMMITMENTS (3)")
	assert.Contains(t, out, "Appel fournisseur emballages")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	out := stripANSI(FormatHistory([]session.Run{
		{Step: "calendar", StartedAt: now.Add(-2 * time.Minute), DurationMs: 1234, Success: true},
		{Step: "context", StartedAt: now.Add(-3 * time.Hour), DurationMs: 50, Error: "llm request timed out"},
	}, now))

	assert.Contains(t, out, "2m ago")
	assert.Contains(t, out, "1234 ms")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "llm request timed out")

	assert.Contains(t, stripANSI(FormatHistory(nil, now)), "No generation runs yet.")
}
