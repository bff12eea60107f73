package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "court", Truncate("court", 10))
	assert.Equal(t, "Comité d…", Truncate("Comité de direction", 9))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 min", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h", FormatDuration(2*time.Hour))
	assert.Equal(t, "1h30", FormatDuration(90*time.Minute))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Feb 27 12:00", HumanTimestamp(now.AddDate(0, 0, -3), now))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("ok"), "x"},
		{"longer", "y"},
	}))
	assert.Contains(t, out, "ok      x")
	assert.Contains(t, out, "longer  y")
}

func TestRenderShare(t *testing.T) {
	out := stripANSI(RenderShare(1, 4, 8, StyleGreen))
	assert.Equal(t, "[██░░░░░░] 1/4", out)
	assert.Equal(t, "[░░░░] 0/0", stripANSI(RenderShare(0, 0, 4, StyleGreen)))
}
