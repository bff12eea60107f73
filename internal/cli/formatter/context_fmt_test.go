package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/constraints"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatContext(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	out := stripANSI(FormatContext(testutil.SampleContext(monday), time.UTC))

	assert.Contains(t, out, "Les Vergers du Rhône (Coopérative agricole)")
	assert.Contains(t, out, "Léa Petit, Responsable de production")
	assert.Contains(t, out, "Objectif 2  Former deux saisonniers à la chaîne de tri")
	assert.Contains(t, out, "Sophie Garnier")
	assert.Contains(t, out, "Comité de direction  Mon 2 Mar 10:00-11:00")
	assert.Contains(t, out, "Léa Petit, Sophie Garnier", "participants shown by name")
	assert.Contains(t, out, "flexible")
}

func TestFormatConstraints(t *testing.T) {
	out := stripANSI(FormatConstraints(testutil.SampleConstraints()))
	assert.Contains(t, out, "Working hours   09:00 - 18:00")
	assert.Contains(t, out, "Meeting density Medium")
	assert.Contains(t, out, "Pas de réunions avant 10h le lundi [k1]")

	out = stripANSI(FormatConstraints(constraints.New().Snapshot()))
	assert.Contains(t, out, "No scheduling preferences.")
}

func TestFormatExamples_MarksPresent(t *testing.T) {
	c := constraints.New()
	c.AddExample(0)

	out := stripANSI(FormatExamples(constraints.Examples, c.Has))
	assert.Contains(t, out, "✔ 1. "+constraints.Examples[0])
	assert.Contains(t, out, "  2. "+constraints.Examples[1])
}

func TestFormatDetail(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	placed, _ := calendar.ParseEvents(testutil.SampleEvents(monday), time.UTC)
	require.Len(t, placed, 5)

	out := stripANSI(FormatDetail(calendar.BuildDetail(placed[0], nil)))
	assert.Contains(t, out, "Comité de direction")
	assert.Contains(t, out, "When  Monday 2 March 2026, 10:00 - 11:00")
	assert.Contains(t, out, "Where Salle du conseil")
	assert.Contains(t, out, "Sophie Garnier - Directrice financière")
	assert.NotContains(t, out, "[flexible]")

	out = stripANSI(FormatDetail(calendar.BuildDetail(placed[2], testutil.SampleContext(monday))))
	assert.Contains(t, out, "Formation saisonniers  [flexible]")
	assert.Contains(t, out, "Objectif 2  Former deux saisonniers à la chaîne de tri")
	assert.NotContains(t, out, "Where Bureau")

	out = stripANSI(FormatDetail(calendar.BuildDetail(placed[1], nil)))
	assert.Contains(t, out, "(no context loaded)")
}
