package planning

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/llm"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendarGenerator(client llm.LLMClient, now time.Time) *calendarGenerator {
	g := NewCalendarGenerator(client, nil).(*calendarGenerator)
	g.now = func() time.Time { return now }
	return g
}

func sampleRequest(monday time.Time) domain.CalendarRequest {
	return BuildCalendarRequest(testutil.SampleContext(monday), testutil.SampleConstraints(), monday)
}

func TestBuildCalendarRequest(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	today := monday.Add(15 * time.Hour)

	req := BuildCalendarRequest(testutil.SampleContext(monday), testutil.SampleConstraints(), today)

	assert.Equal(t, "Responsable de production", req.UserRole)
	assert.Equal(t, "2026-03-02", req.StartDate)
	assert.Equal(t, "2026-03-09", req.EndDate)
	assert.Equal(t, "09:00", req.WorkingHoursStart)
	assert.Equal(t, "18:00", req.WorkingHoursEnd)
	assert.Equal(t, []string{"Pas de réunions avant 10h le lundi"}, req.MeetingPreferences)
	assert.Equal(t, domain.DensityMedium, req.MeetingDensity)
	assert.Len(t, req.Objectives, 3)

	require.Len(t, req.ExistingCommitments, 4)
	for _, m := range req.ExistingCommitments {
		assert.False(t, m.IsFlexible)
	}
	assert.Equal(t, "m1", req.ExistingCommitments[0].ID)
}

func TestCalendarPrompt_CarriesRequest(t *testing.T) {
	monday := testutil.Monday(time.UTC)

	prompt, err := buildCalendarPrompt(sampleRequest(monday))
	require.NoError(t, err)

	assert.Contains(t, prompt, "pour un Responsable de production du 2026-03-02 au 2026-03-09")
	assert.Contains(t, prompt, "Heures de travail : 09:00 à 18:00")
	assert.Contains(t, prompt, "Densité des réunions : medium")
	assert.Contains(t, prompt, `"id":"m1"`)
	assert.NotContains(t, prompt, `"id":"m2"`, "flexible meetings are not commitments")
	assert.Contains(t, prompt, "1. Réduire les pertes post-récolte de 10 %")
	assert.Contains(t, prompt, "3. Préparer l'audit de certification bio")
	assert.Contains(t, prompt, "Lié à l'Objectif 1: [texte de l'objectif]")
}

func TestCalendarGenerator_Success(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	now := monday.Add(-time.Hour)
	fake := testutil.NewFakeLLM().Reply(llm.TaskCalendar, testutil.EventsJSON(testutil.SampleEvents(monday)))
	g := newTestCalendarGenerator(fake, now)

	batch, err := g.Generate(context.Background(), sampleRequest(monday))

	require.NoError(t, err)
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, now, batch.GeneratedAt)
	assert.Equal(t, testutil.SampleEvents(monday), batch.Events)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.TaskCalendar, calls[0].Task)
	assert.True(t, calls[0].JSONMode)
	assert.Contains(t, calls[0].SystemPrompt, "expert en planification de calendrier")
}

func TestCalendarGenerator_EmptyEventsAllowed(t *testing.T) {
	g := newTestCalendarGenerator(testutil.NewFakeLLM().Reply(llm.TaskCalendar, `{"events": []}`), time.Now())

	batch, err := g.Generate(context.Background(), sampleRequest(testutil.Monday(time.UTC)))

	require.NoError(t, err)
	assert.NotNil(t, batch.Events)
	assert.Empty(t, batch.Events)
}

func TestCalendarGenerator_TrustsOverlappingOutput(t *testing.T) {
	raw := `{"events":[
		{"title":"A","startTime":"2026-03-02T10:00:00","endTime":"2026-03-02T11:00:00"},
		{"title":"B","startTime":"2026-03-02T10:30:00","endTime":"2026-03-02T11:30:00"}]}`
	g := newTestCalendarGenerator(testutil.NewFakeLLM().Reply(llm.TaskCalendar, raw), time.Now())

	batch, err := g.Generate(context.Background(), sampleRequest(testutil.Monday(time.UTC)))

	require.NoError(t, err)
	assert.Len(t, batch.Events, 2)
}

func TestCalendarGenerator_Failures(t *testing.T) {
	cases := map[string]*testutil.FakeLLM{
		"empty content":  testutil.NewFakeLLM().Reply(llm.TaskCalendar, "  "),
		"empty object":   testutil.NewFakeLLM().Reply(llm.TaskCalendar, "{}"),
		"missing events": testutil.NewFakeLLM().Reply(llm.TaskCalendar, `{"planning": []}`),
		"null events":    testutil.NewFakeLLM().Reply(llm.TaskCalendar, `{"events": null}`),
		"malformed":      testutil.NewFakeLLM().Reply(llm.TaskCalendar, `{"events": [{"title": }]}`),
		"upstream":       testutil.NewFakeLLM().Fail(llm.TaskCalendar, llm.ErrTimeout),
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			g := newTestCalendarGenerator(fake, time.Now())

			batch, err := g.Generate(context.Background(), sampleRequest(testutil.Monday(time.UTC)))

			assert.Nil(t, batch)
			var ge *GenerationError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, StepCalendar, ge.Step)
		})
	}
}
