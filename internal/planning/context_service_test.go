package planning

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/llm"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContextGenerator(client llm.LLMClient, today time.Time) *contextGenerator {
	g := NewContextGenerator(client, nil).(*contextGenerator)
	g.loc = today.Location()
	g.now = func() time.Time { return today }
	return g
}

func TestContextGenerator_Success(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	fake := testutil.NewFakeLLM().Reply(llm.TaskContext, testutil.SampleContextJSON(monday))
	g := newTestContextGenerator(fake, monday)

	pc, err := g.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Les Vergers du Rhône", pc.CompanyName)
	assert.Len(t, pc.CurrentUser.Objectives, 3)
	assert.Len(t, pc.FixedMeetings(), 4)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].JSONMode)
	assert.Equal(t, llm.TaskContext, calls[0].Task)
	assert.Contains(t, calls[0].SystemPrompt, "expert en dynamique de travail")
	assert.Contains(t, calls[0].UserPrompt, "à partir du 2026-03-02")
}

func TestContextGenerator_FencedReply(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	raw := "```json\n" + testutil.SampleContextJSON(monday) + "\n```"
	g := newTestContextGenerator(testutil.NewFakeLLM().Reply(llm.TaskContext, raw), monday)

	pc, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, pc.Meetings, 10)
}

func TestContextGenerator_UpstreamFailure(t *testing.T) {
	g := newTestContextGenerator(testutil.NewFakeLLM().Fail(llm.TaskContext, llm.ErrUnavailable), time.Now())

	pc, err := g.Generate(context.Background())

	assert.Nil(t, pc)
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StepContext, ge.Step)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestContextGenerator_EmptyAndUnparsable(t *testing.T) {
	for _, raw := range []string{"{}", "désolé, je ne peux pas", `{"companyName": `} {
		g := newTestContextGenerator(testutil.NewFakeLLM().Reply(llm.TaskContext, raw), time.Now())

		_, err := g.Generate(context.Background())

		var ge *GenerationError
		assert.ErrorAs(t, err, &ge, "%q", raw)
	}
}

func TestContextGenerator_WrongObjectiveCount(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	raw := testutil.SampleContextJSON(monday, testutil.WithObjectives("seul objectif"))
	g := newTestContextGenerator(testutil.NewFakeLLM().Reply(llm.TaskContext, raw), monday)

	_, err := g.Generate(context.Background())

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currentUser.objectives", verr.Field)
}

func TestValidateContext_UnknownParticipant(t *testing.T) {
	monday := testutil.Monday(time.UTC)
	pc := testutil.SampleContext(monday, testutil.WithMeeting(domain.Meeting{
		ID: "m11", Title: "Fantôme", Participants: []string{"u1", "c99"},
	}))

	err := ValidateContext(pc)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "meetings[10].participants", verr.Field)
	assert.Contains(t, verr.Message, "c99")
}

func TestValidateContext_SampleIsValid(t *testing.T) {
	assert.NoError(t, ValidateContext(testutil.SampleContext(testutil.Monday(time.UTC))))
}

func TestCheckContext_Warnings(t *testing.T) {
	monday := testutil.Monday(time.UTC)

	assert.Empty(t, CheckContext(testutil.SampleContext(monday), monday))

	pc := testutil.SampleContext(monday, testutil.WithMeeting(domain.Meeting{
		ID: "late", StartTime: "2026-04-01T09:00:00", Objective: "Gagner le championnat",
	}))
	pc.Colleagues = pc.Colleagues[:2]

	warnings := CheckContext(pc, monday)
	joined := strings.Join(warnings, "\n")
	assert.Contains(t, joined, "2 colleagues")
	assert.Contains(t, joined, `meeting "late" starts`)
	assert.Contains(t, joined, "matches none")
	assert.NotContains(t, joined, "meetings, expected", "11 meetings is within range")
}

func TestCheckContext_UnparsableTime(t *testing.T) {
	pc := &domain.ProfessionalContext{Meetings: []domain.Meeting{{ID: "x", StartTime: "demain"}}}
	warnings := CheckContext(pc, time.Now())
	assert.True(t, containsPrefix(warnings, `meeting "x": unrecognized timestamp`))
}

func TestGenerationError_Message(t *testing.T) {
	err := &GenerationError{Step: StepCalendar, Err: errors.New("boom")}
	assert.Equal(t, "calendar generation failed: boom", err.Error())
}

func containsPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
