package planning

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/llm"
	"github.com/alexanderramin/calplan/internal/session"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plannerFixture struct {
	planner *Planner
	fake    *testutil.FakeLLM
	store   *session.SQLiteStore
	monday  time.Time
}

func newPlannerFixture(t *testing.T) *plannerFixture {
	t.Helper()
	monday := testutil.Monday(time.UTC)
	fake := testutil.NewFakeLLM()
	store := session.NewSQLiteStoreFromDB(testutil.NewTestDB(t))

	contexts := newTestContextGenerator(fake, monday)
	calendars := newTestCalendarGenerator(fake, monday)
	p := NewPlanner(contexts, calendars, store, nil)
	tick := monday.Add(8 * time.Hour)
	p.SetClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})

	return &plannerFixture{planner: p, fake: fake, store: store, monday: monday}
}

func TestPlanner_FullFlow(t *testing.T) {
	f := newPlannerFixture(t)
	ctx := context.Background()
	f.fake.Reply(llm.TaskContext, testutil.SampleContextJSON(f.monday))
	f.fake.Reply(llm.TaskCalendar, testutil.EventsJSON(testutil.SampleEvents(f.monday)))

	st, err := f.planner.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.KeyContext, st.FirstMissing())

	st, err = f.planner.NewContext(ctx, st)
	require.NoError(t, err)
	st, err = f.planner.SetConstraints(ctx, st, testutil.SampleConstraints())
	require.NoError(t, err)
	st, err = f.planner.Regenerate(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "", st.FirstMissing())
	assert.Len(t, st.Batch.Events, 5)

	reloaded, err := f.planner.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Batch.ID, reloaded.Batch.ID)
	assert.Equal(t, st.Batch.Events, reloaded.Batch.Events)

	runs, err := f.planner.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestPlanner_RegenerateFailureKeepsPreviousBatch(t *testing.T) {
	f := newPlannerFixture(t)
	ctx := context.Background()
	f.fake.Reply(llm.TaskContext, testutil.SampleContextJSON(f.monday))
	f.fake.Reply(llm.TaskCalendar, testutil.EventsJSON(testutil.SampleEvents(f.monday)))
	f.fake.Reply(llm.TaskCalendar, "not json at all")

	st, err := f.planner.NewContext(ctx, nil)
	require.NoError(t, err)
	st, err = f.planner.SetConstraints(ctx, st, testutil.SampleConstraints())
	require.NoError(t, err)
	st, err = f.planner.Regenerate(ctx, st)
	require.NoError(t, err)
	first := st.Batch.ID

	after, err := f.planner.Regenerate(ctx, st)
	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Same(t, st, after, "state returned unchanged")
	assert.Equal(t, first, after.Batch.ID)

	stored, err := f.planner.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, stored.Batch.ID, "store untouched by failed generation")

	runs, err := f.planner.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Success)
	assert.NotEmpty(t, runs[0].Error)
}

func TestPlanner_ContextFailureKeepsState(t *testing.T) {
	f := newPlannerFixture(t)
	ctx := context.Background()
	f.fake.Fail(llm.TaskContext, llm.ErrEmptyResponse)

	st, err := f.planner.NewContext(ctx, &session.State{})

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Nil(t, st.Context)

	// A retry issues the same request shape.
	f.planner.NewContext(ctx, st)
	calls := f.fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0].SystemPrompt, calls[1].SystemPrompt)
	assert.Equal(t, calls[0].UserPrompt, calls[1].UserPrompt)
}

func TestPlanner_NewContextDiscardsBatch(t *testing.T) {
	f := newPlannerFixture(t)
	ctx := context.Background()
	f.fake.Reply(llm.TaskContext, testutil.SampleContextJSON(f.monday))
	f.fake.Reply(llm.TaskCalendar, testutil.EventsJSON(testutil.SampleEvents(f.monday)))

	st, err := f.planner.NewContext(ctx, nil)
	require.NoError(t, err)
	st, err = f.planner.SetConstraints(ctx, st, testutil.SampleConstraints())
	require.NoError(t, err)
	st, err = f.planner.Regenerate(ctx, st)
	require.NoError(t, err)

	st, err = f.planner.NewContext(ctx, st)
	require.NoError(t, err)
	assert.Nil(t, st.Batch)
	assert.NotNil(t, st.Constraints)

	stored, err := f.planner.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored.Batch)
}

func TestPlanner_RequiresEarlierSteps(t *testing.T) {
	f := newPlannerFixture(t)
	ctx := context.Background()

	_, err := f.planner.SetConstraints(ctx, &session.State{}, testutil.SampleConstraints())
	var missing *session.MissingStateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, session.KeyContext, missing.Key)

	st := (&session.State{}).WithContext(testutil.SampleContext(f.monday))
	_, err = f.planner.Regenerate(ctx, st)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, session.KeyConstraints, missing.Key)

	assert.Zero(t, f.fake.CallCount(llm.TaskCalendar))
}

func TestPlanner_RegenerateInFlightGuard(t *testing.T) {
	f := newPlannerFixture(t)
	ctx := context.Background()
	f.fake.Reply(llm.TaskCalendar, testutil.EventsJSON(testutil.SampleEvents(f.monday)))
	st := (&session.State{}).
		WithContext(testutil.SampleContext(f.monday)).
		WithConstraints(testutil.SampleConstraints())

	f.fake.Gate = make(chan struct{})
	f.fake.Started = make(chan struct{}, 1)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.planner.Regenerate(ctx, st)
	}()

	<-f.fake.Started
	assert.True(t, f.planner.Busy())

	same, err := f.planner.Regenerate(ctx, st)
	assert.ErrorIs(t, err, ErrGenerationInFlight)
	assert.Same(t, st, same)
	_, err = f.planner.NewContext(ctx, st)
	assert.ErrorIs(t, err, ErrGenerationInFlight)

	close(f.fake.Gate)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.False(t, f.planner.Busy())
	assert.Equal(t, 1, f.fake.CallCount(llm.TaskCalendar))
	assert.Zero(t, f.fake.CallCount(llm.TaskContext))
}

func TestPlanner_RegenerateUsesPlannerClock(t *testing.T) {
	f := newPlannerFixture(t)
	f.fake.Reply(llm.TaskCalendar, `{"events":[]}`)
	st := (&session.State{}).
		WithContext(testutil.SampleContext(f.monday)).
		WithConstraints(testutil.SampleConstraints())

	_, err := f.planner.Regenerate(context.Background(), st)
	require.NoError(t, err)

	calls := f.fake.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].UserPrompt, "du 2026-03-02 au 2026-03-09")
}
