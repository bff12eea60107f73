package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/session"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *session.SQLiteStore {
	t.Helper()
	return session.NewSQLiteStoreFromDB(testutil.NewTestDB(t))
}

func TestLoad_EmptyStore(t *testing.T) {
	st, err := newStore(t).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, session.KeyContext, st.FirstMissing())

	_, err = st.RequireContext()
	var missing *session.MissingStateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, session.KeyContext, missing.Key)
	assert.NoError(t, missing.Cause)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	monday := testutil.Monday(time.UTC)

	require.NoError(t, store.SaveContext(ctx, testutil.SampleContext(monday)))
	require.NoError(t, store.SaveConstraints(ctx, testutil.SampleConstraints()))
	require.NoError(t, store.SaveBatch(ctx, testutil.SampleBatch(monday)))

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", st.FirstMissing())

	pc, err := st.RequireContext()
	require.NoError(t, err)
	assert.Equal(t, "Les Vergers du Rhône", pc.CompanyName)
	assert.Len(t, pc.CurrentUser.Objectives, 3)

	sc, err := st.RequireConstraints()
	require.NoError(t, err)
	assert.Equal(t, "09:00", sc.WorkingHoursStart)

	b, err := st.RequireBatch()
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleEvents(monday), b.Events)
}

func TestSaveContext_DiscardsBatch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	monday := testutil.Monday(time.UTC)

	require.NoError(t, store.SaveContext(ctx, testutil.SampleContext(monday)))
	require.NoError(t, store.SaveConstraints(ctx, testutil.SampleConstraints()))
	require.NoError(t, store.SaveBatch(ctx, testutil.SampleBatch(monday)))

	require.NoError(t, store.SaveContext(ctx, testutil.SampleContext(monday.AddDate(0, 0, 7))))

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.Batch)
	assert.NotNil(t, st.Constraints, "constraints survive a new context")
	assert.Equal(t, session.KeyBatch, st.FirstMissing())
}

func TestSaveContext_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	store := session.NewSQLiteStoreFromDB(database)
	monday := testutil.Monday(time.UTC)

	require.NoError(t, store.SaveContext(ctx, testutil.SampleContext(monday)))
	require.NoError(t, store.SaveBatch(ctx, testutil.SampleBatch(monday)))

	boom := errors.New("disk full")
	failing := session.NewSQLiteStore(database, &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom})

	replacement := testutil.SampleContext(monday, testutil.WithObjectives("a", "b", "c"))
	err := failing.SaveContext(ctx, replacement)
	require.ErrorIs(t, err, boom)

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Réduire les pertes post-récolte de 10 %", st.Context.CurrentUser.Objectives[0])
	assert.NotNil(t, st.Batch, "batch kept when the context write is rolled back")
}

func TestSaveBatch_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	monday := testutil.Monday(time.UTC)

	require.NoError(t, store.SaveBatch(ctx, testutil.SampleBatch(monday)))

	next := testutil.SampleBatch(monday)
	next.ID = "batch-2"
	next.Events = next.Events[:1]
	require.NoError(t, store.SaveBatch(ctx, next))

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "batch-2", st.Batch.ID)
	assert.Len(t, st.Batch.Events, 1)
}

func TestLoad_CorruptSnapshotIsMissing(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	store := session.NewSQLiteStoreFromDB(database)

	_, err := database.Exec(`INSERT INTO session_snapshots (key, payload, updated_at) VALUES (?, ?, '')`,
		session.KeyConstraints, "{not json")
	require.NoError(t, err)

	st, err := store.Load(ctx)
	require.NoError(t, err)

	_, err = st.RequireConstraints()
	var missing *session.MissingStateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, session.KeyConstraints, missing.Key)
	assert.Error(t, missing.Cause)
	assert.Contains(t, err.Error(), "unreadable")
}

func TestReset_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	monday := testutil.Monday(time.UTC)

	require.NoError(t, store.SaveContext(ctx, testutil.SampleContext(monday)))
	require.NoError(t, store.SaveConstraints(ctx, testutil.SampleConstraints()))
	require.NoError(t, store.Reset(ctx))

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.Context)
	assert.Nil(t, st.Constraints)
}

func TestRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordRun(ctx, session.Run{Step: "context", StartedAt: base, DurationMs: 1200, Success: true}))
	require.NoError(t, store.RecordRun(ctx, session.Run{Step: "calendar", StartedAt: base.Add(time.Minute), DurationMs: 800, Error: "empty llm response"}))

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "calendar", runs[0].Step)
	assert.False(t, runs[0].Success)
	assert.Equal(t, "empty llm response", runs[0].Error)
	assert.True(t, runs[1].Success)
	assert.True(t, runs[1].StartedAt.Equal(base))
	assert.NotEmpty(t, runs[1].ID)
}

func TestNilState_RequiresEverything(t *testing.T) {
	var st *session.State
	_, err := st.RequireBatch()
	var missing *session.MissingStateError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, session.KeyBatch, missing.Key)
}
