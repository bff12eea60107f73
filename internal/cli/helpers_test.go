package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/alexanderramin/calplan/internal/session"
	"github.com/alexanderramin/calplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

type testEnv struct {
	app    *App
	fake   *testutil.FakeLLM
	store  *session.SQLiteStore
	monday time.Time
}

// newTestEnv wires an App over an in-memory store and a scripted model.
// The clock starts on Friday 2026-02-27, so the upcoming week is the
// sample week of Monday 2026-03-02.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	monday := testutil.Monday(time.UTC)
	fake := testutil.NewFakeLLM()
	store := session.NewSQLiteStoreFromDB(testutil.NewTestDB(t))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	contexts := planning.NewContextGenerator(fake, logger)
	calendars := planning.NewCalendarGenerator(fake, logger)
	planner := planning.NewPlanner(contexts, calendars, store, logger)
	tick := monday.AddDate(0, 0, -3).Add(9 * time.Hour)
	planner.SetClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})

	app := &App{
		Planner:   planner,
		Contexts:  contexts,
		Calendars: calendars,
		Logger:    logger,
		Loc:       time.UTC,
	}
	return &testEnv{app: app, fake: fake, store: store, monday: monday}
}

func (e *testEnv) seedContext(t *testing.T) {
	t.Helper()
	require.NoError(t, e.store.SaveContext(context.Background(), testutil.SampleContext(e.monday)))
}

func (e *testEnv) seedConstraints(t *testing.T) {
	t.Helper()
	require.NoError(t, e.store.SaveConstraints(context.Background(), testutil.SampleConstraints()))
}

func (e *testEnv) seedAll(t *testing.T) {
	t.Helper()
	e.seedContext(t)
	e.seedConstraints(t)
	require.NoError(t, e.store.SaveBatch(context.Background(), testutil.SampleBatch(e.monday)))
}

func (e *testEnv) load(t *testing.T) *session.State {
	t.Helper()
	st, err := e.store.Load(context.Background())
	require.NoError(t, err)
	return st
}

// executeCmd runs the root command with args and captures its output. The
// error is rewritten the way Execute rewrites it.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := userError(root.ExecuteContext(context.Background()))
	return stripANSI(buf.String()), err
}
