package planning

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/session"
)

// Regenerator replaces the session's batch with a freshly generated one.
type Regenerator interface {
	Regenerate(ctx context.Context, st *session.State) (*session.State, error)
	Busy() bool
}

// Planner drives the planning flow over a session store. At most one
// generation runs at a time; a failed generation leaves both the given
// state and the store untouched.
type Planner struct {
	contexts  ContextGenerator
	calendars CalendarGenerator
	store     session.Store
	logger    *slog.Logger
	now       func() time.Time

	inFlight atomic.Bool
}

var _ Regenerator = (*Planner)(nil)

// NewPlanner wires the generators to a store.
func NewPlanner(contexts ContextGenerator, calendars CalendarGenerator, store session.Store, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		contexts:  contexts,
		calendars: calendars,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the planner's notion of today.
func (p *Planner) SetClock(now func() time.Time) { p.now = now }

// Now returns the planner's current time.
func (p *Planner) Now() time.Time { return p.now() }

// Busy reports whether a generation is running.
func (p *Planner) Busy() bool { return p.inFlight.Load() }

// Load reads the persisted session.
func (p *Planner) Load(ctx context.Context) (*session.State, error) {
	return p.store.Load(ctx)
}

// NewContext generates and stores a new professional context. The stored
// batch is discarded with it.
func (p *Planner) NewContext(ctx context.Context, st *session.State) (*session.State, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return st, ErrGenerationInFlight
	}
	defer p.inFlight.Store(false)

	start := p.now()
	pc, err := p.contexts.Generate(ctx)
	p.record(ctx, StepContext, start, err)
	if err != nil {
		return st, err
	}
	if err := p.store.SaveContext(ctx, pc); err != nil {
		return st, err
	}
	return st.WithContext(pc), nil
}

// SetConstraints stores sc. A context must already exist.
func (p *Planner) SetConstraints(ctx context.Context, st *session.State, sc *domain.SchedulingConstraints) (*session.State, error) {
	if _, err := st.RequireContext(); err != nil {
		return st, err
	}
	if err := p.store.SaveConstraints(ctx, sc); err != nil {
		return st, err
	}
	return st.WithConstraints(sc), nil
}

// Regenerate produces a new batch from the session's context and
// constraints and replaces the stored batch in one write.
func (p *Planner) Regenerate(ctx context.Context, st *session.State) (*session.State, error) {
	pc, err := st.RequireContext()
	if err != nil {
		return st, err
	}
	sc, err := st.RequireConstraints()
	if err != nil {
		return st, err
	}

	if !p.inFlight.CompareAndSwap(false, true) {
		return st, ErrGenerationInFlight
	}
	defer p.inFlight.Store(false)

	start := p.now()
	req := BuildCalendarRequest(pc, sc, start)
	batch, err := p.calendars.Generate(ctx, req)
	p.record(ctx, StepCalendar, start, err)
	if err != nil {
		return st, err
	}
	if err := p.store.SaveBatch(ctx, batch); err != nil {
		return st, err
	}
	return st.WithBatch(batch), nil
}

// Reset clears the stored session.
func (p *Planner) Reset(ctx context.Context) error {
	return p.store.Reset(ctx)
}

// History returns recent generation attempts, newest first.
func (p *Planner) History(ctx context.Context, limit int) ([]session.Run, error) {
	return p.store.RecentRuns(ctx, limit)
}

// record is best-effort: a failed insert is logged and otherwise ignored.
func (p *Planner) record(ctx context.Context, step Step, start time.Time, genErr error) {
	run := session.Run{
		Step:       string(step),
		StartedAt:  start,
		DurationMs: p.now().Sub(start).Milliseconds(),
		Success:    genErr == nil,
	}
	if genErr != nil {
		var ge *GenerationError
		if errors.As(genErr, &ge) {
			run.Error = ge.Err.Error()
		} else {
			run.Error = genErr.Error()
		}
	}
	if err := p.store.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		p.logger.Warn("recording generation run failed", "step", step, "error", err)
	}
}
