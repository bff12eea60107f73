package planning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/llm"
	"github.com/google/uuid"
)

// PlanningWindowDays is the length of the window handed to the model.
const PlanningWindowDays = 7

// CalendarGenerator turns a calendar request into a batch of events.
type CalendarGenerator interface {
	Generate(ctx context.Context, req domain.CalendarRequest) (*domain.Batch, error)
}

type calendarGenerator struct {
	client llm.LLMClient
	logger *slog.Logger
	now    func() time.Time
}

// NewCalendarGenerator creates a CalendarGenerator backed by an LLM client.
func NewCalendarGenerator(client llm.LLMClient, logger *slog.Logger) CalendarGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &calendarGenerator{client: client, logger: logger, now: time.Now}
}

// calendarResponse distinguishes a missing events field from an empty one.
type calendarResponse struct {
	Events *[]domain.CalendarEvent `json:"events"`
}

// Generate asks the model for a schedule. The reply is trusted once it
// parses: overlaps and unmet preferences are not checked here.
func (g *calendarGenerator) Generate(ctx context.Context, req domain.CalendarRequest) (*domain.Batch, error) {
	prompt, err := buildCalendarPrompt(req)
	if err != nil {
		return nil, &GenerationError{Step: StepCalendar, Err: err}
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCalendar,
		SystemPrompt: calendarSystemPrompt,
		UserPrompt:   prompt,
		JSONMode:     true,
	})
	if err != nil {
		return nil, &GenerationError{Step: StepCalendar, Err: err}
	}

	parsed, err := llm.ExtractJSON[calendarResponse](resp.Text, func(r calendarResponse) error {
		if r.Events == nil {
			return fmt.Errorf("response has no events array")
		}
		return nil
	})
	if err != nil {
		return nil, &GenerationError{Step: StepCalendar, Err: err}
	}

	events := *parsed.Events
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	batch := &domain.Batch{
		ID:          uuid.New().String(),
		GeneratedAt: g.now(),
		Events:      events,
	}
	g.logger.Info("calendar generated", "batch", batch.ID, "events", len(events))
	return batch, nil
}

// BuildCalendarRequest derives the generation input from the session: the
// window starts on today's date and spans PlanningWindowDays, and only
// fixed meetings are passed as existing commitments.
func BuildCalendarRequest(pc *domain.ProfessionalContext, sc *domain.SchedulingConstraints, today time.Time) domain.CalendarRequest {
	objectives := append([]string(nil), pc.CurrentUser.Objectives...)
	return domain.CalendarRequest{
		UserRole:            pc.CurrentUser.Job,
		StartDate:           today.Format(domain.DateLayout),
		EndDate:             today.AddDate(0, 0, PlanningWindowDays).Format(domain.DateLayout),
		WorkingHoursStart:   sc.WorkingHoursStart,
		WorkingHoursEnd:     sc.WorkingHoursEnd,
		MeetingPreferences:  sc.Descriptions(),
		ExistingCommitments: pc.FixedMeetings(),
		MeetingDensity:      sc.MeetingDensity,
		Objectives:          objectives,
	}
}
