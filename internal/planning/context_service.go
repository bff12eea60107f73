package planning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/llm"
)

// ContextGenerator fabricates a professional scenario.
type ContextGenerator interface {
	Generate(ctx context.Context) (*domain.ProfessionalContext, error)
}

type contextGenerator struct {
	client llm.LLMClient
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewContextGenerator creates a ContextGenerator backed by an LLM client.
func NewContextGenerator(client llm.LLMClient, logger *slog.Logger) ContextGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &contextGenerator{client: client, logger: logger, loc: time.Local, now: time.Now}
}

func (g *contextGenerator) Generate(ctx context.Context) (*domain.ProfessionalContext, error) {
	today := g.now().In(g.loc)

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskContext,
		SystemPrompt: contextSystemPrompt,
		UserPrompt:   buildContextPrompt(today.Format(domain.DateLayout)),
		JSONMode:     true,
	})
	if err != nil {
		return nil, &GenerationError{Step: StepContext, Err: err}
	}

	pc, err := llm.ExtractJSON[domain.ProfessionalContext](resp.Text, nil)
	if err != nil {
		return nil, &GenerationError{Step: StepContext, Err: err}
	}
	if err := ValidateContext(&pc); err != nil {
		return nil, &GenerationError{Step: StepContext, Err: fmt.Errorf("%w: %w", llm.ErrInvalidOutput, err)}
	}

	for _, w := range CheckContext(&pc, today) {
		g.logger.Warn("generated context deviates from request", "detail", w)
	}
	g.logger.Info("context generated",
		"company", pc.CompanyName,
		"colleagues", len(pc.Colleagues),
		"meetings", len(pc.Meetings),
	)
	return &pc, nil
}

// ValidateContext enforces the parts of the context contract that later
// steps depend on: exactly three objectives, and participant ids that
// resolve to the current user or a colleague.
func ValidateContext(pc *domain.ProfessionalContext) error {
	if n := len(pc.CurrentUser.Objectives); n != domain.ObjectiveCount {
		return &domain.ValidationError{
			Field:   "currentUser.objectives",
			Message: fmt.Sprintf("expected %d objectives, got %d", domain.ObjectiveCount, n),
		}
	}
	for i, m := range pc.Meetings {
		for _, id := range m.Participants {
			if _, ok := pc.PersonName(id); !ok {
				return &domain.ValidationError{
					Field:   fmt.Sprintf("meetings[%d].participants", i),
					Message: fmt.Sprintf("unknown participant %q in %q", id, m.Title),
				}
			}
		}
	}
	return nil
}

// CheckContext lists soft deviations from the requested scenario shape.
// None of them prevents the context from being used.
func CheckContext(pc *domain.ProfessionalContext, today time.Time) []string {
	var warnings []string

	if n := len(pc.Colleagues); n < 5 || n > 7 {
		warnings = append(warnings, fmt.Sprintf("%d colleagues, expected 5-7", n))
	}
	if n := len(pc.Meetings); n < 10 || n > 15 {
		warnings = append(warnings, fmt.Sprintf("%d meetings, expected 10-15", n))
	}

	loc := today.Location()
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	until := from.AddDate(0, 0, 8)
	for _, m := range pc.Meetings {
		start, err := domain.ParseTimestamp(m.StartTime, loc)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("meeting %q: %v", m.ID, err))
			continue
		}
		if start.Before(from) || !start.Before(until) {
			warnings = append(warnings, fmt.Sprintf("meeting %q starts %s, outside the next 7 days", m.ID, m.StartTime))
		}
		if m.Objective != "" && !matchesObjective(m.Objective, pc.CurrentUser.Objectives) {
			warnings = append(warnings, fmt.Sprintf("meeting %q objective %q matches none of the user's objectives", m.ID, m.Objective))
		}
	}
	return warnings
}

// matchesObjective compares by content: either text may contain the other.
func matchesObjective(text string, objectives []string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, obj := range objectives {
		o := strings.ToLower(strings.TrimSpace(obj))
		if o == "" {
			continue
		}
		if strings.Contains(t, o) || strings.Contains(o, t) {
			return true
		}
	}
	return false
}
