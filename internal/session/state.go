// Package session holds the planning state that flows between steps and
// persists it as whole JSON snapshots.
package session

import (
	"fmt"

	"github.com/alexanderramin/calplan/internal/domain"
)

// Snapshot keys.
const (
	KeyContext     = "professional_context"
	KeyConstraints = "calendar_constraints"
	KeyBatch       = "generated_calendar"
)

// MissingStateError reports that a step needs data an earlier step has not
// produced. Cause is set when a snapshot existed but could not be decoded.
type MissingStateError struct {
	Key   string
	Cause error
}

func (e *MissingStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session state %q unreadable: %v", e.Key, e.Cause)
	}
	return fmt.Sprintf("session state %q missing", e.Key)
}

func (e *MissingStateError) Unwrap() error { return e.Cause }

// State is the explicit planning session. Nil fields have not been
// produced yet.
type State struct {
	Context     *domain.ProfessionalContext
	Constraints *domain.SchedulingConstraints
	Batch       *domain.Batch

	broken map[string]error
}

func (s *State) markBroken(key string, err error) {
	if s.broken == nil {
		s.broken = make(map[string]error)
	}
	s.broken[key] = err
}

func (s *State) missing(key string) error {
	return &MissingStateError{Key: key, Cause: s.broken[key]}
}

// RequireContext returns the context or a MissingStateError.
func (s *State) RequireContext() (*domain.ProfessionalContext, error) {
	if s == nil || s.Context == nil {
		return nil, s.missingOrNil(KeyContext)
	}
	return s.Context, nil
}

// RequireConstraints returns the constraints or a MissingStateError.
func (s *State) RequireConstraints() (*domain.SchedulingConstraints, error) {
	if s == nil || s.Constraints == nil {
		return nil, s.missingOrNil(KeyConstraints)
	}
	return s.Constraints, nil
}

// RequireBatch returns the last generated batch or a MissingStateError.
func (s *State) RequireBatch() (*domain.Batch, error) {
	if s == nil || s.Batch == nil {
		return nil, s.missingOrNil(KeyBatch)
	}
	return s.Batch, nil
}

func (s *State) missingOrNil(key string) error {
	if s == nil {
		return &MissingStateError{Key: key}
	}
	return s.missing(key)
}

// WithContext returns a copy holding pc. The batch is dropped because it
// was planned against the previous context.
func (s *State) WithContext(pc *domain.ProfessionalContext) *State {
	next := s.clone()
	next.Context = pc
	next.Batch = nil
	delete(next.broken, KeyContext)
	delete(next.broken, KeyBatch)
	return next
}

// WithConstraints returns a copy holding sc.
func (s *State) WithConstraints(sc *domain.SchedulingConstraints) *State {
	next := s.clone()
	next.Constraints = sc
	delete(next.broken, KeyConstraints)
	return next
}

// WithBatch returns a copy holding b in place of any previous batch.
func (s *State) WithBatch(b *domain.Batch) *State {
	next := s.clone()
	next.Batch = b
	delete(next.broken, KeyBatch)
	return next
}

func (s *State) clone() *State {
	if s == nil {
		return &State{}
	}
	next := &State{Context: s.Context, Constraints: s.Constraints, Batch: s.Batch}
	for k, v := range s.broken {
		next.markBroken(k, v)
	}
	return next
}

// FirstMissing names the earliest step whose output is absent, or "" when
// the state is complete. Callers use it to route back into the flow.
func (s *State) FirstMissing() string {
	switch {
	case s == nil || s.Context == nil:
		return KeyContext
	case s.Constraints == nil:
		return KeyConstraints
	case s.Batch == nil:
		return KeyBatch
	}
	return ""
}
