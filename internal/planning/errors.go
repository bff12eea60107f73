package planning

import (
	"errors"
	"fmt"
)

// Step names a generation step.
type Step string

const (
	StepContext  Step = "context"
	StepCalendar Step = "calendar"
)

// GenerationError reports that a generation step produced nothing usable:
// the upstream call failed, or its reply was empty or unparsable. Callers
// keep their previous state and offer a retry.
type GenerationError struct {
	Step Step
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ErrGenerationInFlight is returned when a generation is requested while
// another one has not settled.
var ErrGenerationInFlight = errors.New("a generation is already in progress")
