package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/alexanderramin/calplan/internal/session"
)

// userError rewrites known failures into the message shown to the user.
// Causes are kept in the chain for errors.Is/As.
func userError(err error) error {
	if err == nil {
		return nil
	}
	var missing *session.MissingStateError
	if errors.As(err, &missing) {
		return fmt.Errorf("%w; %s", err, nextStep(missing.Key))
	}
	if errors.Is(err, planning.ErrGenerationInFlight) {
		return fmt.Errorf("%w; wait for it to finish", err)
	}
	var genErr *planning.GenerationError
	if errors.As(err, &genErr) {
		return fmt.Errorf("%w; try again", err)
	}
	return err
}

// nextStep names the command that produces the missing piece.
func nextStep(key string) string {
	switch key {
	case session.KeyConstraints:
		return "run `calplan constraints` first"
	case session.KeyBatch:
		return "run `calplan generate` first"
	default:
		return "start again with `calplan context`"
	}
}

// errorLine is the one-line rendering of err used inside the TUI.
func errorLine(err error) string {
	return userError(err).Error()
}
