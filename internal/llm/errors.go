package llm

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrEmptyResponse indicates the model answered with no content.
	ErrEmptyResponse = errors.New("empty llm response")

	// ErrRequestFailed indicates the server rejected or failed the request.
	ErrRequestFailed = errors.New("llm request failed")

	// ErrCircuitOpen indicates calls are being short-circuited after
	// repeated upstream failures.
	ErrCircuitOpen = errors.New("llm circuit open")
)
