package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	JSONMode     bool     // ask the provider to constrain output to a JSON object
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model server is reachable.
	Available(ctx context.Context) bool
}

// callParams are the resolved sampling parameters for one call.
type callParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// roundTripper is one provider's wire protocol.
type roundTripper interface {
	roundTrip(ctx context.Context, req GenerateRequest, p callParams) (*GenerateResponse, error)
	ping(ctx context.Context) bool
}

// httpClient implements LLMClient on top of a provider roundTripper. It owns
// timeouts, the optional retry loop and call observation.
type httpClient struct {
	cfg      LLMConfig
	rt       roundTripper
	observer Observer
}

// NewClient creates an LLMClient for the configured provider.
func NewClient(cfg LLMConfig, observer Observer) LLMClient {
	if cfg.Provider == ProviderOllama {
		return NewOllamaClient(cfg, observer)
	}
	return NewOpenAIClient(cfg, observer)
}

func newHTTPClient(cfg LLMConfig, rt roundTripper, observer Observer) *httpClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{cfg: cfg, rt: rt, observer: observer}
}

func newTransport() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func (c *httpClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	params := callParams{
		Model:       c.cfg.Model,
		Temperature: taskCfg.Temperature,
		MaxTokens:   taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		params.MaxTokens = *req.MaxTokens
	}

	// Zero leaves the deadline to the caller and the transport.
	if timeoutMs := c.cfg.TaskTimeout(req.Task); timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.rt.roundTrip(ctx, req, params)
		if err == nil {
			resp.LatencyMs = time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				LatencyMs: resp.LatencyMs,
				Success:   true,
			})
			return resp, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rt.ping(ctx)
}

// statusError carries a non-2xx provider reply.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", ErrRequestFailed, context.Canceled)
	case isConnectionError(err):
		return ErrUnavailable
	case errors.Is(err, ErrEmptyResponse):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrCircuitOpen):
		return "CIRCUIT_OPEN"
	case errors.Is(err, ErrRequestFailed):
		return "REQUEST_FAILED"
	default:
		return "UNKNOWN"
	}
}
