package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// breakerClient short-circuits generation after repeated upstream failures
// so a dead endpoint fails fast instead of waiting out each timeout.
type breakerClient struct {
	inner   LLMClient
	breaker *gobreaker.CircuitBreaker[*GenerateResponse]
}

// WithBreaker wraps client in a circuit breaker configured from cfg.
// It returns client unchanged when cfg.BreakerFailures is zero.
func WithBreaker(client LLMClient, cfg LLMConfig, logger *slog.Logger) LLMClient {
	if cfg.BreakerFailures == 0 {
		return client
	}
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.BreakerFailures
	settings := gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.BreakerCooldownMs) * time.Millisecond,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Only transport-level failures count against the upstream.
			return err == nil || !(errors.Is(err, ErrUnavailable) ||
				errors.Is(err, ErrTimeout) ||
				errors.Is(err, ErrRequestFailed))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &breakerClient{
		inner:   client,
		breaker: gobreaker.NewCircuitBreaker[*GenerateResponse](settings),
	}
}

func (b *breakerClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	resp, err := b.breaker.Execute(func() (*GenerateResponse, error) {
		return b.inner.Generate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return resp, err
}

func (b *breakerClient) Available(ctx context.Context) bool {
	if b.breaker.State() == gobreaker.StateOpen {
		return false
	}
	return b.inner.Available(ctx)
}
