package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskContext  TaskType = "context"
	TaskCalendar TaskType = "calendar"
)

// Provider selects the wire protocol used to reach the model.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   Provider
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int

	// BreakerFailures is the number of consecutive upstream failures that
	// opens the circuit. Zero disables the breaker.
	BreakerFailures   uint32
	BreakerCooldownMs int

	Tasks map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig for the OpenAI chat completions API.
// Automatic retries are off: a failed generation surfaces to the user, who
// decides whether to retry. No local timeout is set; the TimeoutMs fields
// are opt-in deadlines.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:          ProviderOpenAI,
		Endpoint:          defaultEndpoint(ProviderOpenAI),
		Model:             defaultModel(ProviderOpenAI),
		TimeoutMs:         0,
		MaxRetries:        0,
		BreakerFailures:   3,
		BreakerCooldownMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskContext:  {Temperature: 0.9, MaxTokens: 4096},
			TaskCalendar: {Temperature: 0.4, MaxTokens: 8192},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("CALPLAN_LLM_PROVIDER"); v != "" {
		p := Provider(strings.ToLower(v))
		if p == ProviderOllama || p == ProviderOpenAI {
			cfg.Provider = p
			cfg.Endpoint = defaultEndpoint(p)
			cfg.Model = defaultModel(p)
		}
	}
	if v := os.Getenv("CALPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CALPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("CALPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("CALPLAN_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CALPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CALPLAN_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("CALPLAN_LLM_BREAKER_FAILURES"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.BreakerFailures = uint32(n)
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskContext, "CALPLAN_LLM_CONTEXT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskCalendar, "CALPLAN_LLM_CALENDAR_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func defaultEndpoint(p Provider) string {
	if p == ProviderOllama {
		return "http://localhost:11434"
	}
	return "https://api.openai.com/v1"
}

func defaultModel(p Provider) string {
	if p == ProviderOllama {
		return "llama3.2"
	}
	return "gpt-4o"
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
