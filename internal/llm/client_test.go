package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(provider Provider, endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	return cfg
}

func TestOllamaClient_Generate_JSONMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)

		json.NewEncoder(w).Encode(ollamaResponse{Model: "test-model", Response: `{"events":[]}`})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskCalendar,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
		JSONMode:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"events":[]}`, resp.Text)
	assert.Equal(t, "test-model", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOpenAIClient_Generate_SendsChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Write([]byte(`{"model":"gpt-test","choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOpenAI, srv.URL)
	cfg.APIKey = "sk-test"
	client := NewClient(cfg, NoopObserver{})

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskContext,
		SystemPrompt: "sys",
		UserPrompt:   "usr",
		JSONMode:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp.Text)
	assert.Equal(t, "gpt-test", resp.Model)
}

func TestOpenAIClient_Generate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"gpt-test","choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(testConfig(ProviderOpenAI, srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskContext, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskContext: {Temperature: 0.9, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskContext, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig(ProviderOllama, "http://127.0.0.1:1") // nothing listening
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskContext: {TimeoutMs: 1000},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskContext, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Generate_NoRetryByDefault(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskCalendar, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_Generate_RetryWhenConfigured(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: "test-model", Response: "ok"})
	}))
	defer srv.Close()

	cfg := testConfig(ProviderOllama, srv.URL)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskCalendar, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(ProviderOllama, srv.URL), nil).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig(ProviderOllama, "http://127.0.0.1:1"), nil).Available(context.Background()))
}

func TestClient_ObserverReportsFailureCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOllamaClient(testConfig(ProviderOllama, srv.URL), obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskCalendar, UserPrompt: "test"})

	require.Error(t, err)
	assert.Equal(t, TaskCalendar, captured.Task)
	assert.Equal(t, "test-model", captured.Model)
	assert.False(t, captured.Success)
	assert.Equal(t, "REQUEST_FAILED", captured.ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

type deadlineRecorder struct {
	hasDeadline bool
	deadline    time.Time
}

func (r *deadlineRecorder) roundTrip(ctx context.Context, _ GenerateRequest, _ callParams) (*GenerateResponse, error) {
	r.deadline, r.hasDeadline = ctx.Deadline()
	return &GenerateResponse{Text: "ok"}, nil
}

func (r *deadlineRecorder) ping(context.Context) bool { return true }

func TestClient_Generate_NoLocalDeadlineByDefault(t *testing.T) {
	for _, task := range []TaskType{TaskContext, TaskCalendar} {
		rec := &deadlineRecorder{}
		client := newHTTPClient(LoadConfig(), rec, nil)

		_, err := client.Generate(context.Background(), GenerateRequest{Task: task, UserPrompt: "x"})

		require.NoError(t, err)
		assert.False(t, rec.hasDeadline, "task %s", task)
	}
}

func TestClient_Generate_ConfiguredTimeoutSetsDeadline(t *testing.T) {
	t.Setenv("CALPLAN_LLM_CALENDAR_TIMEOUT_MS", "5000")
	rec := &deadlineRecorder{}
	client := newHTTPClient(LoadConfig(), rec, nil)

	before := time.Now()
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskCalendar, UserPrompt: "x"})

	require.NoError(t, err)
	require.True(t, rec.hasDeadline)
	assert.WithinDuration(t, before.Add(5*time.Second), rec.deadline, time.Second)
}
