package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/calplan/internal/llm"
)

// FakeReply is one scripted answer from FakeLLM.
type FakeReply struct {
	Text string
	Err  error
}

// FakeLLM is a scripted llm.LLMClient. Replies are consumed per task in
// order; the last reply for a task repeats once the script runs out.
type FakeLLM struct {
	mu      sync.Mutex
	replies map[llm.TaskType][]FakeReply
	calls   []llm.GenerateRequest

	// Gate, when non-nil, blocks Generate until a value is received or the
	// context ends. Tests close or send on it to release the call.
	Gate chan struct{}
	// Started, when non-nil, receives once per call before blocking on Gate.
	Started chan struct{}

	Down bool
}

// NewFakeLLM returns an empty fake. Unscripted tasks return ErrEmptyResponse.
func NewFakeLLM() *FakeLLM {
	return &FakeLLM{replies: make(map[llm.TaskType][]FakeReply)}
}

// Reply appends a successful text reply for task.
func (f *FakeLLM) Reply(task llm.TaskType, text string) *FakeLLM {
	return f.script(task, FakeReply{Text: text})
}

// Fail appends a failing reply for task.
func (f *FakeLLM) Fail(task llm.TaskType, err error) *FakeLLM {
	return f.script(task, FakeReply{Err: err})
}

func (f *FakeLLM) script(task llm.TaskType, r FakeReply) *FakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[task] = append(f.replies[task], r)
	return f
}

func (f *FakeLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	var reply FakeReply
	queue := f.replies[req.Task]
	switch {
	case len(queue) == 0:
		reply = FakeReply{Err: llm.ErrEmptyResponse}
	case len(queue) == 1:
		reply = queue[0]
	default:
		reply = queue[0]
		f.replies[req.Task] = queue[1:]
	}
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- struct{}{}
	}
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, llm.ErrTimeout
		}
	}

	if reply.Err != nil {
		return nil, reply.Err
	}
	return &llm.GenerateResponse{Text: reply.Text, Model: "fake"}, nil
}

func (f *FakeLLM) Available(context.Context) bool { return !f.Down }

// Calls returns a copy of every request received so far.
func (f *FakeLLM) Calls() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.GenerateRequest(nil), f.calls...)
}

// CallCount returns how many requests were made for task.
func (f *FakeLLM) CallCount(task llm.TaskType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Task == task {
			n++
		}
	}
	return n
}
