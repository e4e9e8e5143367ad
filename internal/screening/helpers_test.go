package screening

import (
	"context"
	"strings"
	"sync"

	"github.com/spigell/talentscout/internal/ai"
)

type callKind string

const (
	kindReply     callKind = "reply"
	kindExtract   callKind = "extract"
	kindQuestions callKind = "questions"
)

type fakeResult struct {
	out string
	err error
}

// fakeModel answers per component, recognised by the system prompt of the request.
type fakeModel struct {
	mu       sync.Mutex
	results  map[callKind][]fakeResult
	fallback map[callKind]fakeResult
	calls    map[callKind]int
	requests []ai.Request
}

func newFakeModel() *fakeModel {
	return &fakeModel{
		results:  make(map[callKind][]fakeResult),
		fallback: map[callKind]fakeResult{kindReply: {out: "Nice to meet you! What is your email?"}, kindExtract: {out: "{}"}, kindQuestions: {out: "[]"}},
		calls:    make(map[callKind]int),
	}
}

// enqueue adds a one-shot answer; once consumed the fallback for the kind is used.
func (f *fakeModel) enqueue(kind callKind, out string, err error) *fakeModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[kind] = append(f.results[kind], fakeResult{out: out, err: err})
	return f
}

func (f *fakeModel) always(kind callKind, out string, err error) *fakeModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback[kind] = fakeResult{out: out, err: err}
	return f
}

func (f *fakeModel) count(kind callKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}

func (f *fakeModel) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeModel) Complete(_ context.Context, req ai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kind := kindQuestions
	switch {
	case req.System == responderSystemPrompt:
		kind = kindReply
	case req.System == extractorSystemPrompt:
		kind = kindExtract
	case strings.HasPrefix(req.System, "You are a technical interviewer"):
		kind = kindQuestions
	}

	f.calls[kind]++
	f.requests = append(f.requests, req)

	if queue := f.results[kind]; len(queue) > 0 {
		f.results[kind] = queue[1:]
		return queue[0].out, queue[0].err
	}
	res := f.fallback[kind]
	return res.out, res.err
}

func (f *fakeModel) Model() string { return "fake" }

func strPtr(s string) *string { return &s }
