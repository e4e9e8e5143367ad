package screening

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talentscout/internal/ai"
)

func TestExtractorRequest(t *testing.T) {
	model := newFakeModel().enqueue(kindExtract, `{"full_name": "Jane Doe", "tech_stack": ["Go"]}`, nil)
	e := NewExtractor(model, zap.NewNop(), 0)

	p := e.Extract(context.Background(), "I'm Jane Doe and I write Go")
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Jane Doe", *p.FullName)
	assert.Equal(t, []string{"Go"}, p.TechStack)

	require.Len(t, model.requests, 1)
	req := model.requests[0]
	assert.Equal(t, extractorMaxTokens, req.MaxTokens)
	assert.InDelta(t, extractorTemperature, req.Temperature, 1e-9)
	assert.Equal(t, []ai.Message{{Role: ai.RoleUser, Content: "I'm Jane Doe and I write Go"}}, req.Messages)
	for _, field := range []string{"full_name", "email", "phone", "years_experience", "desired_position", "location", "tech_stack"} {
		assert.Contains(t, req.System, field)
	}
}

func TestExtractorContainsFailures(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{name: "not configured", err: ai.ErrNotConfigured},
		{name: "transport", err: errors.New("dial tcp: connection refused")},
		{name: "empty completion", err: ai.ErrEmptyCompletion},
		{name: "malformed json", out: `{"full_name": `},
		{name: "schema mismatch", out: `{"tech_stack": {"go": true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newFakeModel().enqueue(kindExtract, tt.out, tt.err)
			p := NewExtractor(model, zap.NewNop(), 0).Extract(context.Background(), "hello")
			assert.Equal(t, Profile{}, p)
		})
	}
}

func TestExtractorLogsParseFailures(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	model := newFakeModel().enqueue(kindExtract, "no json at all", nil)

	NewExtractor(model, zap.New(core), 5).Extract(context.Background(), "hello")

	entries := observed.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "extractor", ctx["component"])
	assert.Equal(t, "no js...", ctx["response_preview"])
}

func TestResponderReply(t *testing.T) {
	model := newFakeModel().enqueue(kindReply, "Hello Jane! What is your email?", nil)
	r := NewResponder(model, zap.NewNop(), false)

	history := []Message{
		{Role: RoleUser, Content: "Hi", Ordinal: 0},
		{Role: RoleAssistant, Content: "Hello! What is your name?", Ordinal: 1},
		{Role: RoleUser, Content: "Jane", Ordinal: 2},
	}

	assert.Equal(t, "Hello Jane! What is your email?", r.Reply(context.Background(), history))

	require.Len(t, model.requests, 1)
	req := model.requests[0]
	assert.Equal(t, responderMaxTokens, req.MaxTokens)
	assert.InDelta(t, responderTemperature, req.Temperature, 1e-9)
	assert.Equal(t, []ai.Message{
		{Role: ai.RoleUser, Content: "Hi"},
		{Role: ai.RoleAssistant, Content: "Hello! What is your name?"},
		{Role: ai.RoleUser, Content: "Jane"},
	}, req.Messages)
}

func TestResponderFallbacks(t *testing.T) {
	transportErr := errors.New("dial tcp 10.0.0.1:443: i/o timeout")

	tests := []struct {
		name   string
		err    error
		expose bool
		want   string
	}{
		{name: "not configured", err: ai.ErrNotConfigured, want: ReplyNotConfigured},
		{name: "wrapped not configured", err: errors.Join(errors.New("groq"), ai.ErrNotConfigured), want: ReplyNotConfigured},
		{name: "empty completion", err: ai.ErrEmptyCompletion, want: ReplyEmptyCompletion},
		{name: "transport suppressed", err: transportErr, want: ReplyTechnicalTrouble},
		{name: "transport exposed", err: transportErr, expose: true, want: ReplyTechnicalTrouble + " Error: " + transportErr.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newFakeModel().enqueue(kindReply, "", tt.err)
			got := NewResponder(model, zap.NewNop(), tt.expose).Reply(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponderNilModel(t *testing.T) {
	assert.Equal(t, ReplyNotConfigured, NewResponder(nil, nil, false).Reply(context.Background(), nil))
}

func TestQuestionGenerator(t *testing.T) {
	model := newFakeModel().enqueue(kindQuestions, `[
		{"technology": "Python", "questions": ["What is a generator?", "Explain list comprehensions.", "What is the GIL?"]},
		{"technology": "Go", "questions": ["What is a goroutine?", "How do channels work?", "What does defer do?"]}
	]`, nil)
	g := NewQuestionGenerator(model, zap.NewNop(), 0)

	sets := g.Generate(context.Background(), []string{"Python", "Go", "go", " "})
	require.Len(t, sets, 2)
	assert.Equal(t, "Python", sets[0].Technology)
	assert.Len(t, sets[1].Questions, 3)

	require.Len(t, model.requests, 1)
	req := model.requests[0]
	assert.Contains(t, req.System, "Python, Go")
	assert.NotContains(t, req.System, "go, ")
	assert.Contains(t, req.System, "3-5")
	assert.Equal(t, questionsMaxTokens, req.MaxTokens)
	assert.InDelta(t, questionsTemperature, req.Temperature, 1e-9)
}

func TestQuestionGeneratorFailures(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{name: "not configured", err: ai.ErrNotConfigured},
		{name: "transport", err: errors.New("connection reset")},
		{name: "prose", out: "Here are your questions: 1. What is Go?"},
		{name: "wrong shape", out: `{"Go": ["What is Go?"], "Python": ["What is Python?"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newFakeModel().enqueue(kindQuestions, tt.out, tt.err)
			assert.Empty(t, NewQuestionGenerator(model, zap.NewNop(), 0).Generate(context.Background(), []string{"Go"}))
		})
	}
}

func TestQuestionGeneratorSkipsEmptyStack(t *testing.T) {
	model := newFakeModel()
	assert.Nil(t, NewQuestionGenerator(model, nil, 0).Generate(context.Background(), []string{"", "  "}))
	assert.Zero(t, model.total())
}
