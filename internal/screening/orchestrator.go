package screening

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/logger"
)

var (
	// ErrConversationEnded is returned for input received after the candidate said goodbye.
	ErrConversationEnded = errors.New("conversation has ended")
	// ErrEmptyUtterance is returned for blank input.
	ErrEmptyUtterance = errors.New("utterance is empty")
)

// Phase is the position of the conversation in the turn state machine.
type Phase int

const (
	AwaitingInput Phase = iota
	Ended
)

func (p Phase) String() string {
	switch p {
	case AwaitingInput:
		return "awaiting_input"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

type replier interface {
	Reply(ctx context.Context, history []Message) string
}

type profileExtractor interface {
	Extract(ctx context.Context, utterance string) Profile
}

type questionWriter interface {
	Generate(ctx context.Context, techStack []string) []QuestionSet
}

// Deps aggregates the collaborators of an Orchestrator.
type Deps struct {
	Responder  replier
	Extractor  profileExtractor
	Questions  questionWriter
	Terminator *TerminationDetector
	Logger     *zap.Logger
}

// Options tune an Orchestrator built by New.
type Options struct {
	WordBoundaryTermination bool
	ExposeErrors            bool
	MaxLogLength            int
}

// TurnResult describes what happened during one turn.
type TurnResult struct {
	Reply              string
	Ended              bool
	QuestionsGenerated bool
}

// Orchestrator runs the screening conversation one turn at a time.
type Orchestrator struct {
	deps  Deps
	state *State
	turn  int
	log   *zap.Logger
	now   func() time.Time

	endedAt time.Time
}

// New wires every component to the same chat model.
func New(model ai.ChatModel, opts Options, log *zap.Logger) *Orchestrator {
	return NewOrchestrator(Deps{
		Responder:  NewResponder(model, log, opts.ExposeErrors),
		Extractor:  NewExtractor(model, log, opts.MaxLogLength),
		Questions:  NewQuestionGenerator(model, log, opts.MaxLogLength),
		Terminator: NewTerminationDetector(opts.WordBoundaryTermination),
		Logger:     log,
	})
}

func NewOrchestrator(deps Deps) *Orchestrator {
	if deps.Terminator == nil {
		deps.Terminator = NewTerminationDetector(false)
	}

	return &Orchestrator{
		deps:  deps,
		state: NewState(),
		log:   logger.WithComponent(deps.Logger, "orchestrator"),
		now:   time.Now,
	}
}

// Turn processes one user utterance.
//
// A farewell cue appends the fixed farewell and ends the conversation without any model
// call. Otherwise the reply, profile extraction and, when the utterance yields a tech
// stack and no questions are stored yet, question generation run in order. Model
// failures never fail a turn.
func (o *Orchestrator) Turn(ctx context.Context, utterance string) (*TurnResult, error) {
	if o.state.Terminated() {
		return nil, ErrConversationEnded
	}
	if strings.TrimSpace(utterance) == "" {
		return nil, ErrEmptyUtterance
	}

	log := o.log.With(zap.Int(logger.FieldTurn, o.turn))
	o.turn++

	o.state.AppendMessage(RoleUser, utterance)

	if o.deps.Terminator.IsTermination(utterance) {
		o.state.AppendMessage(RoleAssistant, FarewellMessage)
		o.state.Terminate()
		o.endedAt = o.now()

		log.Info("conversation ended", zap.Int("messages", len(o.state.messages)))
		return &TurnResult{Reply: FarewellMessage, Ended: true}, nil
	}

	reply := o.deps.Responder.Reply(ctx, o.state.Messages())
	o.state.AppendMessage(RoleAssistant, reply)

	partial := o.deps.Extractor.Extract(ctx, utterance)
	o.state.MergeProfile(partial)
	stackUpdated := o.state.SetTechStack(partial.TechStack)
	if stackUpdated {
		log.Info("tech stack updated", zap.Strings("tech_stack", o.state.techStack))
	}

	// Generation is attempted only on turns that mention a stack, so a failing
	// model costs no extra call on unrelated turns.
	result := &TurnResult{Reply: reply}
	if stackUpdated && len(o.state.questions) == 0 {
		sets := o.deps.Questions.Generate(ctx, o.state.TechStack())
		result.QuestionsGenerated = o.state.SetQuestions(sets)
	}

	log.Debug("turn completed",
		zap.Int("profile_fields", len(o.state.profile.Fields())),
		zap.Bool("questions_generated", result.QuestionsGenerated),
	)

	return result, nil
}

// Reset discards the conversation and starts a fresh one.
func (o *Orchestrator) Reset() {
	o.state = NewState()
	o.turn = 0
	o.endedAt = time.Time{}
	o.log.Info("conversation reset")
}

// View is read-only access to the data of the current conversation.
type View interface {
	Messages() []Message
	Profile() Profile
	TechStack() []string
	Questions() []QuestionSet
	Terminated() bool
}

type stateView struct {
	o *Orchestrator
}

func (v stateView) Messages() []Message      { return v.o.state.Messages() }
func (v stateView) Profile() Profile         { return v.o.state.Profile() }
func (v stateView) TechStack() []string      { return v.o.state.TechStack() }
func (v stateView) Questions() []QuestionSet { return v.o.state.Questions() }
func (v stateView) Terminated() bool         { return v.o.state.Terminated() }

// State returns a read-only view that follows the orchestrator across resets.
func (o *Orchestrator) State() View {
	return stateView{o: o}
}

// Phase is derived from the terminated flag of the state.
func (o *Orchestrator) Phase() Phase {
	if o.state.Terminated() {
		return Ended
	}
	return AwaitingInput
}
