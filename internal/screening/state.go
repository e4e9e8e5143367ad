package screening

import "slices"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry of the conversation log. Ordinal is its zero-based position.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Ordinal int    `json:"ordinal"`
}

// QuestionSet holds the technical questions generated for one technology.
type QuestionSet struct {
	Technology string   `json:"technology"`
	Questions  []string `json:"questions"`
}

// State is the data of a single screening conversation. It is not safe for
// concurrent use; the Orchestrator owns it and mutates it one turn at a time.
type State struct {
	messages   []Message
	profile    Profile
	techStack  []string
	questions  []QuestionSet
	terminated bool
}

func NewState() *State {
	return &State{}
}

// AppendMessage adds a message to the end of the log and returns it.
func (s *State) AppendMessage(role Role, content string) Message {
	msg := Message{Role: role, Content: content, Ordinal: len(s.messages)}
	s.messages = append(s.messages, msg)
	return msg
}

// MergeProfile applies the non-nil fields of partial to the profile.
func (s *State) MergeProfile(partial Profile) {
	s.profile.Merge(partial)
}

// SetTechStack replaces the tech stack when stack has at least one usable entry.
func (s *State) SetTechStack(stack []string) bool {
	normalized := normalizeStack(stack)
	if len(normalized) == 0 {
		return false
	}
	s.techStack = normalized
	return true
}

// SetQuestions stores the question sets unless some are already stored.
func (s *State) SetQuestions(sets []QuestionSet) bool {
	if len(s.questions) > 0 || len(sets) == 0 {
		return false
	}
	s.questions = cloneQuestions(sets)
	return true
}

// Terminate marks the conversation as over. It reports whether this call changed the flag.
func (s *State) Terminate() bool {
	if s.terminated {
		return false
	}
	s.terminated = true
	return true
}

// Reset restores the initial empty state.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) Messages() []Message {
	return slices.Clone(s.messages)
}

func (s *State) Profile() Profile {
	return s.profile.Clone()
}

func (s *State) TechStack() []string {
	return slices.Clone(s.techStack)
}

func (s *State) Questions() []QuestionSet {
	return cloneQuestions(s.questions)
}

func (s *State) Terminated() bool {
	return s.terminated
}

func cloneQuestions(sets []QuestionSet) []QuestionSet {
	if sets == nil {
		return nil
	}
	out := make([]QuestionSet, len(sets))
	for i, set := range sets {
		out[i] = QuestionSet{Technology: set.Technology, Questions: slices.Clone(set.Questions)}
	}
	return out
}
