package screening

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

const progressFullAt = 10

// Summary is the collected information of a conversation, suitable for review or export.
type Summary struct {
	CandidateInformation map[string]string   `json:"candidate_information"`
	TechStack            []string            `json:"tech_stack"`
	TechnicalQuestions   []QuestionSet       `json:"technical_questions"`
	Conversation         ConversationSummary `json:"conversation_summary"`
}

type ConversationSummary struct {
	TotalMessages int        `json:"total_messages"`
	Progress      int        `json:"progress_percent"`
	Ended         bool       `json:"ended"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
}

// Progress estimates how far the screening got, in percent of ten messages.
func (o *Orchestrator) Progress() int {
	return progress(len(o.state.messages))
}

func progress(messages int) int {
	if messages >= progressFullAt {
		return 100
	}
	return messages * 100 / progressFullAt
}

// Summary snapshots the collected information.
func (o *Orchestrator) Summary() *Summary {
	info := make(map[string]string)
	for _, field := range o.state.profile.Fields() {
		info[field.Name] = field.Value
	}

	summary := &Summary{
		CandidateInformation: info,
		TechStack:            o.state.TechStack(),
		TechnicalQuestions:   o.state.Questions(),
		Conversation: ConversationSummary{
			TotalMessages: len(o.state.messages),
			Progress:      o.Progress(),
			Ended:         o.state.terminated,
		},
	}

	if o.state.terminated && !o.endedAt.IsZero() {
		endedAt := o.endedAt
		summary.Conversation.EndedAt = &endedAt
	}

	if summary.TechStack == nil {
		summary.TechStack = []string{}
	}
	if summary.TechnicalQuestions == nil {
		summary.TechnicalQuestions = []QuestionSet{}
	}

	return summary
}

// DumpToTmpFile writes the summary as indented JSON to a new temporary file and returns its name.
func (s *Summary) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}

	if err := writeJSON(file, s); err != nil {
		return "", fmt.Errorf("writing %s: %w", file.Name(), err)
	}
	return file.Name(), nil
}

// writeJSON encodes v as indented JSON and closes w. A failed Close is reported,
// since buffered data may not have reached the disk.
func writeJSON(w io.WriteCloser, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
