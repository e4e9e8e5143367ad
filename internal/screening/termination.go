package screening

import (
	"regexp"
	"strings"
)

// DefaultTerminationKeywords are the farewell cues that end a conversation.
var DefaultTerminationKeywords = []string{"goodbye", "bye", "end", "finish", "complete", "done", "exit", "quit"}

// TerminationDetector decides whether an utterance ends the conversation.
//
// By default it matches keywords as case-insensitive substrings, so "weekend" or
// "blender" also end the conversation. WordBoundary restricts matches to whole words.
type TerminationDetector struct {
	keywords []string
	pattern  *regexp.Regexp
}

// NewTerminationDetector builds a detector for keywords, or DefaultTerminationKeywords when none are given.
func NewTerminationDetector(wordBoundary bool, keywords ...string) *TerminationDetector {
	if len(keywords) == 0 {
		keywords = DefaultTerminationKeywords
	}

	d := &TerminationDetector{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			d.keywords = append(d.keywords, kw)
		}
	}

	if wordBoundary && len(d.keywords) > 0 {
		quoted := make([]string, len(d.keywords))
		for i, kw := range d.keywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		d.pattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}

	return d
}

// IsTermination reports whether utterance contains a farewell cue.
// A nil detector uses the default keywords with substring matching.
func (d *TerminationDetector) IsTermination(utterance string) bool {
	if d == nil {
		d = NewTerminationDetector(false)
	}

	if d.pattern != nil {
		return d.pattern.MatchString(utterance)
	}

	lower := strings.ToLower(utterance)
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
