package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminationDetectorSubstring(t *testing.T) {
	d := NewTerminationDetector(false)

	tests := []struct {
		utterance string
		want      bool
	}{
		{"Goodbye, thanks!", true},
		{"I love Ruby", false},
		{"bye", true},
		{"BYE", true},
		{"I'm DONE here", true},
		{"please exit", true},
		{"quit", true},
		{"I worked on the backend", true}, // substring of "backend"
		{"My name is Jane Doe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsTermination(tt.utterance))
		})
	}
}

func TestTerminationDetectorWordBoundary(t *testing.T) {
	d := NewTerminationDetector(true)

	assert.True(t, d.IsTermination("Goodbye, thanks!"))
	assert.True(t, d.IsTermination("ok, I'm done."))
	assert.False(t, d.IsTermination("I worked on the backend"))
	assert.False(t, d.IsTermination("I finished a weekend project"))
	assert.False(t, d.IsTermination("I love Ruby"))
}

func TestTerminationDetectorCustomKeywords(t *testing.T) {
	d := NewTerminationDetector(false, " Adios ", "")
	assert.True(t, d.IsTermination("adios amigo"))
	assert.False(t, d.IsTermination("goodbye"))
}

func TestTerminationDetectorNil(t *testing.T) {
	var d *TerminationDetector
	assert.True(t, d.IsTermination("Goodbye"))
	assert.False(t, d.IsTermination("Hello"))
}
