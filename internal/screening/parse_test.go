package screening

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talentscout/internal/schemas"
)

func TestParseProfile(t *testing.T) {
	raw := "```json\n" + `{
  "full_name": "Jane Doe",
  "email": "jane@x.com",
  "phone": 5551234,
  "years_experience": 5,
  "desired_position": ["Backend Engineer", "SRE"],
  "location": null,
  "tech_stack": ["Python", "Go"]
}` + "\n```"

	p, err := ParseProfile(raw)
	require.NoError(t, err)

	require.NotNil(t, p.FullName)
	assert.Equal(t, "Jane Doe", *p.FullName)
	assert.Equal(t, "jane@x.com", *p.Email)
	assert.Equal(t, "5551234", *p.Phone)
	assert.Equal(t, "5", *p.YearsExperience)
	assert.Equal(t, "Backend Engineer, SRE", *p.DesiredPosition)
	assert.Nil(t, p.Location)
	assert.Equal(t, []string{"Python", "Go"}, p.TechStack)
}

func TestParseProfileSingleTechString(t *testing.T) {
	p, err := ParseProfile(`{"tech_stack": "Go"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, p.TechStack)
}

func TestParseProfileBlankValuesAreUnknown(t *testing.T) {
	p, err := ParseProfile(`{"full_name": "  ", "email": "null", "tech_stack": []}`)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
	assert.Nil(t, p.FullName)
	assert.Nil(t, p.Email)
	assert.Nil(t, p.TechStack)
}

func TestParseProfileDropsNullStackEntries(t *testing.T) {
	p, err := ParseProfile(`{"full_name": "Jane Doe", "email": "jane@x.com", "tech_stack": ["Python", null, "Go"]}`)
	require.NoError(t, err)
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Jane Doe", *p.FullName)
	require.NotNil(t, p.Email)
	assert.Equal(t, []string{"Python", "Go"}, p.TechStack)
}

func TestParseProfileWithProse(t *testing.T) {
	p, err := ParseProfile(`Here is the extracted information: {"full_name": "Jane Doe"} Let me know if you need more.`)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", *p.FullName)
}

func TestParseProfileFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "I could not find any information."},
		{name: "truncated", raw: `{"full_name": "Jane`},
		{name: "array", raw: `["Jane"]`},
		{name: "schema mismatch", raw: `{"full_name": {"first": "Jane"}}`},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProfile(tt.raw)
			require.Error(t, err)
			assert.True(t, p.IsEmpty())
		})
	}
}

func TestParseProfileSchemaMismatchIsValidationError(t *testing.T) {
	_, err := ParseProfile(`{"tech_stack": [1, 2]}`)

	var verr *schemas.ValidationError
	assert.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
}

func TestParseQuestions(t *testing.T) {
	raw := "```json\n" + `[
  {"technology": "Python", "questions": ["What is a decorator?", " ", "Explain the GIL."]},
  {"technology": "Go", "questions": ["What is a goroutine?"]},
  {"technology": " ", "questions": ["orphan"]},
  {"technology": "Rust", "questions": []}
]` + "\n```"

	sets, err := ParseQuestions(raw)
	require.NoError(t, err)
	assert.Equal(t, []QuestionSet{
		{Technology: "Python", Questions: []string{"What is a decorator?", "Explain the GIL."}},
		{Technology: "Go", Questions: []string{"What is a goroutine?"}},
	}, sets)
}

func TestParseQuestionsUnwrapsObject(t *testing.T) {
	sets, err := ParseQuestions(`{"technical_questions": [{"technology": "Go", "questions": ["What is a channel?"]}]}`)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Go", sets[0].Technology)
}

func TestParseQuestionsFailures(t *testing.T) {
	for _, raw := range []string{
		"Sure! Here are some questions.",
		`{"technology": "Go", "questions": ["q"]}`,
		`[{"technology": "Go"}]`,
		`[{"technology": "Go", "questions": "What is a goroutine?"}]`,
	} {
		sets, err := ParseQuestions(raw)
		assert.Error(t, err, raw)
		assert.Empty(t, sets)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: ` {"a": 1} `, want: `{"a": 1}`},
		{name: "json fence", raw: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", raw: "```\n[1]\n```", want: `[1]`},
		{name: "prose around object", raw: `Result: {"a": {"b": 2}} done`, want: `{"a": {"b": 2}}`},
		{name: "prose around array", raw: `Questions: [1, 2] end`, want: `[1, 2]`},
		{name: "no json", raw: `nothing here`, want: `nothing here`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.raw))
		})
	}
}
