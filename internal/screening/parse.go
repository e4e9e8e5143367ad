package screening

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/talentscout/internal/schemas"
)

// ParseProfile turns raw model output into a partial profile. The output must be a
// JSON object (optionally fenced) matching the profile schema.
func ParseProfile(raw string) (Profile, error) {
	cleaned := extractJSON(raw)

	if err := schemas.ValidateJSONString(schemas.Profile(), cleaned); err != nil {
		return Profile{}, fmt.Errorf("validate profile: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}

	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       joinSliceHook,
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("create profile decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}

	return normalizeProfile(profile), nil
}

// ParseQuestions turns raw model output into question sets. A JSON array is expected;
// an object wrapping a single array is unwrapped first.
func ParseQuestions(raw string) ([]QuestionSet, error) {
	cleaned := unwrapSingleArray(extractJSON(raw))

	if err := schemas.ValidateJSONString(schemas.Questions(), cleaned); err != nil {
		return nil, fmt.Errorf("validate questions: %w", err)
	}

	var sets []QuestionSet
	if err := json.Unmarshal([]byte(cleaned), &sets); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	out := make([]QuestionSet, 0, len(sets))
	for _, set := range sets {
		tech := strings.TrimSpace(set.Technology)
		questions := make([]string, 0, len(set.Questions))
		for _, q := range set.Questions {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}
		if tech == "" || len(questions) == 0 {
			continue
		}
		out = append(out, QuestionSet{Technology: tech, Questions: questions})
	}

	return out, nil
}

// extractJSON strips markdown code fences and any prose around the outermost JSON value.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))

	if raw == "" || raw[0] == '{' || raw[0] == '[' {
		return raw
	}

	start := strings.IndexAny(raw, "{[")
	if start == -1 {
		return raw
	}

	closing := byte('}')
	if raw[start] == '[' {
		closing = ']'
	}

	end := strings.LastIndexByte(raw, closing)
	if end < start {
		return raw
	}
	return raw[start : end+1]
}

func unwrapSingleArray(doc string) string {
	if !strings.HasPrefix(doc, "{") {
		return doc
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &wrapper); err != nil || len(wrapper) != 1 {
		return doc
	}

	for _, value := range wrapper {
		trimmed := strings.TrimSpace(string(value))
		if strings.HasPrefix(trimmed, "[") {
			return trimmed
		}
	}
	return doc
}

// joinSliceHook lets list values land in string fields, e.g. several desired positions.
func joinSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}

	items, ok := data.([]any)
	if !ok {
		return data, nil
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", "), nil
}

// normalizeProfile treats blank strings as unknown and cleans the tech stack.
func normalizeProfile(p Profile) Profile {
	for _, field := range []**string{&p.FullName, &p.Email, &p.Phone, &p.YearsExperience, &p.DesiredPosition, &p.Location} {
		if *field == nil {
			continue
		}
		v := strings.TrimSpace(**field)
		if v == "" || strings.EqualFold(v, "null") {
			*field = nil
			continue
		}
		*field = &v
	}

	p.TechStack = normalizeStack(p.TechStack)
	return p
}
