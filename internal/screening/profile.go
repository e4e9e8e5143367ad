package screening

import "strings"

// Profile is the accumulated set of candidate facts. A nil field means the value is unknown.
type Profile struct {
	FullName        *string  `mapstructure:"full_name" json:"full_name,omitempty"`
	Email           *string  `mapstructure:"email" json:"email,omitempty"`
	Phone           *string  `mapstructure:"phone" json:"phone,omitempty"`
	YearsExperience *string  `mapstructure:"years_experience" json:"years_experience,omitempty"`
	DesiredPosition *string  `mapstructure:"desired_position" json:"desired_position,omitempty"`
	Location        *string  `mapstructure:"location" json:"location,omitempty"`
	TechStack       []string `mapstructure:"tech_stack" json:"tech_stack,omitempty"`
}

// ProfileField is one labelled profile value, used by summaries and front ends.
type ProfileField struct {
	Name  string
	Label string
	Value string
}

// Merge overwrites fields of p with the non-nil fields of partial.
// Nil fields and an empty tech stack in partial leave p untouched.
func (p *Profile) Merge(partial Profile) {
	mergeString(&p.FullName, partial.FullName)
	mergeString(&p.Email, partial.Email)
	mergeString(&p.Phone, partial.Phone)
	mergeString(&p.YearsExperience, partial.YearsExperience)
	mergeString(&p.DesiredPosition, partial.DesiredPosition)
	mergeString(&p.Location, partial.Location)

	if len(partial.TechStack) > 0 {
		p.TechStack = append([]string(nil), partial.TechStack...)
	}
}

func mergeString(dst **string, src *string) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

// IsEmpty reports whether no field is known.
func (p Profile) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (p Profile) Clone() Profile {
	var out Profile
	out.Merge(p)
	return out
}

// Fields lists known values in a stable display order.
func (p Profile) Fields() []ProfileField {
	fields := make([]ProfileField, 0, 7)
	add := func(name, label string, value *string) {
		if value == nil || strings.TrimSpace(*value) == "" {
			return
		}
		fields = append(fields, ProfileField{Name: name, Label: label, Value: *value})
	}

	add("full_name", "Full Name", p.FullName)
	add("email", "Email", p.Email)
	add("phone", "Phone", p.Phone)
	add("years_experience", "Years Experience", p.YearsExperience)
	add("desired_position", "Desired Position", p.DesiredPosition)
	add("location", "Location", p.Location)

	if len(p.TechStack) > 0 {
		fields = append(fields, ProfileField{Name: "tech_stack", Label: "Tech Stack", Value: strings.Join(p.TechStack, ", ")})
	}

	return fields
}

// normalizeStack trims entries, drops blanks and removes case-insensitive duplicates,
// keeping the first spelling.
func normalizeStack(stack []string) []string {
	if len(stack) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(stack))
	out := make([]string, 0, len(stack))
	for _, tech := range stack {
		tech = strings.TrimSpace(tech)
		if tech == "" {
			continue
		}
		key := strings.ToLower(tech)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tech)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
