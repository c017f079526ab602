package registration

import (
	"bytes"
	"encoding/json"
)

// Result is the ordered object handed to the submission sink. Keys keep the
// insertion order in JSON output and in Keys.
type Result struct {
	keys   []string
	values map[string]any
}

func (r *Result) set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the field names in output order.
func (r Result) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Get returns the value stored under key.
func (r Result) Get(key string) (any, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Len reports the number of fields.
func (r Result) Len() int { return len(r.keys) }

// Map returns an unordered copy.
func (r Result) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, key := range r.keys {
		out[key] = r.values[key]
	}
	return out
}

// MarshalJSON writes the fields in order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BuildResult flattens a validated submission into {name, role, ...}. Only
// the active variant contributes fields.
func BuildResult(sub Submission) Result {
	var out Result
	out.set(FieldName, sub.Name)

	profile := sub.Profile
	if profile == nil {
		profile = Unselected{}
	}
	out.set(FieldRole, string(sub.ActiveRole()))

	switch p := profile.(type) {
	case Developer:
		out.set(FieldTechStack, cloneStrings(p.TechStack))
		out.set(FieldGitHub, p.GitHub)
	case Designer:
		out.set(FieldDesignTools, cloneStrings(p.DesignTools))
		out.set(FieldPortfolio, p.Portfolio)
	case Planner:
		years := 0
		if p.ExperienceYear != nil {
			years = *p.ExperienceYear
		}
		out.set(FieldExperienceYear, years)
		out.set(FieldProjectSummary, p.ProjectSummary)
	}
	return out
}
