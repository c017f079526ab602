// Package schema holds the format-neutral description of a form that
// parsers produce and model builders consume.
package schema

import "sort"

// Form is one submittable operation together with its request body schema.
type Form struct {
	ID          string
	Method      string
	Endpoint    string
	Summary     string
	Description string
	Schema      Schema
	Extensions  map[string]any
}

// Schema is the subset of JSON Schema the form builder understands.
type Schema struct {
	Ref              string
	Type             string
	Format           string
	Title            string
	Description      string
	Default          any
	Enum             []any
	Required         []string
	Properties       map[string]Schema
	Items            *Schema
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MinLength        *int
	MaxLength        *int
	MinItems         *int
	Pattern          string
	Extensions       map[string]any `json:"Extensions,omitempty"`
}

// Set indexes parsed forms by operation id.
type Set struct {
	Forms map[string]Form
}

// NewSet returns an empty Set.
func NewSet() Set {
	return Set{Forms: make(map[string]Form)}
}

// Form looks up a form by id.
func (s Set) Form(id string) (Form, bool) {
	form, ok := s.Forms[id]
	return form, ok
}

// IDs returns the form ids sorted.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s.Forms))
	for id := range s.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
