// Package model builds form models from the schema IR.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-roleform/pkg/schema"
)

var (
	errFormIDMissing     = errors.New("model builder: form id is required")
	errFormMethodMissing = errors.New("model builder: form method is required")
)

// Options configures a Builder.
type Options struct {
	Labeler func(string) string
}

// Builder converts schema forms into FormModels.
type Builder struct {
	labeler func(string) string
}

func New(options Options) *Builder {
	b := &Builder{labeler: DefaultLabeler}
	if options.Labeler != nil {
		b.labeler = options.Labeler
	}
	return b
}

// Build maps the request body of form onto fields. Object properties become
// top-level fields ordered by their "order" hint, then by name.
func (b *Builder) Build(form schema.Form) (FormModel, error) {
	if strings.TrimSpace(form.ID) == "" {
		return FormModel{}, errFormIDMissing
	}
	if strings.TrimSpace(form.Method) == "" {
		return FormModel{}, errFormMethodMissing
	}

	out := FormModel{
		OperationID: form.ID,
		Endpoint:    form.Endpoint,
		Method:      strings.ToUpper(form.Method),
		Summary:     form.Summary,
		Description: form.Description,
		UIHints:     ParseExtensions(form.Extensions),
	}
	body := ParseExtensions(form.Schema.Extensions)
	for key, value := range body {
		if out.UIHints == nil {
			out.UIHints = make(map[string]string)
		}
		out.UIHints[key] = value
	}

	required := make(map[string]bool, len(form.Schema.Required))
	for _, name := range form.Schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(form.Schema.Properties))
	for name := range form.Schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		field, err := b.field(name, form.Schema.Properties[name], required[name])
		if err != nil {
			return FormModel{}, err
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return order(fields[i]) < order(fields[j])
	})
	out.Fields = fields
	return out, nil
}

func (b *Builder) field(name string, s schema.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Type:        mapType(s.Type),
		Format:      s.Format,
		Required:    required,
		Label:       b.labeler(name),
		Description: s.Description,
		Default:     s.Default,
		UIHints:     ParseExtensions(s.Extensions),
	}
	if s.Title != "" {
		field.Label = s.Title
	}
	if len(s.Enum) > 0 {
		field.Enum = append([]any(nil), s.Enum...)
	}
	if s.Ref != "" {
		field.Metadata = map[string]string{"$ref": s.Ref}
	}

	if field.Type == FieldTypeArray {
		if s.Items == nil {
			return Field{}, fmt.Errorf("model builder: array field %q missing items", name)
		}
		item, err := b.field(name+"Item", *s.Items, false)
		if err != nil {
			return Field{}, err
		}
		field.Items = &item
	}

	field.Validations = validations(s)
	if hint := field.UIHints[HintLabel]; hint != "" {
		field.Label = hint
	}
	if hint := field.UIHints[HintPlaceholder]; hint != "" {
		field.Placeholder = hint
	}
	if hint := field.UIHints[HintHelpText]; hint != "" && field.Description == "" {
		field.Description = hint
	}
	if field.UIHints[HintRequired] == "true" {
		field.Required = true
	}
	return field, nil
}

func order(field Field) int {
	if raw, ok := field.UIHints[HintOrder]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return int(^uint(0) >> 1)
}

func mapType(t string) FieldType {
	switch t {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

func validations(s schema.Schema) []ValidationRule {
	var rules []ValidationRule
	bound := func(kind string, value *float64, exclusive bool) {
		if value == nil {
			return
		}
		params := map[string]string{"value": strconv.FormatFloat(*value, 'f', -1, 64)}
		if exclusive {
			params["exclusive"] = "true"
		}
		rules = append(rules, ValidationRule{Kind: kind, Params: params})
	}
	length := func(kind string, value *int) {
		if value != nil {
			rules = append(rules, ValidationRule{Kind: kind, Params: map[string]string{"value": strconv.Itoa(*value)}})
		}
	}

	bound(ValidationRuleMin, s.Minimum, s.ExclusiveMinimum)
	bound(ValidationRuleMax, s.Maximum, s.ExclusiveMaximum)
	length(ValidationRuleMinLength, s.MinLength)
	length(ValidationRuleMaxLength, s.MaxLength)
	length(ValidationRuleMinItems, s.MinItems)
	if s.Pattern != "" {
		rules = append(rules, ValidationRule{Kind: ValidationRulePattern, Params: map[string]string{"pattern": s.Pattern}})
	}
	return rules
}
