// Package visibility decides which form fields are mounted for the current
// form state.
package visibility

import (
	"fmt"

	"github.com/goliatone/go-roleform/pkg/model"
)

// Evaluator reports whether the field at fieldPath is visible under rule.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context carries the values a rule can read. Values holds the current form
// state; Extras is reachable through the "extras." prefix.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}

// Rule returns the visibility rule attached to a field, if any.
func Rule(field model.Field) string {
	if field.UIHints != nil {
		if rule := field.UIHints[model.HintVisibilityRule]; rule != "" {
			return rule
		}
	}
	if field.Metadata != nil {
		return field.Metadata[model.HintVisibilityRule]
	}
	return ""
}

// Filter returns a copy of form without the fields whose rule evaluates to
// false. Fields without a rule always stay. A nil evaluator keeps every field.
func Filter(form model.FormModel, evaluator Evaluator, ctx Context) (model.FormModel, error) {
	if evaluator == nil {
		return form, nil
	}
	out := form
	out.Fields = make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		rule := Rule(field)
		if rule == "" {
			out.Fields = append(out.Fields, field)
			continue
		}
		visible, err := evaluator.Eval(field.Name, rule, ctx)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("visibility: field %q: %w", field.Name, err)
		}
		if visible {
			out.Fields = append(out.Fields, field)
		}
	}
	return out, nil
}

// Hidden lists the names of fields that Filter would drop.
func Hidden(form model.FormModel, evaluator Evaluator, ctx Context) ([]string, error) {
	visible, err := Filter(form, evaluator, ctx)
	if err != nil {
		return nil, err
	}
	kept := make(map[string]struct{}, len(visible.Fields))
	for _, field := range visible.Fields {
		kept[field.Name] = struct{}{}
	}
	var hidden []string
	for _, field := range form.Fields {
		if _, ok := kept[field.Name]; !ok {
			hidden = append(hidden, field.Name)
		}
	}
	return hidden, nil
}
