package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-roleform/pkg/model"
)

// Hints written by LocalizeFormModel on the form.
const (
	HintTitle       = "title"
	HintOptionLabel = "optionLabel."
	// HintOptionLabelKeyPrefix names the catalog prefix for enum option
	// labels, e.g. "roles" resolves option "planner" via "roles.planner".
	HintOptionLabelKeyPrefix = "optionLabelKeyPrefix"
)

// LocalizeFormModel resolves the *Key hints of form in place: titleKey and
// submitLabelKey on the form; labelKey, placeholderKey and helpTextKey on
// fields; and enum option labels through optionLabelKeyPrefix.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) {
	if form == nil {
		return
	}
	hints := make(map[string]string, len(form.UIHints)+2)
	for k, v := range form.UIHints {
		hints[k] = v
	}
	form.UIHints = hints

	if key := form.UIHints[model.HintTitleKey]; key != "" {
		form.UIHints[HintTitle] = opts.T(key, form.Summary)
	}
	if key := form.UIHints[model.HintSubmitLabelKey]; key != "" {
		form.UIHints[model.HintSubmitLabel] = opts.T(key, form.UIHints[model.HintSubmitLabel])
	}

	fields := make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		fields[i] = localizeField(field, opts)
	}
	form.Fields = fields
}

func localizeField(field model.Field, opts RenderOptions) model.Field {
	hints := make(map[string]string, len(field.UIHints))
	for k, v := range field.UIHints {
		hints[k] = v
	}
	field.UIHints = hints

	if key := hints[model.HintLabelKey]; key != "" {
		field.Label = opts.T(key, field.Label)
	}
	if key := hints[model.HintPlaceholderKey]; key != "" {
		field.Placeholder = opts.T(key, field.Placeholder)
	}
	if key := hints[model.HintHelpTextKey]; key != "" {
		hints[model.HintHelpText] = opts.T(key, hints[model.HintHelpText])
	}
	if prefix := strings.TrimSpace(hints[HintOptionLabelKeyPrefix]); prefix != "" {
		for _, option := range field.Options() {
			value := fmt.Sprint(option)
			hints[HintOptionLabel+value] = opts.T(prefix+"."+value, value)
		}
	}
	return field
}

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// FieldOptions lists the choices of field with labels from localisation
// hints, defaulting to the raw value.
func FieldOptions(field model.Field) []Option {
	raw := field.Options()
	out := make([]Option, 0, len(raw))
	for _, option := range raw {
		value := fmt.Sprint(option)
		label := field.UIHints[HintOptionLabel+value]
		if label == "" {
			label = value
		}
		out = append(out, Option{Value: value, Label: label})
	}
	return out
}
