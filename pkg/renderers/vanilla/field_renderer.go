package vanilla

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
	"github.com/goliatone/go-roleform/pkg/render/template"
)

// fieldView is the data handed to the field partial.
type fieldView struct {
	Name         string
	ID           string
	LabelID      string
	Label        string
	Placeholder  string
	Widget       string
	InputType    string
	Value        string
	Min          string
	HelpHTML     string
	Group        string
	Required     bool
	IsRoleSwitch bool
	ApplyLabel   string
	Options      []optionView
	Errors       []string
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldRenderer struct {
	templates template.TemplateRenderer
	partial   string
	classes   map[string]string
	opts      render.RenderOptions
}

func (r *fieldRenderer) render(field model.Field) (string, error) {
	view := r.view(field)
	out, err := r.templates.RenderTemplate(r.partial, map[string]any{
		"field":   view,
		"classes": r.classes,
	})
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", field.Name, err)
	}
	return out, nil
}

func (r *fieldRenderer) view(field model.Field) fieldView {
	widget := field.Widget()
	value := r.opts.Values[field.Name]

	view := fieldView{
		Name:        field.Name,
		ID:          controlID(field.Name),
		LabelID:     labelID(field.Name),
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Widget:      widget,
		InputType:   inputType(field, widget),
		Value:       stringValue(value),
		HelpHTML:    sanitizeHelp(field.UIHints[model.HintHelpText]),
		Group:       field.UIHints[model.HintGroup],
		Required:    field.Required,
		Errors:      append([]string(nil), r.opts.Errors[field.Name]...),
	}
	if view.HelpHTML == "" {
		view.HelpHTML = sanitizeHelp(field.Description)
	}
	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		view.Min = rule.Params["value"]
	}

	if field.Name == registration.FieldRole {
		view.IsRoleSwitch = true
		view.ApplyLabel = r.opts.T("form.selectRole", "Apply role")
	}

	selected := stringSet(value)
	for _, option := range render.FieldOptions(field) {
		_, ok := selected[option.Value]
		view.Options = append(view.Options, optionView{
			Value:    option.Value,
			Label:    option.Label,
			Selected: ok,
		})
	}
	return view
}

func inputType(field model.Field, widget string) string {
	if hint := strings.TrimSpace(field.UIHints[model.HintInputType]); hint != "" {
		return hint
	}
	switch widget {
	case model.WidgetURL:
		return "url"
	case model.WidgetNumber:
		return "number"
	default:
		return "text"
	}
}
