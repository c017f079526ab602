package model

// FieldType is the simplified kind of an input.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Validation rule kinds derived from the schema. Bounds and lengths carry
// Params["value"]; patterns carry Params["pattern"].
const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleMinItems  = "minItems"
	ValidationRulePattern   = "pattern"
)

// UI hint keys read from x-roleform extensions.
const (
	HintOrder          = "order"
	HintWidget         = "widget"
	HintLabel          = "label"
	HintLabelKey       = "labelKey"
	HintPlaceholder    = "placeholder"
	HintPlaceholderKey = "placeholderKey"
	HintHelpText       = "helpText"
	HintHelpTextKey    = "helpTextKey"
	HintInputType      = "inputType"
	HintVisibilityRule = "visibilityRule"
	HintGroup          = "group"
	HintRequired       = "required"
	HintSubmitLabel    = "submitLabel"
	HintSubmitLabelKey = "submitLabelKey"
	HintTitleKey       = "titleKey"
)

// Widgets understood by the renderers.
const (
	WidgetText          = "text"
	WidgetURL           = "url"
	WidgetNumber        = "number"
	WidgetTextarea      = "textarea"
	WidgetSelect        = "select"
	WidgetCheckboxGroup = "checkbox-group"
)

type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field is a single input of a form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Widget returns the widget hint or a default derived from the type.
func (f Field) Widget() string {
	if w := f.UIHints[HintWidget]; w != "" {
		return w
	}
	switch {
	case f.Type == FieldTypeArray && f.Items != nil && len(f.Items.Enum) > 0:
		return WidgetCheckboxGroup
	case len(f.Enum) > 0:
		return WidgetSelect
	case f.Type == FieldTypeInteger || f.Type == FieldTypeNumber:
		return WidgetNumber
	default:
		return WidgetText
	}
}

// Options returns the selectable values of an enum or a multi-choice array.
func (f Field) Options() []any {
	if len(f.Enum) > 0 {
		return f.Enum
	}
	if f.Items != nil {
		return f.Items.Enum
	}
	return nil
}

// Rule returns the first validation rule of kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FormModel is what renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Field looks up a top-level field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists the top-level field names in order.
func (m FormModel) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}
