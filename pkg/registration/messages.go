package registration

// Messages resolves the user-facing text for a failed rule. An empty return
// means "no message for this pair" and the default is used instead.
type Messages interface {
	Message(field, rule string) string
}

// MessageMap is a Messages keyed by "<field>.<rule>".
type MessageMap map[string]string

func (m MessageMap) Message(field, rule string) string {
	return m[field+"."+rule]
}

// MessagesFunc adapts a function to Messages.
type MessagesFunc func(field, rule string) string

func (fn MessagesFunc) Message(field, rule string) string {
	if fn == nil {
		return ""
	}
	return fn(field, rule)
}

// DefaultMessages holds the English validation messages.
var DefaultMessages = MessageMap{
	FieldName + "." + RuleRequired:           "Please enter your name",
	FieldRole + "." + RuleRequired:           "Please select a role",
	FieldRole + "." + RuleOneOf:              "Please select one of the listed roles",
	FieldTechStack + "." + RuleRequired:      "Please select at least one tech stack",
	FieldGitHub + "." + RuleRequired:         "Please enter your GitHub URL",
	FieldGitHub + "." + RulePattern:          "Please enter a valid GitHub URL",
	FieldDesignTools + "." + RuleRequired:    "Please select at least one design tool",
	FieldPortfolio + "." + RuleRequired:      "Please enter your design portfolio URL",
	FieldPortfolio + "." + RulePattern:       "Please enter a valid URL",
	FieldExperienceYear + "." + RuleRequired: "Please enter your years of experience",
	FieldExperienceYear + "." + RuleMin:      "Please enter a number of 0 or more",
	FieldExperienceYear + "." + RuleNumber:   "Please enter a whole number",
	FieldProjectSummary + "." + RuleRequired: "Please describe your main project",
}

func resolveMessage(custom Messages, field, rule string) string {
	if custom != nil {
		if msg := custom.Message(field, rule); msg != "" {
			return msg
		}
	}
	if msg := DefaultMessages.Message(field, rule); msg != "" {
		return msg
	}
	return field + " is invalid"
}
