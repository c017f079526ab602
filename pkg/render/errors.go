package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/registration"
)

// ErrorMapping splits validation feedback into inline field messages and
// form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapValidationError converts err into an ErrorMapping for form. Messages for
// fields that are not rendered move to Form so nothing is lost. Errors that
// are not a *registration.ValidationError become a single form message.
func MapValidationError(form model.FormModel, err error) ErrorMapping {
	var mapping ErrorMapping
	if err == nil {
		return mapping
	}
	var verr *registration.ValidationError
	if !errors.As(err, &verr) {
		mapping.Form = []string{err.Error()}
		return mapping
	}
	for _, fe := range verr.Errors {
		if _, ok := form.Field(fe.Field); !ok {
			mapping.Form = append(mapping.Form, fe.Message)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[fe.Field] = append(mapping.Fields[fe.Field], fe.Message)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates message lists, trimming and removing
// duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
