package vanilla

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "rf-" + trimmed
}

func labelID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-label"
}

// stringValue flattens a prefill value to the text shown in a control.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case *int:
		if v == nil {
			return ""
		}
		return fmt.Sprint(*v)
	default:
		return fmt.Sprint(v)
	}
}

// stringSet collects the selected values of a multi-choice prefill.
func stringSet(value any) map[string]struct{} {
	out := make(map[string]struct{})
	switch v := value.(type) {
	case string:
		if v != "" {
			out[v] = struct{}{}
		}
	case []string:
		for _, item := range v {
			out[item] = struct{}{}
		}
	case []any:
		for _, item := range v {
			out[fmt.Sprint(item)] = struct{}{}
		}
	}
	return out
}

// withLocale appends ?lang= to path when locale is set.
func withLocale(path, locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return path
	}
	return path + "?" + url.Values{"lang": {locale}}.Encode()
}

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelp strips help text down to inline user-generated-content markup.
func sanitizeHelp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	helpPolicyOnce.Do(func() {
		helpPolicy = bluemonday.UGCPolicy()
	})
	return helpPolicy.Sanitize(raw)
}
