package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const extensionNamespace = "x-roleform"

// ParseExtensions flattens "x-roleform: {k: v}" and "x-roleform-k: v" into a
// string map. Prefixed keys win over the nested map.
func ParseExtensions(ext map[string]any) map[string]string {
	out := make(map[string]string)
	if nested, ok := ext[extensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			if s, ok := canonical(value); ok {
				out[key] = s
			}
		}
	}
	for key, value := range ext {
		name, ok := strings.CutPrefix(key, extensionNamespace+"-")
		if !ok || name == "" {
			continue
		}
		if s, ok := canonical(value); ok {
			out[name] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func canonical(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(payload), true
	}
}

var allowedHints = map[string]struct{}{
	HintOrder: {}, HintWidget: {}, HintLabel: {}, HintLabelKey: {},
	HintPlaceholder: {}, HintPlaceholderKey: {}, HintHelpText: {}, HintHelpTextKey: {},
	HintInputType: {}, HintVisibilityRule: {}, HintGroup: {}, HintRequired: {},
	HintSubmitLabel: {}, HintSubmitLabelKey: {}, HintTitleKey: {},
	"optionLabelKeyPrefix": {},
}

// IsAllowedHintKey reports whether key is a UI hint the builder or renderers
// understand.
func IsAllowedHintKey(key string) bool {
	_, ok := allowedHints[key]
	return ok
}

// AllowedHintKeys returns the supported hint keys, sorted.
func AllowedHintKeys() []string {
	keys := make([]string, 0, len(allowedHints))
	for key := range allowedHints {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CanonicalValue reports whether value is a scalar hint value and returns its
// string form.
func CanonicalValue(value any) (string, bool) {
	switch v := value.(type) {
	case map[string]any, []any:
		return "", false
	case string:
		return v, true
	}
	return canonical(value)
}
