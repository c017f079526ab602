// Package lint reports unsupported x-roleform UI extensions and visibility
// rules that do not compile.
package lint

import (
	"context"
	"fmt"
	"sort"
	"strings"

	internalmodel "github.com/goliatone/go-roleform/internal/model"
	"github.com/goliatone/go-roleform/internal/openapi/parser"
	"github.com/goliatone/go-roleform/pkg/schema"
	"github.com/goliatone/go-roleform/pkg/visibility/expr"
)

// Violation is a single lint finding.
type Violation struct {
	File     string
	Location string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.File, v.Location, v.Message)
}

// Document lints one OpenAPI document. file only labels the findings.
func Document(ctx context.Context, file string, raw []byte) ([]Violation, error) {
	set, err := parser.New(parser.Options{AllowPartialDocuments: true}).Parse(ctx, raw)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(set.Forms))
	for id := range set.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []Violation
	for _, id := range ids {
		form := set.Forms[id]
		base := []string{"operation", id}
		result = append(result, lintExtensions(file, base, form.Extensions)...)
		result = append(result, lintSchema(file, append(base, "requestBody"), form.Schema)...)
	}
	return result, nil
}

func lintSchema(file string, path []string, s schema.Schema) []Violation {
	result := lintExtensions(file, path, s.Extensions)

	keys := make([]string, 0, len(s.Properties))
	for key := range s.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, lintSchema(file, appendPath(path, "properties."+key), s.Properties[key])...)
	}
	if s.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *s.Items)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []Violation {
	if len(extensions) == 0 {
		return nil
	}
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []Violation
	for _, key := range keys {
		value := extensions[key]
		switch {
		case key == parser.ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, violation(file, path, "%s must be an object, found %T", parser.ExtensionNamespace, value))
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				result = append(result, lintHint(file, appendPath(path, nestedKey), nestedKey, nested[nestedKey])...)
			}
		case strings.HasPrefix(key, parser.ExtensionNamespace+"-"):
			result = append(result, lintHint(file, path, strings.TrimPrefix(key, parser.ExtensionNamespace+"-"), value)...)
		}
	}
	return result
}

func lintHint(file string, path []string, key string, value any) []Violation {
	if key == "" {
		return []Violation{violation(file, path, "extension key is empty")}
	}
	if !internalmodel.IsAllowedHintKey(key) {
		return []Violation{violation(file, path, "unsupported UI extension key %q (supported: %s)",
			key, strings.Join(internalmodel.AllowedHintKeys(), ", "))}
	}
	text, ok := internalmodel.CanonicalValue(value)
	if !ok {
		return []Violation{violation(file, path, "value for %q must be a string, number, or boolean (got %T)", key, value)}
	}
	if key == internalmodel.HintVisibilityRule {
		if _, err := expr.Compile(text); err != nil {
			return []Violation{violation(file, path, "visibility rule %q: %v", text, err)}
		}
	}
	return nil
}

func violation(file string, path []string, format string, args ...any) Violation {
	return Violation{File: file, Location: strings.Join(path, " > "), Message: fmt.Sprintf(format, args...)}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
