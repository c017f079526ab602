package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a *Key
// hint is present but no Translator was configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler picks the string used when a key cannot be
// translated. fallback is the untranslated value, possibly empty.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// RenderOptions carry per-request data. Renderers never mutate them.
type RenderOptions struct {
	// Values prefill controls, keyed by field name. Multi-choice fields take
	// []any or []string.
	Values map[string]any
	// Errors are inline field messages keyed by field name.
	Errors map[string][]string
	// FormErrors are shown above the form.
	FormErrors []string
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	Theme      *theme.RendererConfig
	// HiddenFields are emitted as hidden inputs, sorted by name.
	HiddenFields map[string]string
	// Action overrides the form's endpoint.
	Action string
}

// HiddenField is a single hidden input.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// SortedHiddenFields returns HiddenFields in name order.
func (o RenderOptions) SortedHiddenFields() []HiddenField {
	if len(o.HiddenFields) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(o.HiddenFields))
	for name, value := range o.HiddenFields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// T translates key with the configured translator, falling back to fallback.
func (o RenderOptions) T(key, fallback string, args ...any) string {
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if strings.TrimSpace(key) == "" {
		return fallback
	}
	if o.Translator == nil {
		return onMissing(o.Locale, key, fallback, ErrMissingTranslator)
	}
	msg, err := o.Translator.Translate(o.Locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(o.Locale, key, fallback, err)
	}
	return msg
}
