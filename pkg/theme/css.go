package theme

import (
	_ "embed"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// CSSVarPrefix prefixes every custom property derived from a token.
const CSSVarPrefix = "--rf-"

//go:embed roleform.css
var baseStylesheet string

// Tokens merges the variant tokens of selection over the manifest tokens.
func Tokens(selection *gotheme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := copyMap(selection.Manifest.Tokens)
	if out == nil {
		out = make(map[string]string)
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			out[k] = v
		}
	}
	return out
}

// Partials merges the variant templates over the manifest templates.
func Partials(selection *gotheme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	out := copyMap(selection.Manifest.Templates)
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Templates {
			if out == nil {
				out = make(map[string]string)
			}
			out[k] = v
		}
	}
	return out
}

// CSSVars maps tokens to CSS custom properties.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.ReplaceAll(strings.TrimSpace(key), ".", "-")
		if name == "" {
			continue
		}
		out[CSSVarPrefix+name] = value
	}
	return out
}

// RendererConfig converts a selection into the renderer-facing config.
func RendererConfig(selection *gotheme.Selection) *gotheme.RendererConfig {
	if selection == nil {
		return nil
	}
	tokens := Tokens(selection)
	return &gotheme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: Partials(selection),
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		AssetURL: assetResolver(selection),
	}
}

func assetResolver(selection *gotheme.Selection) func(string) string {
	if selection.Manifest == nil {
		return nil
	}
	base := selection.Manifest.Assets
	var overlay gotheme.Assets
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		overlay = variant.Assets
	}
	return func(key string) string {
		file, ok := overlay.Files[key]
		prefix := overlay.Prefix
		if !ok {
			file, ok = base.Files[key]
		}
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			prefix = base.Prefix
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}

// RootBlock renders the custom properties as a sorted ":root { ... }" block.
func RootBlock(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Stylesheet returns the full CSS for cfg: the custom property block followed
// by the rules that consume it.
func Stylesheet(cfg *gotheme.RendererConfig) string {
	if cfg == nil {
		return baseStylesheet
	}
	return RootBlock(cfg.CSSVars) + baseStylesheet
}
