// Package theme describes the form's presentation as a go-theme manifest:
// design tokens for each structural role (container, title, item, checkbox
// group, button, error) plus a dark variant. It carries no behaviour.
package theme

import (
	gotheme "github.com/goliatone/go-theme"
)

const (
	Name         = "roleform"
	Version      = "1.0.0"
	VariantLight = "light"
	VariantDark  = "dark"
)

// Partial keys map structural templates to files in the HTML renderer bundle.
const (
	PartialLayout = "page.layout"
	PartialHome   = "page.home"
	PartialForm   = "page.form"
	PartialResult = "page.result"
	PartialField  = "forms.field"
)

// AssetStylesheet is the asset key of the base stylesheet.
const AssetStylesheet = "stylesheet"

var baseTokens = map[string]string{
	"page-background":      "#ffffff",
	"page-color":           "#212529",
	"container-max-width":  "600px",
	"container-padding":    "20px",
	"container-background": "#f8f9fa",
	"container-radius":     "12px",
	"container-shadow":     "0 4px 6px rgba(0, 0, 0, 0.1)",
	"form-gap":             "16px",
	"item-gap":             "8px",
	"label-weight":         "600",
	"label-color":          "#333",
	"label-size":           "14px",
	"input-padding":        "12px",
	"input-border":         "2px solid #e1e5e9",
	"input-radius":         "8px",
	"input-size":           "14px",
	"input-background":     "#ffffff",
	"input-color":          "#212529",
	"focus-border":         "#007bff",
	"focus-ring":           "0 0 0 3px rgba(0, 123, 255, 0.1)",
	"placeholder-color":    "#adb5bd",
	"textarea-min-height":  "100px",
	"title-size":           "28px",
	"title-color":          "#333",
	"subtitle-size":        "18px",
	"subtitle-color":       "#495057",
	"subtitle-border":      "2px solid #e9ecef",
	"checkbox-gap":         "12px",
	"checkbox-padding":     "16px",
	"checkbox-background":  "white",
	"checkbox-border":      "1px solid #e1e5e9",
	"checkbox-accent":      "#007bff",
	"checkbox-label-color": "#495057",
	"checkbox-hover":       "#007bff",
	"button-height":        "48px",
	"button-background":    "linear-gradient(135deg, #007bff 0%, #0056b3 100%)",
	"button-color":         "white",
	"button-size":          "16px",
	"button-shadow":        "0 4px 12px rgba(0, 123, 255, 0.3)",
	"error-color":          "#dc3545",
	"error-background":     "#f8d7da",
	"error-border":         "1px solid #f5c6cb",
	"error-size":           "12px",
}

var darkTokens = map[string]string{
	"page-background":      "#0d1117",
	"page-color":           "#e6edf3",
	"container-background": "#161b22",
	"container-shadow":     "0 4px 6px rgba(0, 0, 0, 0.4)",
	"label-color":          "#e6edf3",
	"input-border":         "2px solid #30363d",
	"input-background":     "#0d1117",
	"input-color":          "#e6edf3",
	"title-color":          "#f0f6fc",
	"subtitle-color":       "#c9d1d9",
	"subtitle-border":      "2px solid #30363d",
	"checkbox-background":  "#0d1117",
	"checkbox-border":      "1px solid #30363d",
	"checkbox-label-color": "#c9d1d9",
	"error-background":     "#3d1d20",
	"error-border":         "1px solid #842029",
	"error-color":          "#f1aeb5",
}

// Manifest returns a fresh copy of the built-in manifest.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    Name,
		Version: Version,
		Tokens:  copyMap(baseTokens),
		Templates: map[string]string{
			PartialLayout: "layout.tmpl",
			PartialHome:   "home.tmpl",
			PartialForm:   "form.tmpl",
			PartialResult: "result.tmpl",
			PartialField:  "field.tmpl",
		},
		Assets: gotheme.Assets{
			Prefix: "/assets/" + Name,
			Files: map[string]string{
				AssetStylesheet: "roleform.css",
			},
		},
		Variants: map[string]gotheme.Variant{
			VariantLight: {},
			VariantDark: {
				Tokens: copyMap(darkTokens),
			},
		},
	}
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
