package tui

import (
	"github.com/charmbracelet/lipgloss"
	gotheme "github.com/goliatone/go-theme"
)

// Styles decorate the informational lines printed between prompts.
type Styles struct {
	Info    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles uses the accent and error colours of the form theme.
func DefaultStyles() Styles {
	return StylesFromTheme(nil)
}

// StylesFromTheme reads "checkbox-accent" and "error-color" from cfg,
// falling back to the light palette.
func StylesFromTheme(cfg *gotheme.RendererConfig) Styles {
	accent := token(cfg, "checkbox-accent", "#007bff")
	failure := token(cfg, "error-color", "#dc3545")
	return Styles{
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(failure)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745")).Bold(true),
	}
}

func token(cfg *gotheme.RendererConfig, key, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if v := cfg.Tokens[key]; len(v) > 0 && v[0] == '#' {
		return v
	}
	return fallback
}
