package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/visibility"
)

// OutputFormat controls how the accepted result is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the ordered result object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "key: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

const defaultMaxAttempts = 5

// OutputFormats lists the accepted formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText}
}

// ParseOutputFormat maps a name onto an OutputFormat. Empty means JSON.
func ParseOutputFormat(name string) (OutputFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return OutputFormatJSON, nil
	}
	for _, format := range OutputFormats() {
		if string(format) == name {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// MessagesFunc returns validation messages for a locale.
type MessagesFunc func(locale string) registration.Messages

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithEvaluator replaces the visibility evaluator used to pick the role group.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(r *Renderer) {
		if evaluator != nil {
			r.evaluator = evaluator
		}
	}
}

// WithMessages localises validation messages.
func WithMessages(fn MessagesFunc) Option {
	return func(r *Renderer) {
		r.messages = fn
	}
}

// WithMaxAttempts bounds how many times invalid input is re-prompted before
// the validation error is returned.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithStyles sets the lipgloss styles of the default survey driver.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}
