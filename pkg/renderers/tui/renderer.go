// Package tui fills the registration form interactively in a terminal. The
// same form model, visibility rules and validation used by the HTML page
// drive the prompts.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
	"github.com/goliatone/go-roleform/pkg/visibility"
	"github.com/goliatone/go-roleform/pkg/visibility/expr"
)

const Name = "tui"

// Renderer implements render.Renderer for terminal sessions. Render returns
// the accepted result, not a view of the form.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	evaluator    visibility.Evaluator
	messages     MessagesFunc
	maxAttempts  int
	styles       Styles
	out          io.Writer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		evaluator:    expr.New(),
		maxAttempts:  defaultMaxAttempts,
		styles:       DefaultStyles(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out, r.styles)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render collects a valid registration and serializes the result in the
// configured output format.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	result, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.Serialize(result)
}

// Collect prompts for the base fields, then for the group selected by the
// role answer, and validates. Invalid fields are reported and asked again
// until the input is accepted or the attempt budget runs out, in which case
// the last *registration.ValidationError is returned.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (registration.Result, error) {
	if ctx == nil {
		return registration.Result{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return registration.Result{}, err
	}
	if r.driver == nil {
		return registration.Result{}, errors.New("tui: prompt driver is nil")
	}

	render.LocalizeFormModel(&form, opts)
	state := NewState(opts.Values)

	title := form.UIHints[render.HintTitle]
	if title == "" {
		title = form.Summary
	}
	intro := opts.T("tui.intro", fmt.Sprintf("Fill in the %s form. Press Ctrl+C to cancel.", title), title)
	if err := r.driver.Info(ctx, intro); err != nil {
		return registration.Result{}, err
	}

	var validationOpts []registration.Option
	if r.messages != nil {
		validationOpts = append(validationOpts, registration.WithMessages(r.messages(opts.Locale)))
	}

	var pending map[string]bool
	for attempt := 1; ; attempt++ {
		if err := r.promptFields(ctx, form, state, pending); err != nil {
			return registration.Result{}, err
		}

		sub, err := registration.Parse(state.FormData(), validationOpts...)
		if err == nil {
			if err := r.driver.Info(ctx, opts.T("tui.done", "Registration complete")); err != nil {
				return registration.Result{}, err
			}
			return registration.BuildResult(sub), nil
		}

		var verr *registration.ValidationError
		if !errors.As(err, &verr) || attempt >= r.maxAttempts {
			return registration.Result{}, err
		}
		pending = make(map[string]bool, len(verr.Errors))
		for _, fe := range verr.Errors {
			label := fe.Field
			if field, ok := form.Field(fe.Field); ok && field.Label != "" {
				label = field.Label
			}
			msg := opts.T("tui.invalid", fmt.Sprintf("%s: %s", label, fe.Message), label, fe.Message)
			if err := r.driver.Error(ctx, msg); err != nil {
				return registration.Result{}, err
			}
			pending[fe.Field] = true
		}
	}
}

// promptFields asks the fields in only, or every field when only is nil.
// Ungrouped fields come first; the role group is evaluated afterwards so a
// changed role unmounts the old group and asks the whole new one.
func (r *Renderer) promptFields(ctx context.Context, form model.FormModel, state *State, only map[string]bool) error {
	previousRole := registration.Role(state.Get(registration.FieldRole))

	for _, field := range form.Fields {
		if visibility.Rule(field) != "" {
			continue
		}
		if only != nil && !only[field.Name] {
			continue
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return err
		}
	}

	currentRole := registration.Role(state.Get(registration.FieldRole))
	roleChanged := currentRole != previousRole
	if roleChanged {
		state.Clear(previousRole.Fields()...)
	}

	visible, err := visibility.Filter(form, r.evaluator, visibility.Context{Values: state.FormData().Values()})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	for _, field := range visible.Fields {
		if visibility.Rule(field) == "" {
			continue
		}
		if only != nil && !only[field.Name] && !roleChanged {
			continue
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	message := field.Label
	if message == "" {
		message = field.Name
	}
	help := plainText(field.UIHints[model.HintHelpText])

	switch field.Widget() {
	case model.WidgetSelect:
		options := render.FieldOptions(field)
		labels := make([]string, len(options))
		current := state.Get(field.Name)
		defaultIndex := -1
		for i, option := range options {
			labels[i] = option.Label
			if option.Value == current {
				defaultIndex = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("%w: field %q index %d", ErrInvalidChoice, field.Name, idx)
		}
		state.Set(field.Name, options[idx].Value)

	case model.WidgetCheckboxGroup:
		options := render.FieldOptions(field)
		labels := make([]string, len(options))
		selected := make(map[string]struct{})
		for _, value := range state.List(field.Name) {
			selected[value] = struct{}{}
		}
		var defaults []int
		for i, option := range options {
			labels[i] = option.Label
			if _, ok := selected[option.Value]; ok {
				defaults = append(defaults, i)
			}
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  labels,
			Defaults: defaults,
			Help:     help,
		})
		if err != nil {
			return err
		}
		values := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(options) {
				return fmt.Errorf("%w: field %q index %d", ErrInvalidChoice, field.Name, idx)
			}
			values = append(values, options[idx].Value)
		}
		state.SetList(field.Name, values)

	case model.WidgetTextarea:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: state.Get(field.Name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		state.Set(field.Name, value)

	default:
		value, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: state.Get(field.Name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		state.Set(field.Name, value)
	}
	return nil
}

// Serialize encodes result in the configured output format.
func (r *Renderer) Serialize(result registration.Result) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, key := range result.Keys() {
			value, _ := result.Get(key)
			switch v := value.(type) {
			case []string:
				values[key] = append([]string(nil), v...)
			default:
				values.Set(key, fmt.Sprint(v))
			}
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var buf bytes.Buffer
		for _, key := range result.Keys() {
			value, _ := result.Get(key)
			if list, ok := value.([]string); ok {
				value = strings.Join(list, ", ")
			}
			fmt.Fprintf(&buf, "%s: %v\n", key, value)
		}
		return buf.Bytes(), nil
	default:
		out, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("tui: encode result: %w", err)
		}
		return out, nil
	}
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainText strips markup from help text meant for HTML.
func plainText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(plainPolicy.Sanitize(raw))
}
