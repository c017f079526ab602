// Package vanilla renders the registration pages as server-side HTML with
// pongo2 templates and a theme-derived inline stylesheet.
package vanilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
	rendertemplate "github.com/goliatone/go-roleform/pkg/render/template"
	gotemplate "github.com/goliatone/go-roleform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-roleform/pkg/routes"
	"github.com/goliatone/go-roleform/pkg/theme"
)

const Name = "vanilla"

// Section keys group fields under the two subtitles of the form.
const (
	SectionBasic = "basic"
	SectionExtra = "extra"
)

var defaultPartials = map[string]string{
	theme.PartialLayout: "layout.tmpl",
	theme.PartialHome:   "home.tmpl",
	theme.PartialForm:   "form.tmpl",
	theme.PartialResult: "result.tmpl",
	theme.PartialField:  "field.tmpl",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *gotheme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme sets the theme used when RenderOptions.Theme is nil.
func WithTheme(cfg *gotheme.RendererConfig) Option {
	return func(c *config) {
		if cfg != nil {
			c.theme = cfg
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *gotheme.RendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer. Without WithTheme the built-in light theme
// is used.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithSetName("roleform-vanilla"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if cfg.theme == nil {
		selector, err := theme.NewSelector()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: default theme: %w", err)
		}
		if cfg.theme, err = selector.Resolve("", ""); err != nil {
			return nil, fmt.Errorf("vanilla renderer: default theme: %w", err)
		}
	}

	return &Renderer{templates: renderer, theme: cfg.theme}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form page. Fields without a group hint are listed
// under the basic section, grouped fields under the extra section, which is
// omitted when empty.
func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	render.LocalizeFormModel(&form, opts)
	themeCfg := r.themeFor(opts)

	fields := &fieldRenderer{
		templates: r.templates,
		partial:   partial(themeCfg, theme.PartialField),
		classes:   chromeClasses(),
		opts:      opts,
	}

	basic := section{Key: SectionBasic, Title: opts.T("form.basic", "Basic information")}
	extra := section{Key: SectionExtra, Title: opts.T("form.extra", "Additional information")}
	hasFieldErrors := false
	for _, field := range form.Fields {
		html, err := fields.render(field)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		if len(opts.Errors[field.Name]) > 0 {
			hasFieldErrors = true
		}
		if field.UIHints[model.HintGroup] != "" {
			extra.Fields = append(extra.Fields, html)
			continue
		}
		basic.Fields = append(basic.Fields, html)
	}
	sections := []section{basic}
	if len(extra.Fields) > 0 {
		sections = append(sections, extra)
	}

	title := form.UIHints[render.HintTitle]
	if title == "" {
		title = form.Summary
	}
	submit := form.UIHints[model.HintSubmitLabel]
	if submit == "" {
		submit = opts.T("form.submit", "Submit")
	}
	action := strings.TrimSpace(opts.Action)
	if action == "" {
		action = form.Endpoint
	}
	method := strings.ToLower(form.Method)
	if method == "" {
		method = "post"
	}

	body, err := r.templates.RenderTemplate(partial(themeCfg, theme.PartialForm), map[string]any{
		"classes": chromeClasses(),
		"form": map[string]any{
			"ID":           form.OperationID,
			"Title":        title,
			"Action":       action,
			"Method":       method,
			"SubmitLabel":  submit,
			"Sections":     sections,
			"Hidden":       opts.SortedHiddenFields(),
			"Errors":       opts.FormErrors,
			"HasErrors":    hasFieldErrors || len(opts.FormErrors) > 0,
			"ErrorSummary": opts.T("form.errorSummary", "Please fix the highlighted fields."),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return r.layout(themeCfg, opts, title, routes.Form, body)
}

// RenderHome produces the placeholder page mounted at the home route.
func (r *Renderer) RenderHome(_ context.Context, opts render.RenderOptions) ([]byte, error) {
	themeCfg := r.themeFor(opts)
	heading := opts.T("home.heading", "Home")
	body, err := r.templates.RenderTemplate(partial(themeCfg, theme.PartialHome), map[string]any{
		"classes": chromeClasses(),
		"home": map[string]any{
			"Heading":   heading,
			"Intro":     opts.T("home.intro", ""),
			"FormURL":   withLocale(routes.FormPath.String(), opts.Locale),
			"FormLabel": opts.T("nav.form", "Registration form"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render home: %w", err)
	}
	return r.layout(themeCfg, opts, heading, routes.Home, body)
}

// RenderResult produces the confirmation page for an accepted submission.
func (r *Renderer) RenderResult(_ context.Context, result registration.Result, opts render.RenderOptions) ([]byte, error) {
	themeCfg := r.themeFor(opts)

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: encode result: %w", err)
	}
	entries := make([]resultEntry, 0, result.Len())
	for _, key := range result.Keys() {
		value, _ := result.Get(key)
		text := stringValue(value)
		if key == registration.FieldRole {
			text = opts.T("roles."+text, text)
		}
		entries = append(entries, resultEntry{
			Key:   key,
			Label: opts.T("fields."+key+".label", key),
			Value: text,
		})
	}

	title := opts.T("result.title", "Registration submitted")
	body, err := r.templates.RenderTemplate(partial(themeCfg, theme.PartialResult), map[string]any{
		"classes": chromeClasses(),
		"result": map[string]any{
			"Title":      title,
			"Entries":    entries,
			"JSON":       string(bytes.TrimSpace(pretty)),
			"AgainURL":   withLocale(routes.FormPath.String(), opts.Locale),
			"AgainLabel": opts.T("result.again", "Register another employee"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render result: %w", err)
	}
	return r.layout(themeCfg, opts, title, routes.Form, body)
}

type section struct {
	Key    string
	Title  string
	Fields []string
}

type resultEntry struct {
	Key   string
	Label string
	Value string
}

type navLink struct {
	URL     string
	Label   string
	Current bool
}

func (r *Renderer) layout(cfg *gotheme.RendererConfig, opts render.RenderOptions, title string, current routes.Key, body string) ([]byte, error) {
	lang := opts.Locale
	if lang == "" {
		lang = "en"
	}
	nav := []navLink{
		{URL: withLocale(routes.HomePath.String(), opts.Locale), Label: opts.T("nav.home", "Home"), Current: current == routes.Home},
		{URL: withLocale(routes.FormPath.String(), opts.Locale), Label: opts.T("nav.form", "Registration form"), Current: current == routes.Form},
	}
	page := map[string]any{
		"Lang":       lang,
		"Title":      title,
		"AppTitle":   opts.T("app.title", ""),
		"Stylesheet": theme.Stylesheet(cfg),
		"Content":    body,
		"Nav":        nav,
		"Theme":      "",
		"Variant":    "",
	}
	if cfg != nil {
		page["Theme"] = cfg.Theme
		page["Variant"] = cfg.Variant
	}

	var buf bytes.Buffer
	if _, err := r.templates.RenderTemplate(partial(cfg, theme.PartialLayout), map[string]any{
		"classes": chromeClasses(),
		"page":    page,
	}, &buf); err != nil {
		return nil, fmt.Errorf("vanilla renderer: render layout: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) themeFor(opts render.RenderOptions) *gotheme.RendererConfig {
	if opts.Theme != nil {
		return opts.Theme
	}
	return r.theme
}

func partial(cfg *gotheme.RendererConfig, key string) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[key]); name != "" {
			return name
		}
	}
	return defaultPartials[key]
}
