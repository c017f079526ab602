// Package app wires configuration, catalog, theme, renderers and sink into
// the commands exposed by the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	gotheme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-roleform/internal/config"
	"github.com/goliatone/go-roleform/pkg/i18n"
	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/page"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
	"github.com/goliatone/go-roleform/pkg/renderers/tui"
	"github.com/goliatone/go-roleform/pkg/renderers/vanilla"
	"github.com/goliatone/go-roleform/pkg/router"
	"github.com/goliatone/go-roleform/pkg/sink"
	"github.com/goliatone/go-roleform/pkg/theme"
	"github.com/goliatone/go-roleform/pkg/visibility"
	"github.com/goliatone/go-roleform/pkg/visibility/expr"
)

type Option func(*options)

type options struct {
	stdout io.Writer
	driver tui.PromptDriver
	format tui.OutputFormat
}

// WithStdout redirects the stdout sink and the fill transcript.
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stdout = w
		}
	}
}

// WithPromptDriver replaces the survey driver used by Fill.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(o *options) {
		o.driver = driver
	}
}

// WithOutputFormat selects how Fill serializes the accepted result.
func WithOutputFormat(format tui.OutputFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// collector is implemented by renderers that gather a submission
// interactively instead of drawing the form.
type collector interface {
	render.Renderer
	Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (registration.Result, error)
	Serialize(result registration.Result) ([]byte, error)
}

type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Catalog   *i18n.Catalog
	Theme     *gotheme.RendererConfig
	HTML      *vanilla.Renderer
	Renderers *render.Registry
	Sink      sink.Sink

	evaluator visibility.Evaluator
}

func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{stdout: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	catalog, err := i18n.Default()
	if err != nil {
		return nil, fmt.Errorf("app: load catalog: %w", err)
	}

	selector, err := theme.NewSelector()
	if err != nil {
		return nil, fmt.Errorf("app: theme: %w", err)
	}
	themeCfg, err := selector.Resolve(cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("app: theme: %w", err)
	}

	html, err := vanilla.New(vanilla.WithTheme(themeCfg))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	evaluator := expr.New()
	tuiOptions := []tui.Option{
		tui.WithEvaluator(evaluator),
		tui.WithMessages(func(locale string) registration.Messages { return catalog.Messages(locale) }),
		tui.WithStyles(tui.StylesFromTheme(themeCfg)),
		tui.WithOutput(o.stdout),
		tui.WithOutputFormat(o.format),
	}
	if o.driver != nil {
		tuiOptions = append(tuiOptions, tui.WithPromptDriver(o.driver))
	}
	terminal, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := registry.Register(terminal); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	var out sink.Sink = sink.NewLogSink(logger)
	if cfg.Sink == config.SinkStdout {
		out = sink.Multi{out, sink.NewWriterSink(o.stdout, "")}
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Catalog:   catalog,
		Theme:     themeCfg,
		HTML:      html,
		Renderers: registry,
		Sink:      out,
		evaluator: evaluator,
	}, nil
}

// Handler returns the HTTP router.
func (a *App) Handler() http.Handler {
	pages := page.New(a.HTML,
		page.WithSink(a.Sink),
		page.WithLogger(a.Logger),
		page.WithCatalog(a.Catalog),
		page.WithLocale(a.Config.Locale),
		page.WithTheme(a.Theme),
		page.WithEvaluator(a.evaluator),
	)
	return router.New(pages, a.Logger)
}

// Serve listens on the configured address until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Addr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", a.Config.Addr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener serves on ln and shuts down gracefully when ctx is done,
// waiting at most Config.ShutdownGrace for in-flight requests.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownGrace)
	defer cancel()
	a.Logger.Info("server shutting down", zap.Duration("grace", a.Config.ShutdownGrace))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app: serve: %w", err)
	}
	return nil
}

// RenderForm renders the form for role with the named renderer, as
// GET /form?role= would for the default HTML renderer. An empty name selects
// the registry default.
func (a *App) RenderForm(ctx context.Context, renderer, role, locale string) ([]byte, error) {
	r, err := a.Renderers.Get(renderer)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	form, err := model.Registration(ctx)
	if err != nil {
		return nil, err
	}
	data := registration.FormData{Role: role}
	// Collectors evaluate visibility after each role answer and need every field.
	if _, interactive := r.(collector); !interactive {
		form, err = visibility.Filter(form, a.evaluator, visibility.Context{Values: data.Values()})
		if err != nil {
			return nil, err
		}
	}
	return r.Render(ctx, form, render.RenderOptions{
		Values:     data.Values(),
		Locale:     a.locale(locale),
		Translator: a.Catalog,
		Theme:      a.Theme,
	})
}

// Fill runs the terminal form, passes the result to the sink and returns the
// serialized result.
func (a *App) Fill(ctx context.Context, locale string) ([]byte, error) {
	r, err := a.Renderers.Get(tui.Name)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	terminal, ok := r.(collector)
	if !ok {
		return nil, fmt.Errorf("app: renderer %q cannot collect submissions", r.Name())
	}
	form, err := model.Registration(ctx)
	if err != nil {
		return nil, err
	}
	result, err := terminal.Collect(ctx, form, render.RenderOptions{
		Locale:     a.locale(locale),
		Translator: a.Catalog,
		Theme:      a.Theme,
	})
	if err != nil {
		return nil, err
	}
	if err := a.Sink.Submit(ctx, result); err != nil {
		return nil, err
	}
	return terminal.Serialize(result)
}

func (a *App) locale(requested string) string {
	if requested == "" {
		requested = a.Config.Locale
	}
	return a.Catalog.Resolve(requested)
}
