// Package page serves the registration form over HTTP. Each request is one
// event of the form state machine: show, switch role, or submit.
package page

import (
	"context"
	"errors"
	"net/http"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-roleform/pkg/i18n"
	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
	"github.com/goliatone/go-roleform/pkg/routes"
	"github.com/goliatone/go-roleform/pkg/sink"
	"github.com/goliatone/go-roleform/pkg/visibility"
	"github.com/goliatone/go-roleform/pkg/visibility/expr"
)

// Form fields that steer the handler rather than the registration.
const (
	ActionField      = "_action"
	ActionSelectRole = "select-role"
	ActionSubmit     = "submit"
	LangParam        = "lang"
	RoleParam        = "role"
)

// Renderer produces the HTML views of the page.
type Renderer interface {
	ContentType() string
	Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error)
	RenderHome(ctx context.Context, opts render.RenderOptions) ([]byte, error)
	RenderResult(ctx context.Context, result registration.Result, opts render.RenderOptions) ([]byte, error)
}

// FormSource returns the unfiltered registration form.
type FormSource func(ctx context.Context) (model.FormModel, error)

type Option func(*Handler)

// WithSink replaces the default log sink.
func WithSink(s sink.Sink) Option {
	return func(h *Handler) {
		if s != nil {
			h.sink = s
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCatalog sets the message catalog used for labels and validation text.
func WithCatalog(catalog *i18n.Catalog) Option {
	return func(h *Handler) {
		if catalog != nil {
			h.catalog = catalog
		}
	}
}

// WithLocale sets the locale used when a request does not ask for one.
func WithLocale(locale string) Option {
	return func(h *Handler) {
		h.locale = strings.TrimSpace(locale)
	}
}

func WithTheme(cfg *gotheme.RendererConfig) Option {
	return func(h *Handler) {
		h.theme = cfg
	}
}

func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(h *Handler) {
		if evaluator != nil {
			h.evaluator = evaluator
		}
	}
}

func WithFormSource(source FormSource) Option {
	return func(h *Handler) {
		if source != nil {
			h.form = source
		}
	}
}

// Handler is the Form Page. It is safe for concurrent use; no state is kept
// between requests.
type Handler struct {
	renderer  Renderer
	form      FormSource
	evaluator visibility.Evaluator
	catalog   *i18n.Catalog
	sink      sink.Sink
	theme     *gotheme.RendererConfig
	logger    *zap.Logger
	locale    string
}

var _ http.Handler = (*Handler)(nil)

func New(renderer Renderer, options ...Option) *Handler {
	h := &Handler{
		renderer:  renderer,
		form:      model.Registration,
		evaluator: expr.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.catalog == nil {
		h.catalog = i18n.MustDefault()
	}
	if h.sink == nil {
		h.sink = sink.NewLogSink(h.logger)
	}
	if h.locale == "" {
		h.locale = i18n.DefaultLocale
	}
	return h
}

// ServeHTTP dispatches GET (show) and POST (role switch or submit).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.show(w, r)
	case http.MethodPost:
		h.post(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// Home serves the placeholder view mounted at the home route.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	opts := h.options(h.requestLocale(r))
	body, err := h.renderer.RenderHome(r.Context(), opts)
	if err != nil {
		h.fail(w, r, "render home", err)
		return
	}
	h.write(w, http.StatusOK, body)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	data := registration.FormData{Role: strings.TrimSpace(r.URL.Query().Get(RoleParam))}
	h.renderForm(w, r, http.StatusOK, data, render.ErrorMapping{})
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	data := registration.Decode(r.PostForm)
	logger := h.logger.With(zap.String("role", data.Role))

	if r.PostForm.Get(ActionField) == ActionSelectRole {
		logger.Debug("role selected")
		h.renderForm(w, r, http.StatusOK, data, render.ErrorMapping{})
		return
	}

	locale := h.requestLocale(r)
	sub, err := registration.Parse(data, registration.WithMessages(h.catalog.Messages(locale)))
	if err != nil {
		var verr *registration.ValidationError
		if !errors.As(err, &verr) {
			h.fail(w, r, "validate submission", err)
			return
		}
		logger.Info("registration rejected", zap.Int("errors", len(verr.Errors)))
		form, ferr := h.visibleForm(r.Context(), data)
		if ferr != nil {
			h.fail(w, r, "load form", ferr)
			return
		}
		h.writeForm(w, r, http.StatusUnprocessableEntity, form, data, render.MapValidationError(form, err))
		return
	}

	result := registration.BuildResult(sub)
	if err := h.sink.Submit(r.Context(), result); err != nil {
		h.fail(w, r, "submit result", err)
		return
	}
	logger.Info("registration accepted")

	body, err := h.renderer.RenderResult(r.Context(), result, h.options(locale))
	if err != nil {
		h.fail(w, r, "render result", err)
		return
	}
	h.write(w, http.StatusOK, body)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data registration.FormData, errs render.ErrorMapping) {
	form, err := h.visibleForm(r.Context(), data)
	if err != nil {
		h.fail(w, r, "load form", err)
		return
	}
	h.writeForm(w, r, status, form, data, errs)
}

func (h *Handler) writeForm(w http.ResponseWriter, r *http.Request, status int, form model.FormModel, data registration.FormData, errs render.ErrorMapping) {
	opts := h.options(h.requestLocale(r))
	opts.Values = data.Values()
	opts.Errors = errs.Fields
	opts.FormErrors = errs.Form
	opts.Action = routes.FormPath.String()

	body, err := h.renderer.Render(r.Context(), form, opts)
	if err != nil {
		h.fail(w, r, "render form", err)
		return
	}
	h.write(w, status, body)
}

// visibleForm keeps the base fields and the group of data's role.
func (h *Handler) visibleForm(ctx context.Context, data registration.FormData) (model.FormModel, error) {
	form, err := h.form(ctx)
	if err != nil {
		return model.FormModel{}, err
	}
	return visibility.Filter(form, h.evaluator, visibility.Context{Values: data.Values()})
}

func (h *Handler) options(locale string) render.RenderOptions {
	return render.RenderOptions{
		Locale:       locale,
		Translator:   h.catalog,
		Theme:        h.theme,
		HiddenFields: map[string]string{LangParam: locale},
	}
}

// requestLocale prefers ?lang=, then the posted lang field, then the default.
func (h *Handler) requestLocale(r *http.Request) string {
	requested := r.URL.Query().Get(LangParam)
	if requested == "" && r.Method == http.MethodPost {
		requested = r.PostFormValue(LangParam)
	}
	if strings.TrimSpace(requested) == "" {
		requested = h.locale
	}
	return h.catalog.Resolve(requested)
}

func (h *Handler) write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error("form page failed",
		zap.String("op", op),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
