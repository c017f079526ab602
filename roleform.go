// Package roleform renders the role-dependent employee registration form.
//
// Most callers need only GenerateHTML or NewHandler; the pkg/ subpackages
// expose each stage (model, visibility, registration, renderers) for callers
// that want to compose their own pipeline.
package roleform

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-roleform/pkg/i18n"
	"github.com/goliatone/go-roleform/pkg/model"
	"github.com/goliatone/go-roleform/pkg/page"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/render"
	"github.com/goliatone/go-roleform/pkg/renderers/vanilla"
	"github.com/goliatone/go-roleform/pkg/router"
	"github.com/goliatone/go-roleform/pkg/theme"
	"github.com/goliatone/go-roleform/pkg/visibility"
	"github.com/goliatone/go-roleform/pkg/visibility/expr"
)

// Request selects what GenerateHTML renders. Zero values mean no role, the
// catalog fallback locale and the default theme.
type Request struct {
	Role         string
	Locale       string
	ThemeVariant string
}

// GenerateHTML renders the full form page as served by GET /form?role=.
func GenerateHTML(ctx context.Context, req Request) ([]byte, error) {
	catalog, err := i18n.Default()
	if err != nil {
		return nil, err
	}
	selector, err := theme.NewSelector()
	if err != nil {
		return nil, err
	}
	themeCfg, err := selector.Resolve("", req.ThemeVariant)
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New(vanilla.WithTheme(themeCfg))
	if err != nil {
		return nil, err
	}

	form, err := model.Registration(ctx)
	if err != nil {
		return nil, err
	}
	data := registration.FormData{Role: req.Role}
	form, err = visibility.Filter(form, expr.New(), visibility.Context{Values: data.Values()})
	if err != nil {
		return nil, fmt.Errorf("roleform: %w", err)
	}
	return renderer.Render(ctx, form, render.RenderOptions{
		Values:     data.Values(),
		Locale:     catalog.Resolve(req.Locale),
		Translator: catalog,
		Theme:      themeCfg,
	})
}

// NewHandler returns the two-route HTTP handler ("/" and "/form") backed by
// the vanilla renderer and the default theme. Page options such as
// page.WithSink are applied after the defaults.
func NewHandler(logger *zap.Logger, options ...page.Option) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	selector, err := theme.NewSelector()
	if err != nil {
		return nil, err
	}
	themeCfg, err := selector.Resolve("", "")
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New(vanilla.WithTheme(themeCfg))
	if err != nil {
		return nil, err
	}
	defaults := []page.Option{page.WithLogger(logger), page.WithTheme(themeCfg)}
	pages := page.New(renderer, append(defaults, options...)...)
	return router.New(pages, logger), nil
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedDocument returns the OpenAPI document the form is built from.
func EmbeddedDocument() []byte {
	return model.RegistrationDocument()
}
