// Package router mounts the two application routes on a chi mux.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-roleform/pkg/routes"
)

// Pages serves the views behind the route table.
type Pages interface {
	http.Handler
	Home(w http.ResponseWriter, r *http.Request)
}

// New returns a router mounting GET / and GET|POST /form. Unknown paths get
// chi's default 404.
func New(pages Pages, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID, middleware.Recoverer, RequestLogger(logger))

	mux.Get(routes.MustLookup(routes.Home).String(), pages.Home)
	form := routes.MustLookup(routes.Form).String()
	mux.Get(form, pages.ServeHTTP)
	mux.Post(form, pages.ServeHTTP)
	return mux
}

// RequestLogger writes one zap entry per request once it completes.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				logger.Info("http request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
