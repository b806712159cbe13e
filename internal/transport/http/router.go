package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/merttpolat/portfolio/internal/transport/http/errors"
	"github.com/merttpolat/portfolio/internal/transport/http/handlers"
	"github.com/merttpolat/portfolio/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger      *slog.Logger
	Timeout     time.Duration
	BasePath    string       // например, "/api"; если пустой — роуты регистрируются на корне.
	Metrics     http.Handler // promhttp.Handler(); nil — эндпойнт не регистрируется.
	MetricsPath string
	Ready       *atomic.Bool
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// /livez, /healthz и метрики всегда живут на корне, API — под BasePath.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // X-Request-Id нужен Logging
		middleware.Logging(opts.Logger, "/livez", "/healthz", opts.MetricsPath),
		middleware.CORS(), // pre-flight отвечает до маршрутизации
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}
	withErrorHandlers(root)

	h := handlers.New(svc, opts.Ready)

	root.Get("/livez", h.Livez)
	root.Get("/healthz", h.Healthz)
	if opts.Metrics != nil && opts.MetricsPath != "" {
		root.Method(http.MethodGet, opts.MetricsPath, opts.Metrics)
	}

	if opts.BasePath != "" && opts.BasePath != "/" {
		sub := chi.NewRouter()
		withErrorHandlers(sub)
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/medium-feed", h.MediumFeed)
	r.Get("/events", h.Events)
}

// withErrorHandlers отдаёт 404/405 в том же формате {"error": ...}, что и хендлеры.
func withErrorHandlers(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, apierrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, apierrors.ErrMethodNotAllowed)
	})
}
