package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	logctx "github.com/merttpolat/portfolio/pkg/log"
)

// Logging кладёт request-scoped логгер (с request_id) в контекст и пишет
// одну запись "http_request" на каждый запрос.
//
// Уровень записи зависит от статуса: 5xx — Error, 4xx — Warn, иначе Info.
// Пути из quiet (пробы /livez, /healthz, /metrics) пишутся на Debug,
// если ответ успешный. Для маршрутов chi добавляется шаблон маршрута.
func Logging(l *slog.Logger, quiet ...string) Middleware {
	if l == nil {
		l = slog.Default()
	}

	quietPaths := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		if p != "" {
			quietPaths[p] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := l
			if rid := r.Header.Get(HeaderRequestID); rid != "" {
				reqLogger = reqLogger.With(slog.String("request_id", rid))
			}
			r = r.WithContext(logctx.Into(r.Context(), reqLogger))

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			dur := time.Since(start)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("dur", dur),
				slog.Int("bytes", sw.count),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					attrs = append(attrs, slog.String("route", pattern))
				}
			}

			_, isQuiet := quietPaths[r.URL.Path]
			logctx.From(r.Context()).LogAttrs(r.Context(), requestLevel(status, isQuiet), "http_request", attrs...)
		})
	}
}

func requestLevel(status int, quiet bool) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case quiet:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
