package middleware

import (
	"log/slog"
	"net/http"

	apierrors "github.com/merttpolat/portfolio/internal/transport/http/errors"
	logctx "github.com/merttpolat/portfolio/pkg/log"
)

// Recover перехватывает panic, конвертирует в 500 и пишет {"error": ...}.
// Детали паники не утекают на клиент. Если ответ уже начат, статус
// поменять нельзя: паника только логируется.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).
					LogAttrs(r.Context(), slog.LevelError, "panic",
						slog.String("path", r.URL.Path),
						slog.Any("reason", rec),
						slog.Bool("response_started", sw.started()),
					)
				if !sw.started() {
					apierrors.WriteError(w, r, apierrors.ErrInternal)
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
