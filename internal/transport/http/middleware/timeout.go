package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/merttpolat/portfolio/internal/transport/http/errors"
	logctx "github.com/merttpolat/portfolio/pkg/log"
)

// Timeout ограничивает запрос дедлайном d (уже существующий дедлайн
// не переопределяется). Если обработчик не начал ответ до дедлайна,
// его запоздалый ответ отбрасывается и клиент получает 504
// {"error": "request timed out"}. Значение <=0 делает мидлвар no-op.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Deadline(); !ok {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}

			tw := &statusWriter{ResponseWriter: w, deadline: ctx}
			next.ServeHTTP(tw, r.WithContext(ctx))

			if !tw.expired() {
				return
			}

			logctx.From(ctx).LogAttrs(ctx, slog.LevelWarn, "request_timeout",
				slog.String("path", r.URL.Path),
				slog.Duration("timeout", d),
			)
			apierrors.WriteError(w, r, apierrors.ErrTimeout)
		})
	}
}
