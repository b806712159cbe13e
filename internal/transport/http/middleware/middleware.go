// middleware — net/http мидлвары feed-service: восстановление после паники,
// X-Request-Id, request-scoped логгер, дедлайн запроса и CORS.
package middleware

import (
	"context"
	"errors"
	"net/http"
)

// Middleware — стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары к обработчику в порядке их перечисления.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter запоминает статус и размер ответа.
//
// Если задан deadline-контекст, ответ, не начатый до истечения дедлайна,
// больше не пишется: Write возвращает http.ErrHandlerTimeout, а dropped
// сообщает Timeout, что клиенту нужно отдать ошибку самому.
type statusWriter struct {
	http.ResponseWriter
	deadline context.Context
	status   int
	count    int
	dropped  bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

// started — заголовки уже ушли клиенту.
func (w *statusWriter) started() bool { return w.status != 0 }

// expired помечает ответ отброшенным, если он не начат, а дедлайн истёк.
func (w *statusWriter) expired() bool {
	if w.dropped {
		return true
	}
	if w.started() || w.deadline == nil {
		return false
	}

	w.dropped = errors.Is(w.deadline.Err(), context.DeadlineExceeded)
	return w.dropped
}

func (w *statusWriter) WriteHeader(code int) {
	if w.expired() {
		return
	}
	if !w.started() {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.expired() {
		return 0, http.ErrHandlerTimeout
	}
	if !w.started() {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

// Unwrap открывает исходный writer для http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
