// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку сервиса или транспорта, на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное сообщение {"error": "..."} без утечки деталей.
//
// Причина (Err) попадает только в лог.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	logctx "github.com/merttpolat/portfolio/pkg/log"
)

// Error — ошибка с готовым к отдаче клиенту статусом и сообщением.
type Error struct {
	Status  int
	Message string
	Err     error
}

// New оборачивает err в ответ со статусом status и безопасным message.
func New(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}

	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	// ErrMethodNotAllowed — метод запроса не поддерживается маршрутом.
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "method not allowed", nil)
	// ErrNotFound — маршрут не найден.
	ErrNotFound = New(http.StatusNotFound, "not found", nil)
	// ErrInternal — паника или непредусмотренная ошибка.
	ErrInternal = New(http.StatusInternalServerError, "internal error", nil)
	// ErrTimeout — обработчик не ответил до дедлайна запроса.
	ErrTimeout = New(http.StatusGatewayTimeout, "request timed out", nil)
)

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Поведение:
//   - *Error — его Status и Message;
//   - err == nil или любая другая ошибка — 500/"internal error".
func ToHTTP(err error) (int, ErrorResponse) {
	var e *Error
	if err != nil && errors.As(err, &e) {
		return e.Status, ErrorResponse{Error: e.Message}
	}

	return ErrInternal.Status, ErrorResponse{Error: ErrInternal.Message}
}

// WriteError — хелпер для HTTP-хендлеров: пишет статус и JSON-тело.
// Ответы 5xx логируются вместе с причиной.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if status >= http.StatusInternalServerError {
		attrs := []slog.Attr{
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
		}
		if err != nil {
			attrs = append(attrs, slog.String("err", err.Error()))
		}
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "request_failed", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
