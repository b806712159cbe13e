// handlers — HTTP-эндпойнты feed-service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/merttpolat/portfolio/internal/models"
)

// Service — то, что хендлерам нужно от бизнес-логики (реализация: *service.Service).
type Service interface {
	Articles(ctx context.Context) ([]models.Article, error)
	Events(ctx context.Context) ([]models.EventData, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc   Service
	ready *atomic.Bool
}

// New создаёт хендлеры. ready управляет ответом /healthz; nil означает «всегда готов».
func New(svc Service, ready *atomic.Bool) *Handlers {
	if ready == nil {
		ready = &atomic.Bool{}
		ready.Store(true)
	}

	return &Handlers{svc: svc, ready: ready}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
