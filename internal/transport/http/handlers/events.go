package handlers

import (
	"net/http"

	"github.com/merttpolat/portfolio/internal/models"
	apierrors "github.com/merttpolat/portfolio/internal/transport/http/errors"
)

// EventsResponse — тело ответа GET /events.
type EventsResponse struct {
	Events []models.EventData `json:"events"`
}

// Events — GET /events: события в порядке отображения.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")

	events, err := h.svc.Events(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, apierrors.New(http.StatusInternalServerError, "failed to load events", err))
		return
	}

	if events == nil {
		events = []models.EventData{}
	}

	writeJSON(w, http.StatusOK, EventsResponse{Events: events})
}
