package handlers

import (
	"net/http"

	"github.com/merttpolat/portfolio/internal/models"
	apierrors "github.com/merttpolat/portfolio/internal/transport/http/errors"
)

// MediumFeedResponse повторяет форму ответа rss2json, на которую рассчитан фронтенд:
// {"feed":{"rss":{"channel":[{"item":[...]}]}}}.
type MediumFeedResponse struct {
	Feed struct {
		RSS struct {
			Channel []FeedChannel `json:"channel"`
		} `json:"rss"`
	} `json:"feed"`
}

// FeedChannel — единственный канал ответа.
type FeedChannel struct {
	Item []models.Article `json:"item"`
}

func newMediumFeedResponse(articles []models.Article) MediumFeedResponse {
	if articles == nil {
		articles = []models.Article{}
	}

	var resp MediumFeedResponse
	resp.Feed.RSS.Channel = []FeedChannel{{Item: articles}}
	return resp
}

// MediumFeed — GET /medium-feed: статьи блога, новые первыми.
// Ответ не кэшируется; любая ошибка ленты даёт 500 без деталей.
func (h *Handlers) MediumFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")

	articles, err := h.svc.Articles(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, apierrors.New(http.StatusInternalServerError, "failed to fetch Medium articles", err))
		return
	}

	writeJSON(w, http.StatusOK, newMediumFeedResponse(articles))
}
