package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/merttpolat/portfolio/internal/feed"
	"github.com/merttpolat/portfolio/internal/metrics"
	"github.com/merttpolat/portfolio/internal/models"
)

// stubService — подменяет бизнес-логику.
type stubService struct {
	articles    []models.Article
	articlesErr error
	events      []models.EventData
	eventsErr   error
	panics      bool
}

func (s *stubService) Articles(context.Context) ([]models.Article, error) {
	if s.panics {
		panic("stub panic")
	}
	return s.articles, s.articlesErr
}

func (s *stubService) Events(context.Context) ([]models.EventData, error) {
	return s.events, s.eventsErr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, svc *stubService, ready *atomic.Bool) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics.New(reg).SetArticles(2)

	srv := httptest.NewServer(NewRouter(svc, Options{
		Logger:      quietLogger(),
		Timeout:     time.Second,
		BasePath:    "/api",
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		MetricsPath: "/metrics",
		Ready:       ready,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestMediumFeed_OK(t *testing.T) {
	t.Parallel()

	svc := &stubService{articles: []models.Article{{
		ID:          "https://medium.com/@merttpolat/a",
		Title:       "Kubernetes Security",
		Emoji:       "🎡",
		Link:        "https://medium.com/@merttpolat/a",
		PubDate:     "March 5, 2024",
		ReadingTime: "5 min ⏱️",
	}}}
	srv := newTestServer(t, svc, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/medium-feed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	require.JSONEq(t, `{"feed":{"rss":{"channel":[{"item":[{
		"id":"https://medium.com/@merttpolat/a",
		"title":"Kubernetes Security",
		"emoji":"🎡",
		"link":"https://medium.com/@merttpolat/a",
		"pubDate":"March 5, 2024",
		"readingTime":"5 min ⏱️"
	}]}]}}}`, body)
}

func TestMediumFeed_EmptyIsArray(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubService{}, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/medium-feed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"feed":{"rss":{"channel":[{"item":[]}]}}}`, body)
}

func TestMediumFeed_ErrorIs500(t *testing.T) {
	t.Parallel()

	svc := &stubService{articlesErr: &feed.FetchError{URL: "https://internal.example/feed", StatusCode: 503}}
	srv := newTestServer(t, svc, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/medium-feed")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	require.JSONEq(t, `{"error":"failed to fetch Medium articles"}`, body)
	require.NotContains(t, body, "internal.example")
}

func TestMediumFeed_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubService{}, nil)

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		resp, body := do(t, m, srv.URL+"/api/medium-feed")
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, m)
		require.JSONEq(t, `{"error":"method not allowed"}`, body, m)
	}
}

func TestMediumFeed_Preflight(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubService{}, nil)

	resp, body := do(t, http.MethodOptions, srv.URL+"/api/medium-feed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body)
	require.Equal(t, "GET,OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestMediumFeed_PanicIs500(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubService{panics: true}, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/medium-feed")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error":"internal error"}`, body)
}

func TestEvents(t *testing.T) {
	t.Parallel()

	svc := &stubService{events: []models.EventData{{ID: 1, Slug: "gdg-istanbul", Title: "GDG Istanbul", Date: "March 2023", Location: "TBD", Image: "/events-photos/gdg-istanbul.jpg", Order: 999}}}
	srv := newTestServer(t, svc, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/events")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Events []models.EventData `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Equal(t, svc.events, got.Events)
}

func TestEvents_ErrorIs500(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubService{eventsErr: errors.New("manifest not found")}, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/events")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error":"failed to load events"}`, body)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	ready := &atomic.Bool{}
	srv := newTestServer(t, &stubService{}, ready)

	resp, _ := do(t, http.MethodGet, srv.URL+"/livez")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/healthz")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	ready.Store(true)
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body)

	resp, body = do(t, http.MethodGet, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.Contains(body, "portfolio_feed_articles 2"))
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubService{}, nil)

	for _, path := range []string{"/api/nope", "/nope", "/medium-feed"} {
		resp, body := do(t, http.MethodGet, srv.URL+path)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		require.JSONEq(t, `{"error":"not found"}`, body, path)
	}
}
