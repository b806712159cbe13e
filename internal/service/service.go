// service связывает пайплайны ленты и событий с транспортом.
package service

import (
	"context"

	"github.com/merttpolat/portfolio/internal/feed"
	"github.com/merttpolat/portfolio/internal/metrics"
	"github.com/merttpolat/portfolio/internal/models"
)

// FeedParser — загрузка и разбор одной ленты (реализация: *feed.Parser).
//
// Реализация обязана уважать ctx и возвращать *feed.FetchError или
// *feed.ParseError для фатальных ошибок источника.
type FeedParser interface {
	Parse(ctx context.Context, src models.FeedSource) (feed.Batch, error)
}

// EventLoader — список событий для отрисовки (реализация: *events.Loader).
type EventLoader interface {
	Load(ctx context.Context) ([]models.EventData, error)
}

// Service — бизнес-логика feed-service.
type Service struct {
	parser  FeedParser
	loader  EventLoader
	sources []models.FeedSource
	metrics *metrics.Metrics
}

// New создает новый экземпляр Service. sources — единая точка конфигурации
// списка лент (см. config.FeedConfig.SourceList); m может быть nil.
func New(parser FeedParser, loader EventLoader, sources []models.FeedSource, m *metrics.Metrics) *Service {
	return &Service{
		parser:  parser,
		loader:  loader,
		sources: sources,
		metrics: m,
	}
}
