package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/merttpolat/portfolio/internal/feed"
	"github.com/merttpolat/portfolio/internal/metrics"
	"github.com/merttpolat/portfolio/internal/models"
	"github.com/merttpolat/portfolio/pkg/log"
)

// Articles загружает все настроенные ленты по очереди, объединяет статьи,
// удаляет дубли по ссылке (первое вхождение остаётся) и сортирует новые первыми.
//
// Ошибка любого источника фатальна для всего вызова: частичный результат не
// возвращается, исходная ошибка доступна через errors.As. Пустой результат
// допустим и сопровождается предупреждением.
func (s *Service) Articles(ctx context.Context) ([]models.Article, error) {
	const op = "service.Articles"

	lg := log.From(ctx)

	var all []models.Article
	for _, src := range s.sources {
		lg.Debug("feed_fetch_start",
			slog.String("op", op),
			slog.String("url", src.URL),
		)

		start := time.Now()
		batch, err := s.parser.Parse(ctx, src)
		s.metrics.ObserveFetch(fetchResult(err), time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		s.metrics.AddSkipped(batch.Skipped)
		all = append(all, batch.Articles...)

		lg.Info("feed_fetched",
			slog.String("op", op),
			slog.String("url", src.URL),
			slog.Int("items", batch.Total),
			slog.Int("articles", len(batch.Articles)),
			slog.Int("skipped", batch.Skipped),
		)
	}

	articles, dropped := feed.Dedupe(all)
	s.metrics.AddDuplicates(dropped)
	feed.SortNewestFirst(articles)
	s.metrics.SetArticles(len(articles))

	if len(articles) == 0 {
		lg.Warn("feed_empty",
			slog.String("op", op),
			slog.Int("sources", len(s.sources)),
		)
		return articles, nil
	}

	lg.Info("articles_ready",
		slog.String("op", op),
		slog.Int("articles", len(articles)),
		slog.Int("duplicates", dropped),
	)

	return articles, nil
}

// fetchResult — значение метки result для ошибки источника.
func fetchResult(err error) string {
	var pe *feed.ParseError

	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &pe):
		return metrics.ResultParseError
	default:
		return metrics.ResultFetchError
	}
}
