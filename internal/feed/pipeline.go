package feed

import (
	"sort"
	"time"

	"github.com/merttpolat/portfolio/internal/models"
)

// Dedupe оставляет первое вхождение каждой ссылки, сохраняя порядок.
// Возвращает новый срез и число отброшенных дублей.
func Dedupe(articles []models.Article) ([]models.Article, int) {
	seen := make(map[string]struct{}, len(articles))
	out := make([]models.Article, 0, len(articles))

	for _, a := range articles {
		if _, ok := seen[a.Link]; ok {
			continue
		}
		seen[a.Link] = struct{}{}
		out = append(out, a)
	}

	return out, len(articles) - len(out)
}

// SortNewestFirst сортирует статьи по календарной дате публикации (UTC),
// новые первыми. При равных датах сохраняется исходный порядок.
func SortNewestFirst(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return calendarDay(articles[i].Published).After(calendarDay(articles[j].Published))
	})
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
