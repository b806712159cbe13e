package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/merttpolat/portfolio/internal/models"
	"github.com/merttpolat/portfolio/pkg/log"
)

// Loader объединяет манифест с текстами подписей.
type Loader struct {
	dir          string
	manifestName string
	imagePrefix  string
}

// NewLoader создаёт загрузчик. imagePrefix — URL-префикс каталога с фотографиями.
func NewLoader(dir, manifestName, imagePrefix string) *Loader {
	return &Loader{dir: dir, manifestName: manifestName, imagePrefix: imagePrefix}
}

// Load читает манифест и возвращает события по возрастанию Order.
// События без ранга получают models.EventOrderLast; при равных рангах
// сохраняется порядок манифеста. Подпись, которую не удалось прочитать,
// исключает событие из результата.
func (l *Loader) Load(ctx context.Context) ([]models.EventData, error) {
	const op = "events.Load"

	lg := log.From(ctx)

	m, err := ReadManifest(filepath.Join(l.dir, l.manifestName))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.EventData, 0, len(m.Events))
	for _, slug := range m.Events {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		caption, err := readCaption(l.dir, slug)
		if err != nil {
			level := slog.LevelError
			if errors.Is(err, ErrCaptionMissing) {
				level = slog.LevelWarn
			}
			lg.Log(ctx, level, "caption_unreadable",
				slog.String("op", op),
				slog.String("slug", slug),
				slog.String("err", err.Error()),
			)
			continue
		}

		description, link := SplitCaption(caption)

		order, ok := m.Order[slug]
		if !ok {
			order = models.EventOrderLast
		}

		out = append(out, models.EventData{
			ID:          len(out) + 1,
			Slug:        slug,
			Title:       FormatTitle(slug),
			Date:        orDefault(m.Dates[slug], models.EventTBD),
			Location:    orDefault(m.Locations[slug], models.EventTBD),
			Description: description,
			Image:       l.imagePath(slug, m.Images[slug]),
			Link:        link,
			Order:       order,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	lg.Debug("events_loaded",
		slog.String("op", op),
		slog.Int("manifest", len(m.Events)),
		slog.Int("events", len(out)),
	)

	return out, nil
}

// imagePath — URL изображения. Манифесты без images[] указывают на <slug>.jpg.
func (l *Loader) imagePath(slug, image string) string {
	if image == "" {
		image = slug + ".jpg"
	}

	return l.imagePrefix + url.PathEscape(image)
}

// SplitCaption делит подпись на описание и ссылку. Ссылкой считается
// последняя непустая строка, если это абсолютный http(s) URL; иначе вся
// подпись — описание. Пустые строки отбрасываются.
func SplitCaption(caption string) (description, link string) {
	var lines []string
	for _, line := range strings.Split(caption, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return "", ""
	}

	last := strings.TrimSpace(lines[len(lines)-1])
	if isAbsoluteURL(last) {
		return strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n")), last
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), ""
}

func isAbsoluteURL(s string) bool {
	if strings.ContainsAny(s, " \t") {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
