// feed загружает RSS-ленту блога и превращает её элементы в models.Article.
//
// Пайплайн одной ленты: HTTP GET → разбор документа (gofeed) → извлечение
// полей элемента → эмодзи/подзаголовок/обложка/время чтения. Дедупликация
// и сортировка выполняются над объединённым списком (см. Dedupe, SortNewestFirst).
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/merttpolat/portfolio/internal/models"
	"github.com/merttpolat/portfolio/pkg/log"
)

const (
	// maxBodyBytes — верхняя граница размера документа ленты.
	maxBodyBytes = 8 << 20
	// PubDateLayout — формат Article.PubDate.
	PubDateLayout = "January 2, 2006"
)

// Parser загружает и разбирает одну ленту. Без состояния между вызовами:
// ни кэша, ни повторов. HTTP-клиент настраивается извне (таймауты, прокси).
type Parser struct {
	client    *http.Client
	userAgent string
}

// New создаёт новый парсер ленты.
func New(client *http.Client, userAgent string) *Parser {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Parser{client: client, userAgent: userAgent}
}

// Batch — результат разбора одной ленты.
// Total — число <item> в документе, Skipped — сколько из них отброшено.
type Batch struct {
	Source   models.FeedSource
	Articles []models.Article
	Total    int
	Skipped  int
}

// Parse загружает ленту src и возвращает её статьи в порядке документа.
//
// Ошибки:
//   - *FetchError — транспорт или не-2xx статус;
//   - *ParseError — документ не разобран или в нём нет элементов.
//
// Элемент без title/link/pubDate пропускается с предупреждением в лог.
func (p *Parser) Parse(ctx context.Context, src models.FeedSource) (Batch, error) {
	const op = "feed.Parse"

	ctx = log.With(ctx,
		slog.String("url", src.URL),
		slog.String("publication", src.Publication),
	)
	lg := log.From(ctx)
	batch := Batch{Source: src}

	body, err := p.fetch(ctx, src.URL)
	if err != nil {
		lg.Warn("feed_fetch_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return batch, err
	}

	doc, err := gofeed.NewParser().Parse(strings.NewReader(body))
	if err != nil {
		return batch, &ParseError{URL: src.URL, Err: err}
	}
	if len(doc.Items) == 0 {
		return batch, &ParseError{URL: src.URL, Err: ErrNoItems}
	}

	lg.Debug("feed_parsed",
		slog.String("op", op),
		slog.Int("bytes", len(body)),
		slog.Int("items", len(doc.Items)),
	)

	batch.Total = len(doc.Items)
	for _, item := range doc.Items {
		if item == nil {
			batch.Skipped++
			continue
		}

		article, reason := toArticle(item, src)
		if reason != "" {
			batch.Skipped++
			lg.Warn("item_skipped",
				slog.String("op", op),
				slog.String("reason", reason),
				slog.String("title", item.Title),
				slog.String("link", item.Link),
			)
			continue
		}

		lg.Debug("item_processed",
			slog.String("op", op),
			slog.String("title", article.Title),
			slog.String("emoji", article.Emoji),
		)
		batch.Articles = append(batch.Articles, article)
	}

	return batch, nil
}

// fetch выполняет GET и возвращает тело ответа.
func (p *Parser) fetch(ctx context.Context, src string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", &FetchError{URL: src, Err: err}
	}

	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: src, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{URL: src, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &FetchError{URL: src, StatusCode: resp.StatusCode, Err: err}
	}

	return string(data), nil
}

// toArticle собирает статью из элемента ленты. Непустой reason означает,
// что элемент нужно пропустить.
func toArticle(item *gofeed.Item, src models.FeedSource) (models.Article, string) {
	title := strings.TrimSpace(item.Title)
	link := canonicalLink(item.Link)

	switch {
	case title == "":
		return models.Article{}, "missing title"
	case link == "":
		return models.Article{}, "missing link"
	case strings.TrimSpace(item.Published) == "" && item.PublishedParsed == nil:
		return models.Article{}, "missing pubDate"
	}

	published, err := publishedAt(item)
	if err != nil {
		return models.Article{}, "invalid pubDate"
	}

	// content:encoded предпочтительнее краткого description.
	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Description
	}

	return models.Article{
		ID:          link,
		Title:       title,
		Emoji:       ArticleEmoji(title, content),
		Subtitle:    extractSubtitle(content),
		Link:        link,
		PubDate:     published.Format(PubDateLayout),
		Thumbnail:   extractThumbnail(content),
		ReadingTime: extractReadingTime(content),
		Publication: src.Publication,
		Published:   published,
	}, ""
}

// publishedAt берёт дату, разобранную gofeed, либо пробует свои форматы.
func publishedAt(item *gofeed.Item) (time.Time, error) {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC(), nil
	}

	return parsePubDate(item.Published)
}

// canonicalLink нормализует ссылку: убирает фрагмент и трекинг-параметры
// (utm_*, *clid, mc_*, igshid, а также source=, который Medium дописывает
// к каждой ссылке RSS). Нормализованная ссылка служит ключом дедупликации.
func canonicalLink(raw string) string {
	str := strings.TrimSpace(raw)
	if str == "" {
		return ""
	}

	u, err := url.Parse(str)
	if err != nil {
		return str
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return str
	}

	u.Fragment = ""
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") || lk == "igshid" || lk == "source" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// parsePubDate пробует набор популярных форматов и возвращает UTC-время.
func parsePubDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}

	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"Mon, 02 Jan 06 15:04:05 -0700",
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
		"2006-01-02",
	}

	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}
