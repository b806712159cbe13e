package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	// reBlockEnd — закрывающие блочные теги и <br>: после них в тексте ставится перевод строки,
	// чтобы абзацы HTML-тела превратились в отдельные строки.
	reBlockEnd = regexp.MustCompile(`(?i)(</(?:p|h[1-6]|div|li|blockquote|figure|figcaption|pre)>|<br\s*/?>)`)
	// reReadingTime — "5 min read" в теле статьи.
	reReadingTime = regexp.MustCompile(`(\d+)\s+min read`)

	stripPolicy = bluemonday.StrictPolicy()
)

// extractSubtitle возвращает первую непустую строку текста после удаления разметки.
func extractSubtitle(content string) string {
	if content == "" {
		return ""
	}

	text := stripPolicy.Sanitize(reBlockEnd.ReplaceAllString(content, "$1\n"))
	text = html.UnescapeString(text)

	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}

	return ""
}

// extractThumbnail ищет первую картинку в теле: сначала внутри <figure>,
// затем любую <img>. Query-строка у URL отбрасывается.
func extractThumbnail(content string) string {
	if content == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	for _, sel := range []string{"figure img[src]", "img[src]"} {
		if src, ok := doc.Find(sel).First().Attr("src"); ok {
			if src = strings.TrimSpace(src); src != "" {
				src, _, _ = strings.Cut(src, "?")
				return src
			}
		}
	}

	return ""
}

// extractReadingTime превращает "N min read" в "N min ⏱️".
func extractReadingTime(content string) string {
	m := reReadingTime.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}

	return m[1] + " min ⏱️"
}
