// events собирает manifest.json из каталога фотографий событий и подписей к
// ним, а также превращает манифест обратно в список событий для отрисовки.
//
// Сборка (Builder) выполняется на этапе билда сайта, загрузка (Loader) — при
// каждом запросе. Оба шага последовательны и не хранят состояния.
package events

import (
	"regexp"
	"strings"
	"time"
)

const monthNames = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

// Шаблоны даты в порядке приоритета: первое совпадение побеждает.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b` + monthNames + `\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b` + monthNames + `\s+\d{1,2}(?:st|nd|rd|th)?,\s+\d{4}\b`),
}

// Шаблоны места в порядке приоритета. Захват не пересекает перевод строки;
// шаблон "город, страна" чувствителен к регистру предлога.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:at|in)\s+([^,.\n]+(?:University|College|School|Institute|Center|Centre|Conference|Summit|Meetup|Online))`),
	regexp.MustCompile(`\b(?:at|in)\s+([^,.\n]+,[ \t]*[^,.\n]+)`),
	regexp.MustCompile(`(?i)\b(?:at|in)\s+([^.\n]+)`),
}

var (
	reOrdinal = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)
	// sortFloor — дата события без распознанной даты при сортировке.
	sortFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Форматы, в которых ParseDate понимает извлечённую строку.
var dateLayouts = []string{
	"January 2006",
	"Jan 2006",
	"2006-1-2",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ExtractDate возвращает первый фрагмент подписи, похожий на дату, или "".
func ExtractDate(caption string) string {
	for _, re := range datePatterns {
		if m := re.FindString(caption); m != "" {
			return strings.Join(strings.Fields(m), " ")
		}
	}

	return ""
}

// ExtractLocation возвращает место проведения, найденное после "at"/"in", или "".
func ExtractLocation(caption string) string {
	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(caption); m != nil {
			if loc := strings.TrimSpace(m[1]); loc != "" {
				return loc
			}
		}
	}

	return ""
}

// ParseDate разбирает строку, полученную из ExtractDate. Дата без числа
// трактуется как первое число месяца.
func ParseDate(value string) (time.Time, bool) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return time.Time{}, false
	}
	value = reOrdinal.ReplaceAllString(value, "$1")

	for _, l := range dateLayouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// sortKey — дата для упорядочивания манифеста.
func sortKey(value string) time.Time {
	if t, ok := ParseDate(value); ok {
		return t
	}

	return sortFloor
}
