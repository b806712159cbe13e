package events

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// acronyms — токены слага, которые всегда пишутся заглавными.
var acronyms = map[string]struct{}{
	"gdg": {}, "gdsc": {}, "dsc": {}, "wtm": {}, "io": {},
	"ai": {}, "ml": {}, "llm": {}, "api": {}, "ci": {}, "cd": {},
	"aws": {}, "gcp": {}, "k8s": {}, "cncf": {}, "ieee": {}, "acm": {},
	"itu": {}, "ytu": {}, "odtu": {}, "metu": {}, "boun": {}, "iyte": {},
}

// FormatTitle превращает слаг в заголовок: токены через "-" пишутся с
// заглавной буквы, аббревиатуры целиком заглавными.
//
//	gdg-istanbul-meetup → GDG Istanbul Meetup
//	ytü-kariyer-günleri → YTÜ Kariyer Günleri
func FormatTitle(slug string) string {
	parts := strings.Split(slug, "-")
	out := parts[:0]

	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, formatToken(p))
	}

	return strings.Join(out, " ")
}

func formatToken(tok string) string {
	if isAcronym(tok) {
		return strings.ToUpper(tok)
	}

	r, size := utf8.DecodeRuneInString(tok)
	return string(unicode.ToUpper(r)) + strings.ToLower(tok[size:])
}

// isAcronym: известная аббревиатура, токен уже записан заглавными, либо
// короткий токен с не-ASCII буквой (YTÜ, İÜ, KOÜ).
func isAcronym(tok string) bool {
	if _, ok := acronyms[strings.ToLower(tok)]; ok {
		return true
	}

	letters, upper, nonASCII := 0, 0, false
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
		if r > unicode.MaxASCII {
			nonASCII = true
		}
	}

	switch {
	case letters > 1 && upper == letters:
		return true
	case nonASCII && utf8.RuneCountInString(tok) <= 3:
		return true
	}

	return false
}
