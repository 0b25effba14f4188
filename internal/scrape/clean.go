package scrape

import (
	"regexp"
	"strings"
)

// minLineLength drops residual navigation fragments. Lines at or below this
// length that survive phrase removal are noise, not prose.
const minLineLength = 10

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
)

// boilerplatePhrases are site chrome fragments removed from extracted
// bodies.
var boilerplatePhrases = []string{
	"Suscríbete",
	"Diario Financiero",
	"www.df.cl",
	"Copyright",
	"Derechos Reservados",
	"Términos y condiciones",
	"Política de privacidad",
}

// endMarkers cut the body at "related content" sections that trail DF
// articles.
var endMarkers = []string{
	"También puede leer:",
	"Te puede interesar:",
	"Lee también:",
}

// CleanBody normalizes extracted article text: whitespace is collapsed,
// boilerplate phrases are stripped, trailing related-content sections are
// cut, and leftover short fragments are dropped. Returns "" when nothing
// usable remains, which callers treat as extraction failure.
func CleanBody(body string) string {
	if body == "" {
		return ""
	}

	for _, phrase := range boilerplatePhrases {
		body = strings.ReplaceAll(body, phrase, "")
	}

	for _, marker := range endMarkers {
		if idx := strings.Index(body, marker); idx >= 0 {
			body = body[:idx]
		}
	}

	body = multiNewline.ReplaceAllString(body, "\n\n")
	body = multiSpace.ReplaceAllString(body, " ")

	lines := strings.Split(body, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			kept = append(kept, "")
			continue
		}
		if len(trimmed) <= minLineLength {
			continue
		}
		kept = append(kept, trimmed)
	}

	cleaned := strings.Join(kept, "\n")
	cleaned = multiNewline.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
