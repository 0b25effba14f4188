// Package scrape extracts article fields from DF.cl HTML pages using
// ordered selector cascades. Each field tries site-specific selectors first
// and falls back to progressively more generic ones, so markup changes
// degrade extraction quality instead of breaking it outright.
package scrape

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
)

// DefaultTitle is used when no title can be extracted.
const DefaultTitle = "Sin título"

// minGenericParagraphLen filters boilerplate when falling back to bare
// paragraph extraction.
const minGenericParagraphLen = 50

// Extracted holds the raw fields pulled from an article page before
// cleaning and derivation.
type Extracted struct {
	Title     string
	Content   string
	ImageURL  string
	Category  string
	CreatedAt string
}

// Extractor parses article pages.
type Extractor struct {
	logger logger.Interface
	now    func() time.Time
}

// NewExtractor creates an article extractor.
func NewExtractor(log logger.Interface) *Extractor {
	return &Extractor{
		logger: log,
		now:    time.Now,
	}
}

// Extract parses the HTML of an article page and pulls out its fields. The
// page URL is needed to absolutize relative image links and to derive the
// category. An empty cleaned body means extraction failed; callers check
// Content before treating the result as an article.
func (e *Extractor) Extract(html, pageURL string) (Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Extracted{}, err
	}

	out := Extracted{
		Title:     e.extractTitle(doc),
		Content:   CleanBody(e.extractBody(doc)),
		ImageURL:  e.extractImage(doc, pageURL),
		Category:  CategoryFromURL(pageURL),
		CreatedAt: e.extractDate(doc),
	}

	e.logger.Debug("extracted article",
		"url", pageURL,
		"title", out.Title,
		"content_len", len(out.Content))
	return out, nil
}

// extractTitle tries the page h1, then OpenGraph, then the document title.
func (e *Extractor) extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return DefaultTitle
}

// extractBody walks the body selector cascade and returns the first
// non-empty join of paragraph texts.
func (e *Extractor) extractBody(doc *goquery.Document) string {
	if body := joinParagraphs(doc.Find("article p"), 0); body != "" {
		return body
	}
	for _, sel := range []string{".article-content p", ".content p", ".post-content p"} {
		if body := joinParagraphs(doc.Find(sel), 0); body != "" {
			return body
		}
	}
	// Paragraphs outside chrome elements.
	outside := doc.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("header, footer, nav").Length() == 0
	})
	if body := joinParagraphs(outside, 0); body != "" {
		return body
	}
	// Last resort: any paragraph long enough to be prose.
	return joinParagraphs(doc.Find("p"), minGenericParagraphLen)
}

func joinParagraphs(sel *goquery.Selection, minLen int) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" && len(text) > minLen {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// extractImage tries OpenGraph, then the DF lead-image container, then any
// content image. Relative URLs are resolved against the page URL.
func (e *Extractor) extractImage(doc *goquery.Document, pageURL string) string {
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		if img = strings.TrimSpace(img); img != "" {
			return absolutize(img, pageURL)
		}
	}
	if img, ok := doc.Find(".art-img img").First().Attr("src"); ok && img != "" {
		return absolutize(img, pageURL)
	}
	if img, ok := doc.Find("article img, .article-content img").First().Attr("src"); ok && img != "" {
		return absolutize(img, pageURL)
	}
	return ""
}

// extractDate prefers the published_time meta tag, then visible date
// elements, then the current time. The result is always rendered in
// domain.DisplayTimeFormat so stored documents satisfy the index date
// mapping; visible text that does not parse as a date ("Hace 2 horas")
// falls through to the next source.
func (e *Extractor) extractDate(doc *goquery.Document) string {
	if d, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		if t, parsed := parseDate(d); parsed {
			return t.Format(domain.DisplayTimeFormat)
		}
	}
	for _, sel := range []string{".article-date", ".date", "time"} {
		if d := strings.TrimSpace(doc.Find(sel).First().Text()); d != "" {
			if t, parsed := parseDate(d); parsed {
				return t.Format(domain.DisplayTimeFormat)
			}
		}
	}
	return e.now().Format(domain.DisplayTimeFormat)
}

// dateLayouts covers the published_time meta formats plus the visible date
// formats DF.cl renders.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	domain.DisplayTimeFormat,
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func absolutize(href, base string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// categoryKeywords maps URL path keywords to display categories, checked in
// order.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"mercados", "Mercados"},
	{"empresas", "Empresas"},
	{"economia", "Economía y Política"},
	{"internacional", "Internacional"},
	{"opinion", "Opinión"},
	{"df-lab", "DF LAB"},
	{"df-mas", "DF MAS"},
}

// CategoryFromURL derives an article category from keywords in its URL.
func CategoryFromURL(pageURL string) string {
	lower := strings.ToLower(pageURL)
	for _, kc := range categoryKeywords {
		if strings.Contains(lower, kc.keyword) {
			return kc.category
		}
	}
	return "Noticias"
}
