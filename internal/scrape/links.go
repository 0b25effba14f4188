package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newsgate/internal/logger"
)

// Headline is a link harvested from the provider homepage.
type Headline struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

// includeHints mark hrefs that point at article pages.
var includeHints = []string{
	"/noticias/",
	"/mercados/",
	"/empresas/",
	"/economia-y-politica/",
	"/internacional/",
	"/opinion/",
	"/df-lab/",
	"/df-mas/",
}

// excludeHints mark hrefs that are navigation, not articles.
var excludeHints = []string{
	"javascript:",
	"mailto:",
	"#",
	"/autor/",
	"/tag/",
	"/suscripcion",
	"/login",
	"/newsletter",
	"/podcast",
	"/terminos",
	"/politica-de-privacidad",
}

// IsArticleURL reports whether an href looks like an article page link.
func IsArticleURL(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	if lower == "" {
		return false
	}
	for _, hint := range excludeHints {
		if strings.Contains(lower, hint) {
			return false
		}
	}
	for _, hint := range includeHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// RelatedLinks extracts URLs of related articles from an article page,
// preferring dedicated related-content containers and falling back to any
// article-shaped link. Returns at most max entries, excluding the page
// itself.
func RelatedLinks(html, pageURL string, max int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	scope := doc.Find(".related-news a[href], .related-articles a[href], .recommendations a[href]")
	if scope.Length() == 0 {
		scope = doc.Find("a[href]")
	}

	seen := map[string]bool{pageURL: true}
	var related []string
	scope.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !IsArticleURL(href) {
			return true
		}
		full := absolutize(href, pageURL)
		if seen[full] {
			return true
		}
		seen[full] = true
		related = append(related, full)
		return len(related) < max
	})
	return related
}

// Harvester pulls article links from the provider homepage.
type Harvester struct {
	baseURL string
	logger  logger.Interface
}

// NewHarvester creates a homepage link harvester rooted at baseURL.
func NewHarvester(baseURL string, log logger.Interface) *Harvester {
	return &Harvester{baseURL: strings.TrimRight(baseURL, "/"), logger: log}
}

// Harvest extracts article headlines from homepage HTML. Links are
// deduplicated by URL, relative hrefs are absolutized against the base URL,
// and anchors without usable text are skipped.
func (h *Harvester) Harvest(html string) ([]Headline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var headlines []Headline
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !IsArticleURL(href) {
			return
		}

		full := h.absolutize(href)
		if seen[full] {
			return
		}

		title := strings.TrimSpace(s.Text())
		if title == "" {
			title, _ = s.Attr("title")
			title = strings.TrimSpace(title)
		}
		if title == "" || len(title) < minLineLength {
			return
		}

		seen[full] = true
		headlines = append(headlines, Headline{
			Title:    title,
			URL:      full,
			ImageURL: h.nearbyImage(s),
			Category: CategoryFromURL(full),
		})
	})

	h.logger.Debug("harvested homepage links", "count", len(headlines))
	return headlines, nil
}

func (h *Harvester) absolutize(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return h.baseURL + href
}

// nearbyImage looks for an image inside the anchor or its parent block.
func (h *Harvester) nearbyImage(s *goquery.Selection) string {
	if src, ok := s.Find("img").First().Attr("src"); ok && src != "" {
		return h.absolutize(src)
	}
	if src, ok := s.Parent().Find("img").First().Attr("src"); ok && src != "" {
		return h.absolutize(src)
	}
	return ""
}
