// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// DisplayTimeFormat is the format used for the created_at field of stored
// articles. It matches the layout the frontend expects.
const DisplayTimeFormat = "2006-01-02 15:04:05"

// Derived-field limits for resolved articles.
const (
	// DescriptionLimit is the maximum length of the description field.
	DescriptionLimit = 150
	// SummaryLimit is the maximum length of the summary field.
	SummaryLimit = 250
	// ShortContentBypass is the content length below which the summary is
	// the body verbatim rather than a truncation.
	ShortContentBypass = 300
	// MaxRelatedURLs caps the related_urls list.
	MaxRelatedURLs = 5
)

// Ellipsis marks truncated derived fields.
const Ellipsis = "..."

// Article is the canonical resolved news entity. One document per article is
// stored in the document store, keyed by ID.
type Article struct {
	// Provider-prefixed identifier, e.g. "df-<slug>" or "df.cl-<hash>".
	ID string `json:"id" mapstructure:"id"`
	// Title of the article.
	Title string `json:"title" mapstructure:"title"`
	// Short derived description (at most DescriptionLimit chars plus ellipsis).
	Description string `json:"description" mapstructure:"description"`
	// Full body text. Non-empty for any successfully resolved article.
	Content string `json:"content" mapstructure:"content"`
	// Derived summary (at most SummaryLimit chars plus ellipsis).
	Summary string `json:"summary" mapstructure:"summary"`
	// Canonical URL the article was resolved from.
	URL string `json:"url" mapstructure:"url"`
	// Lead image URL, absolute. May be empty.
	ImageURL string `json:"image_url" mapstructure:"image_url"`
	// Provider name, e.g. "DF.cl" or "Bloomberg".
	Provider string `json:"provider" mapstructure:"provider"`
	// Category label, e.g. "Mercados".
	Category string `json:"category" mapstructure:"category"`
	// Display-formatted publication timestamp.
	CreatedAt string `json:"created_at" mapstructure:"created_at"`
	// Related article URLs, at most MaxRelatedURLs entries.
	RelatedURLs []string `json:"related_urls,omitempty" mapstructure:"related_urls"`
}

// Truncate shortens s to at most limit runes, appending an ellipsis when the
// source text exceeds the limit.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

// ApplyDerived recomputes the description and summary fields from the body.
// Short bodies bypass summary truncation and are carried verbatim.
func (a *Article) ApplyDerived() {
	a.Description = Truncate(a.Content, DescriptionLimit)
	if len([]rune(a.Content)) < ShortContentBypass {
		a.Summary = a.Content
	} else {
		a.Summary = Truncate(a.Content, SummaryLimit)
	}
}

// Normalize trims stray whitespace on scalar fields and caps related URLs.
func (a *Article) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	a.Category = strings.TrimSpace(a.Category)
	if a.CreatedAt == "" {
		a.CreatedAt = time.Now().Format(DisplayTimeFormat)
	}
	if len(a.RelatedURLs) > MaxRelatedURLs {
		a.RelatedURLs = a.RelatedURLs[:MaxRelatedURLs]
	}
}
