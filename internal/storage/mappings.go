package storage

// ArticleMapping is the index mapping for article documents. created_at is
// stored in the display format the API serves, so the date type must accept
// it directly.
var ArticleMapping = map[string]any{
	"settings": map[string]any{
		"number_of_shards":   1,
		"number_of_replicas": 0,
	},
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":          map[string]any{"type": "keyword"},
			"title":       map[string]any{"type": "text"},
			"description": map[string]any{"type": "text"},
			"content":     map[string]any{"type": "text"},
			"summary":     map[string]any{"type": "text"},
			"url":         map[string]any{"type": "keyword"},
			"image_url":   map[string]any{"type": "keyword"},
			"provider":    map[string]any{"type": "keyword"},
			"category":    map[string]any{"type": "keyword"},
			"created_at": map[string]any{
				"type":   "date",
				"format": "yyyy-MM-dd HH:mm:ss||strict_date_optional_time",
			},
			"related_urls": map[string]any{"type": "keyword"},
		},
	},
}
