package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/domain"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{
			name:  "shorter than limit",
			input: "hola",
			limit: 10,
			want:  "hola",
		},
		{
			name:  "exactly at limit",
			input: "12345",
			limit: 5,
			want:  "12345",
		},
		{
			name:  "over limit gets ellipsis",
			input: "123456",
			limit: 5,
			want:  "12345...",
		},
		{
			name:  "multibyte runes are not split",
			input: strings.Repeat("ñ", 10),
			limit: 4,
			want:  "ññññ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, domain.Truncate(tt.input, tt.limit))
		})
	}
}

func TestApplyDerived(t *testing.T) {
	t.Parallel()

	t.Run("long body truncates both fields", func(t *testing.T) {
		t.Parallel()

		article := domain.Article{Content: strings.Repeat("A", 400)}
		article.ApplyDerived()

		require.Len(t, article.Description, 153)
		require.Len(t, article.Summary, 253)
		require.True(t, strings.HasSuffix(article.Description, "..."))
		require.True(t, strings.HasSuffix(article.Summary, "..."))
	})

	t.Run("short body bypasses summary truncation", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("B", 200)
		article := domain.Article{Content: body}
		article.ApplyDerived()

		require.Equal(t, body, article.Summary)
		require.Len(t, article.Description, 153)
	})

	t.Run("tiny body is carried verbatim everywhere", func(t *testing.T) {
		t.Parallel()

		article := domain.Article{Content: "breve"}
		article.ApplyDerived()

		require.Equal(t, "breve", article.Description)
		require.Equal(t, "breve", article.Summary)
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	article := domain.Article{
		Title:   "  Titular  ",
		Content: " cuerpo ",
		RelatedURLs: []string{
			"https://www.df.cl/a", "https://www.df.cl/b", "https://www.df.cl/c",
			"https://www.df.cl/d", "https://www.df.cl/e", "https://www.df.cl/f",
		},
	}
	article.Normalize()

	require.Equal(t, "Titular", article.Title)
	require.Equal(t, "cuerpo", article.Content)
	require.Len(t, article.RelatedURLs, domain.MaxRelatedURLs)
	require.NotEmpty(t, article.CreatedAt)
}
