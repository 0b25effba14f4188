package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/domain"
)

func TestClassifyIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		want domain.IdentifierKind
	}{
		{name: "hash prefix", id: "df.cl-abc123", want: domain.KindHash},
		{name: "slug prefix", id: "df-mi-noticia-importante", want: domain.KindSlug},
		{name: "hash wins over slug prefix", id: "df.cl-df-algo", want: domain.KindHash},
		{name: "generic with domain segment", id: "noticia-df-2024", want: domain.KindGeneric},
		{name: "generic with domain name", id: "www.df.cl-noticia", want: domain.KindGeneric},
		{name: "empty", id: "", want: domain.KindUnknown},
		{name: "unrelated", id: "bloomberg-market-update", want: domain.KindUnknown},
		{name: "incidental df substring", id: "goldfinger-update", want: domain.KindUnknown},
		{name: "incidental df inside segment", id: "pdf-report-2024", want: domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, domain.ClassifyIdentifier(tt.id))
		})
	}
}

func TestIdentifierRoundTrips(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abc123", domain.HashFromID("df.cl-abc123"))
	require.Equal(t, "mi-noticia", domain.SlugFromID("df-mi-noticia"))
	require.Equal(t, "mi noticia importante", domain.SlugToQuery("mi-noticia-importante"))
}

func TestNormalizeProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "df.cl", want: "DF.cl"},
		{in: "DF", want: "DF.cl"},
		{in: " dfcl ", want: "DF.cl"},
		{in: "bloomberg", want: "Bloomberg"},
		{in: "Bloomberg Línea", want: "Bloomberg"},
		{in: "Reuters", want: "Reuters"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, domain.NormalizeProvider(tt.in))
	}
}
