package scrape_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/domain"
	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/scrape"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Titular en title tag | DF</title>
<meta property="og:title" content="Titular OpenGraph">
<meta property="og:image" content="/imagenes/portada.jpg">
<meta property="article:published_time" content="2024-03-15T10:30:00Z">
</head>
<body>
<header><p>Menú de navegación del sitio con enlaces</p></header>
<h1>Banco central mantiene la tasa de interés en su última reunión</h1>
<article>
<p>El banco central decidió mantener la tasa de interés de política monetaria en su reunión de marzo, en línea con lo esperado por el mercado financiero local.</p>
<p>Los analistas proyectan que el próximo movimiento ocurrirá durante el segundo semestre, condicionado a la trayectoria de la inflación subyacente.</p>
</article>
<footer><p>Pie de página institucional con información corporativa</p></footer>
</body>
</html>`

func newExtractor() *scrape.Extractor {
	return scrape.NewExtractor(logger.NewNoOp())
}

func TestExtractFullPage(t *testing.T) {
	t.Parallel()

	got, err := newExtractor().Extract(articlePage, "https://www.df.cl/mercados/banco-central-tasa")
	require.NoError(t, err)

	require.Equal(t, "Banco central mantiene la tasa de interés en su última reunión", got.Title)
	require.Contains(t, got.Content, "decidió mantener la tasa")
	require.Contains(t, got.Content, "segundo semestre")
	require.NotContains(t, got.Content, "Menú de navegación")
	require.Equal(t, "https://www.df.cl/imagenes/portada.jpg", got.ImageURL)
	require.Equal(t, "Mercados", got.Category)
	require.Equal(t, "2024-03-15 10:30:00", got.CreatedAt)
}

func TestExtractTitleFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og title when no h1",
			html: `<html><head><meta property="og:title" content="Desde OpenGraph"></head><body></body></html>`,
			want: "Desde OpenGraph",
		},
		{
			name: "document title as last resort",
			html: `<html><head><title>Desde title tag</title></head><body></body></html>`,
			want: "Desde title tag",
		},
		{
			name: "default when nothing matches",
			html: `<html><body><div>sin titulares</div></body></html>`,
			want: "Sin título",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := newExtractor().Extract(tt.html, "https://www.df.cl/noticias/x")
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Title)
		})
	}
}

func TestExtractBodyFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("content class container", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="article-content">
<p>Primer párrafo del cuerpo con suficiente largo para superar el umbral.</p>
<p>Segundo párrafo del cuerpo con el resto del contenido de la noticia.</p>
</div></body></html>`
		got, err := newExtractor().Extract(html, "https://www.df.cl/empresas/x")
		require.NoError(t, err)
		require.Contains(t, got.Content, "Primer párrafo")
		require.Contains(t, got.Content, "Segundo párrafo")
	})

	t.Run("paragraphs outside chrome", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><p>Barra de navegación con secciones y enlaces varios</p></nav>
<p>Contenido real de la noticia fuera de cualquier contenedor especial del sitio.</p>
</body></html>`
		got, err := newExtractor().Extract(html, "https://www.df.cl/empresas/x")
		require.NoError(t, err)
		require.Contains(t, got.Content, "Contenido real")
		require.NotContains(t, got.Content, "Barra de navegación")
	})

	t.Run("no paragraphs means empty content", func(t *testing.T) {
		t.Parallel()

		got, err := newExtractor().Extract(`<html><body><div>x</div></body></html>`, "https://www.df.cl/x")
		require.NoError(t, err)
		require.Empty(t, got.Content)
	})
}

func TestExtractDateFallsBackToNow(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>` + strings.Repeat("a", 80) + `</p></body></html>`
	got, err := newExtractor().Extract(html, "https://www.df.cl/x")
	require.NoError(t, err)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, got.CreatedAt)
}

func TestExtractDateAlwaysStorable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "visible date in site format",
			html: `<html><body><span class="date">15/03/2024</span></body></html>`,
			want: "2024-03-15 00:00:00",
		},
		{
			name: "relative date text falls back to now",
			html: `<html><body><span class="date">Hace 2 horas</span></body></html>`,
		},
		{
			name: "unparseable meta with parseable visible date",
			html: `<html><head><meta property="article:published_time" content="ayer"></head>` +
				`<body><time>2024-03-15</time></body></html>`,
			want: "2024-03-15 00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := newExtractor().Extract(tt.html, "https://www.df.cl/x")
			require.NoError(t, err)

			// The index maps created_at as a date, so whatever the cascade
			// produces must round-trip through the display layout.
			_, perr := time.Parse(domain.DisplayTimeFormat, got.CreatedAt)
			require.NoError(t, perr)
			if tt.want != "" {
				require.Equal(t, tt.want, got.CreatedAt)
			}
		})
	}
}

func TestCategoryFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.df.cl/mercados/bolsa-monedas/accion", want: "Mercados"},
		{url: "https://www.df.cl/empresas/energia/parque-eolico", want: "Empresas"},
		{url: "https://www.df.cl/economia-y-politica/macro/imacec", want: "Economía y Política"},
		{url: "https://www.df.cl/internacional/fed", want: "Internacional"},
		{url: "https://www.df.cl/opinion/columnistas/editorial", want: "Opinión"},
		{url: "https://www.df.cl/otra-seccion/articulo", want: "Noticias"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, scrape.CategoryFromURL(tt.url), tt.url)
	}
}
