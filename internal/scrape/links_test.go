package scrape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsgate/internal/logger"
	"github.com/jonesrussell/newsgate/internal/scrape"
)

func TestIsArticleURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want bool
	}{
		{href: "/mercados/bolsa-monedas/ipsa-sube", want: true},
		{href: "https://www.df.cl/empresas/energia/licitacion", want: true},
		{href: "/noticias/site/artic/20240101/nota.html", want: true},
		{href: "/opinion/columnistas/editorial", want: true},
		{href: "/autor/juan-perez", want: false},
		{href: "/mercados/tag/dolar", want: false},
		{href: "javascript:void(0)", want: false},
		{href: "#comentarios", want: false},
		{href: "/suscripcion/planes", want: false},
		{href: "/contacto", want: false},
		{href: "", want: false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, scrape.IsArticleURL(tt.href), tt.href)
	}
}

func TestHarvest(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="/mercados/ipsa-cierra-al-alza-en-la-ultima-jornada">IPSA cierra al alza en la última jornada</a>
<a href="https://www.df.cl/empresas/energia/nueva-licitacion-electrica">Nueva licitación eléctrica</a>
<a href="/mercados/ipsa-cierra-al-alza-en-la-ultima-jornada">IPSA cierra al alza en la última jornada</a>
<a href="/autor/periodista">Periodista de turno</a>
<a href="/empresas/retail/resultados-trimestrales">ok</a>
</body></html>`

	harvester := scrape.NewHarvester("https://www.df.cl", logger.NewNoOp())
	headlines, err := harvester.Harvest(html)
	require.NoError(t, err)

	require.Len(t, headlines, 2)
	require.Equal(t, "https://www.df.cl/mercados/ipsa-cierra-al-alza-en-la-ultima-jornada", headlines[0].URL)
	require.Equal(t, "IPSA cierra al alza en la última jornada", headlines[0].Title)
	require.Equal(t, "Mercados", headlines[0].Category)
	require.Equal(t, "https://www.df.cl/empresas/energia/nueva-licitacion-electrica", headlines[1].URL)
}

func TestRelatedLinks(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div class="related-news">
<a href="/mercados/nota-relacionada-uno">uno</a>
<a href="/mercados/nota-relacionada-dos">dos</a>
<a href="/mercados/nota-relacionada-uno">uno repetida</a>
</div>
</body></html>`

	related := scrape.RelatedLinks(html, "https://www.df.cl/mercados/nota-principal", 5)
	require.Equal(t, []string{
		"https://www.df.cl/mercados/nota-relacionada-uno",
		"https://www.df.cl/mercados/nota-relacionada-dos",
	}, related)
}

func TestRelatedLinksCap(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="/mercados/a1">x</a><a href="/mercados/a2">x</a><a href="/mercados/a3">x</a>
<a href="/mercados/a4">x</a><a href="/mercados/a5">x</a><a href="/mercados/a6">x</a>
</body></html>`

	related := scrape.RelatedLinks(html, "https://www.df.cl/mercados/base", 5)
	require.Len(t, related, 5)
}
