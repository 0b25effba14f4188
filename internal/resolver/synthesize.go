package resolver

import (
	"time"

	"github.com/jonesrussell/newsgate/internal/domain"
)

// Placeholder content for articles that could not be resolved. The text
// mirrors what the frontend already shows for missing DF.cl content.
const (
	placeholderTitle       = "Artículo de DF.cl"
	placeholderDescription = "Este artículo ya no está disponible en la fuente original. " +
		"Se mostrará un contenido resumido."
	placeholderContent = "Este artículo de DF.cl ya no está disponible en la fuente original. " +
		"Es posible que el contenido haya sido eliminado o movido por el proveedor. " +
		"Puedes intentar buscar el artículo directamente en el sitio web de DF.cl."
	placeholderURL   = "https://www.df.cl"
	placeholderImage = "https://www.df.cl/noticias/site/artic/20180201/imag/" +
		"foto_0000000120180201120156/logo-DF.svg"
)

// synthesizePlaceholder builds the success-shaped placeholder returned when
// every resolution strategy for an identifier is exhausted. It carries the
// requested id so callers keep a stable read contract, and it is never
// persisted.
func synthesizePlaceholder(id string, now time.Time) *domain.Article {
	return &domain.Article{
		ID:          id,
		Title:       placeholderTitle,
		Description: placeholderDescription,
		Content:     placeholderContent,
		Summary:     placeholderContent,
		URL:         placeholderURL,
		ImageURL:    placeholderImage,
		Provider:    domain.ProviderDF,
		Category:    "General",
		CreatedAt:   now.Format(domain.DisplayTimeFormat),
	}
}
