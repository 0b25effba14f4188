package resolver

import (
	"fmt"
	"strings"
)

// legacyArticleTemplate is the old DF.cl article path. Hash identifiers
// sometimes map onto it directly.
const legacyArticleTemplate = "https://www.df.cl/noticias/site/artic/20%s"

// CandidateURLs builds the ordered, deduplicated candidate set for a slug.
// For each domain the bare path comes first, then each configured section
// path. The order is deterministic so probing is reproducible.
func CandidateURLs(slug string, domains, sections []string) []string {
	seen := make(map[string]bool)
	candidates := make([]string, 0, len(domains)*(len(sections)+1))

	add := func(u string) {
		if !seen[u] {
			seen[u] = true
			candidates = append(candidates, u)
		}
	}

	for _, domain := range domains {
		base := strings.TrimRight(domain, "/")
		add(base + "/" + slug)
		for _, section := range sections {
			add(base + "/" + strings.Trim(section, "/") + "/" + slug)
		}
	}

	return candidates
}

// LegacyURL builds the legacy article URL probed for hash identifiers.
func LegacyURL(hash string) string {
	return fmt.Sprintf(legacyArticleTemplate, hash)
}
