package domain

import "strings"

// IdentifierKind classifies a raw article identifier so the resolver can pick
// a resolution strategy.
type IdentifierKind int

const (
	// KindUnknown covers identifiers that match no known shape.
	KindUnknown IdentifierKind = iota
	// KindHash is a short opaque identifier, "df.cl-<hash>".
	KindHash
	// KindSlug is a human-readable slug identifier, "df-<slug>".
	KindSlug
	// KindGeneric is a bare token that still looks like a DF identifier.
	KindGeneric
)

// Identifier prefixes used by the resolver and URL builders.
const (
	HashIDPrefix = "df.cl-"
	SlugIDPrefix = "df-"
)

// String returns a short label for logging.
func (k IdentifierKind) String() string {
	switch k {
	case KindHash:
		return "hash"
	case KindSlug:
		return "slug"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ClassifyIdentifier determines the kind of a raw identifier. The hash prefix
// is checked before the slug prefix since "df.cl-" also begins with "df".
func ClassifyIdentifier(id string) IdentifierKind {
	switch {
	case id == "":
		return KindUnknown
	case strings.HasPrefix(id, HashIDPrefix):
		return KindHash
	case strings.HasPrefix(id, SlugIDPrefix):
		return KindSlug
	case containsProviderToken(id):
		return KindGeneric
	default:
		return KindUnknown
	}
}

// containsProviderToken reports whether the identifier carries the DF.cl
// domain token as a standalone segment. Segment matching keeps incidental
// "df" substrings ("goldfinger-update") from triggering provider
// resolution.
func containsProviderToken(id string) bool {
	lower := strings.ToLower(id)
	if strings.Contains(lower, "df.cl") {
		return true
	}
	for _, segment := range strings.FieldsFunc(lower, isSegmentSeparator) {
		if segment == "df" {
			return true
		}
	}
	return false
}

func isSegmentSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || r == '/' || r == ' '
}

// HashFromID strips the hash prefix from a hash identifier.
func HashFromID(id string) string {
	return strings.TrimPrefix(id, HashIDPrefix)
}

// SlugFromID strips the slug prefix from a slug identifier.
func SlugFromID(id string) string {
	return strings.TrimPrefix(id, SlugIDPrefix)
}

// SlugToQuery converts a slug into a space-separated search phrase.
func SlugToQuery(slug string) string {
	return strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
}
