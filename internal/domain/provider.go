package domain

import "strings"

// Canonical provider display names.
const (
	ProviderDF        = "DF.cl"
	ProviderBloomberg = "Bloomberg"
)

// NormalizeProvider maps free-form provider tokens to their canonical display
// names. Unknown providers pass through unchanged.
func NormalizeProvider(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "df.cl", "df", "dfcl":
		return ProviderDF
	case "bloomberg", "bloomberglinea", "bloomberg linea", "bloomberg línea":
		return ProviderBloomberg
	default:
		return p
	}
}
