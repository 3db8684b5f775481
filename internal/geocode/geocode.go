// Package geocode resolves free-text addresses to map coordinates.
// Providers never surface errors: any failure degrades to a nil result
// plus a logged diagnostic, and the caller decides whether to retry.
package geocode

import (
	"context"
	"strings"
)

// Result is a resolved map position. Estimated marks the city-centroid
// fallback, whose display name flags the position as approximate.
type Result struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
	Estimated   bool    `json:"estimated"`
}

// Client resolves one address. A nil result means the address could not
// be resolved; that outcome is final for the call.
type Client interface {
	Resolve(ctx context.Context, address string) *Result
}

// NormalizeAddress folds full-width digits to half-width, unifies the
// hyphen variants OCR and IMEs produce, and trims whitespace.
func NormalizeAddress(address string) string {
	address = strings.Map(func(r rune) rune {
		switch {
		case r >= '０' && r <= '９':
			return r - 0xFEE0
		case r == '－' || r == '−' || r == '‐':
			return '-'
		}
		return r
	}, address)
	return strings.TrimSpace(address)
}
