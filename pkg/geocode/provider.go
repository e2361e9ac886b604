// Package geocode resolves coordinates into human-readable addresses.
// The core only ever treats the result as opaque cached text; when no
// provider is configured or a lookup fails, the raw coordinates are
// used instead.
package geocode

import (
	"context"
	"fmt"
)

// Provider resolves a coordinate pair into an address label.
type Provider interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// FormatCoordinates renders a raw coordinate pair for display when no
// address is available.
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lon)
}
