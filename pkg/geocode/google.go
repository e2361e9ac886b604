package geocode

import (
	"context"
	"errors"

	"googlemaps.github.io/maps"
)

// GoogleProvider resolves addresses through the Google Maps Geocoding API.
type GoogleProvider struct {
	client *maps.Client
}

// NewGoogleProvider creates a new GoogleProvider instance.
func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleProvider{
		client: c,
	}, nil
}

// ReverseGeocode returns the first formatted address for the coordinates.
func (g *GoogleProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lon},
	}

	results, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("no address found for coordinates")
	}

	return results[0].FormattedAddress, nil
}
