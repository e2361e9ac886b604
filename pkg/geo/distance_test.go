package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDistanceMeters_Zero tests that identical coordinates have zero displacement.
func TestDistanceMeters_Zero(t *testing.T) {
	assert.Zero(t, DistanceMeters(31.0, -106.0, 31.0, -106.0))
}

// TestDistanceMeters_OneLatitudeStep tests a ten-thousandth of a degree
// of latitude, which is roughly 11.1 meters anywhere on the globe.
func TestDistanceMeters_OneLatitudeStep(t *testing.T) {
	d := DistanceMeters(31.0, -106.0, 31.0001, -106.0)
	assert.InDelta(t, 11.1, d, 0.2)
}

// TestDistanceMeters_KnownPair tests a longer baseline: one degree of
// longitude at the equator is about 111.2 km.
func TestDistanceMeters_KnownPair(t *testing.T) {
	d := DistanceMeters(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 100)
}

// TestDistanceMeters_Symmetric tests that distance is direction independent.
func TestDistanceMeters_Symmetric(t *testing.T) {
	a := DistanceMeters(48.1, 11.5, 48.2, 11.6)
	b := DistanceMeters(48.2, 11.6, 48.1, 11.5)
	assert.InDelta(t, a, b, 1e-9)
}
