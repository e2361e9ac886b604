// Package geo provides the geodesic math used for displacement checks.
package geo

import "github.com/golang/geo/s2"

// earthRadiusMeters is the mean earth radius used to convert great-circle
// angles to distances.
const earthRadiusMeters = 6371008.8

// DistanceMeters returns the great-circle distance in meters between two
// coordinate pairs given in degrees. Accurate to well under a meter at
// fleet-tracking scales, including high latitudes.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusMeters
}
