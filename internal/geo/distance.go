// Package geo handles boundary geometry and the coordinate condensation
// used to fit an outline into a URL-length budget.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Separation computes the planar distance between two [lon, lat] points.
//
// This is a flat Euclidean approximation on raw degrees, not a geodesic
// distance. It is only ever compared against other separations within the
// same outline, so the distortion cancels out.
func Separation(a, b orb.Point) float64 {
	dLon := math.Abs(a[0] - b[0])
	dLat := math.Abs(a[1] - b[1])

	return math.Sqrt(dLon*dLon + dLat*dLat)
}
