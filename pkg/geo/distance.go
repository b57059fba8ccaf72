package geo

import (
	"math"
)

// NearbyRadius is the cut-off used for "stores near you". It is expressed in the
// same unit as the coordinates (degrees), even though the console labels it miles.
const NearbyRadius = 30.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the planar Euclidean distance between two coordinate pairs.
// This is not a great-circle distance.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Between is Distance over two points.
func Between(a, b Point) float64 {
	return Distance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Within reports whether b lies inside radius of a (inclusive).
func Within(a, b Point, radius float64) bool {
	return Between(a, b) <= radius
}

// Nearest returns the index of the candidate closest to origin and its distance.
// Ties keep the first candidate seen. The index is -1 when candidates is empty.
func Nearest(origin Point, candidates []Point) (int, float64) {
	best := -1
	bestDistance := math.Inf(1)
	for i, c := range candidates {
		d := Between(origin, c)
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return best, bestDistance
}
