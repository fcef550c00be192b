package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// GreatCircleDistance returns the haversine distance between a and b in kilometers.
func GreatCircleDistance(a, b Point) float64 {
	if a.SameCoordinates(b) {
		return 0
	}

	lat1 := DegreesToRadians(a.Lat)
	lat2 := DegreesToRadians(b.Lat)
	dLat := lat2 - lat1
	dLng := DegreesToRadians(b.Lng - a.Lng)

	// a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlng/2)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	h = min(max(h, 0), 1)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
