package geo

import "fmt"

// kmPerDegree is the rough length of one degree used for the area estimate.
const kmPerDegree = 111.0

// Bounds is the axis-aligned lat/lng box around a point set.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// ComputeBounds returns the bounding box of points.
func ComputeBounds(points []Point) (Bounds, error) {
	if len(points) == 0 {
		return Bounds{}, fmt.Errorf("compute bounds: %w", ErrEmptyInput)
	}

	b := Bounds{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MinLng = min(b.MinLng, p.Lng)
		b.MaxLng = max(b.MaxLng, p.Lng)
	}

	return b, nil
}

// LatSpan is maxLat - minLat in degrees.
func (b Bounds) LatSpan() float64 { return b.MaxLat - b.MinLat }

// LngSpan is maxLng - minLng in degrees.
func (b Bounds) LngSpan() float64 { return b.MaxLng - b.MinLng }

// IsDegenerate reports a zero span on either axis.
func (b Bounds) IsDegenerate() bool {
	return b.LatSpan() == 0 || b.LngSpan() == 0
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// AreaKm2 is a rough area estimate that treats every degree as 111 km.
func (b Bounds) AreaKm2() float64 {
	return b.LatSpan() * b.LngSpan() * kmPerDegree * kmPerDegree
}
