package proximity

import "github.com/woozymasta/citymap/internal/geo"

// Stats summarises a point set and its links.
type Stats struct {
	TotalPoints       int     `json:"total_points"`
	AreaKm2           float64 `json:"area_km2"`
	AverageDistanceKm float64 `json:"average_distance_km"`
	Connections       int     `json:"connections"`
}

// Summarize computes the stats panel values for points and their links.
func Summarize(points []geo.Point, edges []Edge) (Stats, error) {
	b, err := geo.ComputeBounds(points)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalPoints:       len(points),
		AreaKm2:           b.AreaKm2(),
		AverageDistanceKm: AverageDistance(points),
		Connections:       len(edges),
	}, nil
}

// AverageDistance is the mean distance over all unordered pairs, 0 with fewer than two points.
func AverageDistance(points []geo.Point) float64 {
	var total float64
	var count int
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			total += geo.GreatCircleDistance(points[i], points[j])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return total / float64(count)
}
