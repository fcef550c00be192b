// Package proximity builds the distance graph between points: links between
// pairs closer than a threshold, nearest-neighbor queries and summary stats.
//
// Every operation compares all pairs, so cost grows with the square of the
// point count. That is fine for tens to a few hundred points; larger sets need
// a spatial index.
package proximity

import (
	"fmt"
	"math"

	"github.com/woozymasta/citymap/internal/geo"
)

// DefaultThresholdKm is the link distance used when none is configured.
const DefaultThresholdKm = 10.0

// Edge links two points closer than the graph threshold.
type Edge struct {
	A          geo.Point `json:"a"`
	B          geo.Point `json:"b"`
	DistanceKm float64   `json:"distance_km"`
}

// Has reports whether the edge touches the point with the given ID.
func (e Edge) Has(id string) bool {
	return e.A.ID == id || e.B.ID == id
}

// BuildEdges returns an edge for every unordered pair within thresholdKm.
// Pairs are visited once as (i, j) with i < j, which fixes the output order.
func BuildEdges(points []geo.Point, thresholdKm float64) ([]Edge, error) {
	if err := checkDistance("threshold", thresholdKm); err != nil {
		return nil, err
	}

	edges := make([]Edge, 0)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := geo.GreatCircleDistance(points[i], points[j])
			if d <= thresholdKm {
				edges = append(edges, Edge{A: points[i], B: points[j], DistanceKm: d})
			}
		}
	}

	return edges, nil
}

func checkDistance(name string, km float64) error {
	if math.IsNaN(km) || km < 0 {
		return fmt.Errorf("%w: %s %v km", geo.ErrInvalidArgument, name, km)
	}
	return nil
}
