package proximity

import (
	"fmt"
	"sort"

	"github.com/woozymasta/citymap/internal/geo"
)

const (
	// DefaultNearbyRadiusKm is the search radius of nearby queries.
	DefaultNearbyRadiusKm = 15.0

	// DefaultNearbyLimit caps the number of nearby results.
	DefaultNearbyLimit = 8
)

// Neighbor is one nearest-neighbor hit.
type Neighbor struct {
	Point      geo.Point `json:"point"`
	Index      int       `json:"index"` // position in the searched slice
	DistanceKm float64   `json:"distance_km"`
}

// NearestNeighbors returns up to limit points within radiusKm of target, closest first.
//
// The target is skipped by ID, so another point sharing its coordinates is still
// reported at distance zero. Equal distances keep the order of points.
func NearestNeighbors(target geo.Point, points []geo.Point, radiusKm float64, limit int) ([]Neighbor, error) {
	if err := checkDistance("radius", radiusKm); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit %d", geo.ErrInvalidArgument, limit)
	}

	nearby := make([]Neighbor, 0)
	if limit == 0 {
		return nearby, nil
	}

	for i, p := range points {
		if p.ID == target.ID {
			continue
		}
		d := geo.GreatCircleDistance(target, p)
		if d <= radiusKm {
			nearby = append(nearby, Neighbor{Point: p, Index: i, DistanceKm: d})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}
