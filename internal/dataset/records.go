// Package dataset loads city lists from files, URLs or inline config and turns
// them into points with stable unique IDs.
package dataset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/geo"
)

// StatusFound marks a geocoded record. Records with another non-empty status are dropped.
const StatusFound = "found"

var (
	// ErrDuplicateID is returned when two records carry the same explicit ID.
	ErrDuplicateID = errors.New("duplicate point id")

	// ErrInvalidCoordinate is returned for coordinates outside WGS84 ranges.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// idNamespace seeds the generated point IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/woozymasta/citymap"))

// City is one geocoded place as produced by the geocoding step.
type City struct {
	ID        string  `json:"id,omitempty" yaml:"id,omitempty"`
	Place     string  `json:"place" yaml:"place"`
	Status    string  `json:"status,omitempty" yaml:"status,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// FromRecords validates cities and converts them to points in input order.
//
// Records with an explicit ID keep it. Others get a UUID derived from place and
// coordinates, with an occurrence suffix for exact repeats, so IDs survive reordering.
func FromRecords(cities []City) ([]geo.Point, error) {
	points := make([]geo.Point, 0, len(cities))
	ids := make(map[string]int, len(cities))
	repeats := make(map[string]int)
	skipped := 0

	for i, c := range cities {
		if c.Status != "" && c.Status != StatusFound {
			skipped++
			continue
		}

		p := geo.Point{ID: c.ID, Name: c.Place, Lat: c.Latitude, Lng: c.Longitude}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d (%q): %v", ErrInvalidCoordinate, i, c.Place, err)
		}

		if p.ID == "" {
			base := c.Place + "|" + strconv.FormatFloat(c.Latitude, 'g', -1, 64) +
				"|" + strconv.FormatFloat(c.Longitude, 'g', -1, 64)
			key := base
			if n := repeats[base]; n > 0 {
				key += "#" + strconv.Itoa(n)
			}
			repeats[base]++
			p.ID = uuid.NewSHA1(idNamespace, []byte(key)).String()
		}

		if prev, ok := ids[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateID, p.ID, prev, i)
		}
		ids[p.ID] = i

		points = append(points, p)
	}

	if skipped > 0 {
		log.Debug().
			Int("skipped", skipped).
			Int("kept", len(points)).
			Msg("Dropped records without a found status")
	}

	return points, nil
}

// ToRecords converts points back to city records with status found.
func ToRecords(points []geo.Point) []City {
	cities := make([]City, len(points))
	for i, p := range points {
		cities[i] = City{
			ID:        p.ID,
			Place:     p.Name,
			Status:    StatusFound,
			Latitude:  p.Lat,
			Longitude: p.Lng,
		}
	}
	return cities
}
