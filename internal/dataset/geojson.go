package dataset

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/proximity"
)

// DecodeGeoJSON reads Point features of a FeatureCollection as cities.
// The name comes from the "name" or "place" property; other geometries are skipped.
func DecodeGeoJSON(data []byte) ([]geo.Point, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	cities := make([]City, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			if f.Geometry != nil {
				log.Trace().Str("geometry", f.Geometry.GeoJSONType()).Msg("Skipping non-point feature")
			}
			continue
		}

		name := f.Properties.MustString("name", "")
		if name == "" {
			name = f.Properties.MustString("place", "")
		}

		id := f.Properties.MustString("id", "")
		if id == "" && f.ID != nil {
			id = fmt.Sprint(f.ID)
		}

		cities = append(cities, City{
			ID:        id,
			Place:     name,
			Status:    f.Properties.MustString("status", ""),
			Latitude:  pt.Lat(),
			Longitude: pt.Lon(),
		})
	}

	return FromRecords(cities)
}

// ToGeoJSON exports points as Point features and links as LineString features.
func ToGeoJSON(points []geo.Point, edges []proximity.Edge) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range points {
		f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
		f.ID = p.ID
		f.Properties["id"] = p.ID
		f.Properties["name"] = p.Name
		f.Properties["type"] = "city"
		fc.Append(f)
	}

	for _, e := range edges {
		f := geojson.NewFeature(orb.LineString{
			{e.A.Lng, e.A.Lat},
			{e.B.Lng, e.B.Lat},
		})
		f.Properties["from"] = e.A.ID
		f.Properties["to"] = e.B.ID
		f.Properties["distance_km"] = e.DistanceKm
		f.Properties["type"] = "link"
		fc.Append(f)
	}

	return fc
}
