package layout

import "fmt"

// Nearby is one row of the "Nearby Cities" list.
type Nearby struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Distance   string  `json:"distance"`
	DistanceKm float64 `json:"distance_km"`
}

// Detail is the info panel of a selected city.
type Detail struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Coords string   `json:"coords"`
	Nearby []Nearby `json:"nearby"`
}

// Detail builds the info panel for id using the configured nearby radius and limit.
func (l *Layout) Detail(id string) (Detail, error) {
	p, err := l.Point(id)
	if err != nil {
		return Detail{}, err
	}

	hits, err := l.graph.Nearest(p, l.Settings.NearbyRadiusKm, l.Settings.NearbyLimit)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		ID:     p.ID,
		Label:  ShortName(p.Name),
		Coords: fmt.Sprintf("Lat: %.6f, Lng: %.6f", p.Lat, p.Lng),
		Nearby: make([]Nearby, 0, len(hits)),
	}
	for _, h := range hits {
		d.Nearby = append(d.Nearby, Nearby{
			ID:         h.Point.ID,
			Label:      ShortName(h.Point.Name),
			DistanceKm: h.DistanceKm,
			Distance:   FormatKm(h.DistanceKm),
		})
	}

	return d, nil
}
