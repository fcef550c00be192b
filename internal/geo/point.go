// Package geo holds the geographic data model, the flat projection onto
// screen space and great-circle distance math.
package geo

import (
	"fmt"
	"math"
)

// Point is a named location. Points are values and never change after loading.
type Point struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"` // degrees, [-90, 90]
	Lng  float64 `json:"lng" yaml:"lng"` // degrees, [-180, 180]
}

// ScreenCoordinate is a pixel position, y grows downward.
type ScreenCoordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SameCoordinates reports whether both points sit on exactly the same lat/lng.
func (p Point) SameCoordinates(o Point) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng
}

// Validate checks that the coordinates are finite and within WGS84 ranges.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidArgument, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidArgument, p.Lng)
	}
	return nil
}
