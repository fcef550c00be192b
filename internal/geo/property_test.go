package geo

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genPoint() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-90, 90),
		gen.Float64Range(-180, 180),
	).Map(func(v []interface{}) Point {
		return Point{Lat: v[0].(float64), Lng: v[1].(float64)}
	})
}

// TestGeoProperties checks the invariants of bounds, projection and distance
// over random inputs.
func TestGeoProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("bounds are ordered", prop.ForAll(
		func(points []Point) bool {
			b, err := ComputeBounds(points)
			if err != nil {
				return false
			}
			return b.MinLat <= b.MaxLat && b.MinLng <= b.MaxLng
		},
		gen.SliceOfN(20, genPoint()).SuchThat(func(ps []Point) bool { return len(ps) > 0 }),
	))

	properties.Property("projected points stay inside the scaled span", prop.ForAll(
		func(points []Point) bool {
			vp := Viewport{Width: 1200, Height: 800, Margin: DefaultMargin}
			b, err := ComputeBounds(points)
			if err != nil {
				return false
			}
			scale, err := ComputeScale(b, vp, 100)
			if err != nil {
				return false
			}
			const tol = 1e-6
			for _, p := range points {
				c := Project(p, b, scale, vp.Margin)
				if c.X < vp.Margin-tol || c.X > vp.Margin+scale*b.LngSpan()+tol {
					return false
				}
				if c.Y < vp.Margin-tol || c.Y > vp.Margin+scale*b.LatSpan()+tol {
					return false
				}
				if c.X > vp.Width-vp.Margin+tol || c.Y > vp.Height-vp.Margin+tol {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(10, genPoint()).SuchThat(func(ps []Point) bool { return len(ps) > 0 }),
	))

	properties.Property("distance to self is zero", prop.ForAll(
		func(p Point) bool {
			return GreatCircleDistance(p, p) == 0
		},
		genPoint(),
	))

	properties.Property("distance is symmetric", prop.ForAll(
		func(a, b Point) bool {
			return GreatCircleDistance(a, b) == GreatCircleDistance(b, a)
		},
		genPoint(),
		genPoint(),
	))

	properties.Property("distance is bounded by half the circumference", prop.ForAll(
		func(a, b Point) bool {
			d := GreatCircleDistance(a, b)
			return d >= 0 && d <= 3.1416*EarthRadiusKm
		},
		genPoint(),
		genPoint(),
	))

	properties.TestingRun(t)
}
