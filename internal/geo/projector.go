package geo

import (
	"fmt"
	"math"
)

// DefaultMargin is the pixel gap kept between projected points and the viewport edge.
const DefaultMargin = 75.0

// Viewport is the target pixel area of a projection.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Validate checks that the viewport leaves a positive drawable area inside the margins.
func (v Viewport) Validate() error {
	for _, f := range []float64{v.Width, v.Height, v.Margin} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: viewport %+v is not finite", ErrInvalidArgument, v)
		}
	}
	if v.Margin < 0 {
		return fmt.Errorf("%w: negative margin %v", ErrInvalidArgument, v.Margin)
	}
	if v.Width-2*v.Margin <= 0 || v.Height-2*v.Margin <= 0 {
		return fmt.Errorf("%w: viewport %vx%v has no room inside margin %v",
			ErrInvalidArgument, v.Width, v.Height, v.Margin)
	}
	return nil
}

// ComputeScale returns the uniform pixels-per-degree factor that fits b into the viewport.
//
// When either span of b is zero the factor falls back to defaultScale, capped by the
// finite axis factor if there is one so the box still fits. A zero defaultScale means
// no fallback was supplied and degenerate bounds yield ErrDegenerateBounds.
func ComputeScale(b Bounds, vp Viewport, defaultScale float64) (float64, error) {
	if err := vp.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(defaultScale) || math.IsInf(defaultScale, 0) || defaultScale < 0 {
		return 0, fmt.Errorf("%w: default scale %v", ErrInvalidArgument, defaultScale)
	}

	usableW := vp.Width - 2*vp.Margin
	usableH := vp.Height - 2*vp.Margin
	lngSpan, latSpan := b.LngSpan(), b.LatSpan()

	if !b.IsDegenerate() {
		return min(usableW/lngSpan, usableH/latSpan), nil
	}

	if defaultScale == 0 {
		return 0, fmt.Errorf("compute scale: %w: lat span %v, lng span %v",
			ErrDegenerateBounds, latSpan, lngSpan)
	}

	scale := defaultScale
	if lngSpan > 0 {
		scale = min(scale, usableW/lngSpan)
	}
	if latSpan > 0 {
		scale = min(scale, usableH/latSpan)
	}
	return scale, nil
}

// Project maps p into screen space. Screen y is inverted relative to latitude.
func Project(p Point, b Bounds, scale, margin float64) ScreenCoordinate {
	return ScreenCoordinate{
		X: (p.Lng-b.MinLng)*scale + margin,
		Y: (b.MaxLat-p.Lat)*scale + margin,
	}
}

// Projector bundles the bounds and scale computed for one point set and viewport.
// Node positions and link endpoints must come from the same Projector.
type Projector struct {
	bounds     Bounds
	viewport   Viewport
	scale      float64
	degenerate bool
}

// NewProjector computes bounds and scale for points inside vp.
func NewProjector(points []Point, vp Viewport, defaultScale float64) (*Projector, error) {
	b, err := ComputeBounds(points)
	if err != nil {
		return nil, err
	}

	scale, err := ComputeScale(b, vp, defaultScale)
	if err != nil {
		return nil, err
	}

	return &Projector{
		bounds:     b,
		viewport:   vp,
		scale:      scale,
		degenerate: b.IsDegenerate(),
	}, nil
}

// Project maps p to screen space.
func (pr *Projector) Project(p Point) ScreenCoordinate {
	return Project(p, pr.bounds, pr.scale, pr.viewport.Margin)
}

// Bounds returns the bounding box of the projected set.
func (pr *Projector) Bounds() Bounds { return pr.bounds }

// Scale returns pixels per degree.
func (pr *Projector) Scale() float64 { return pr.scale }

// Viewport returns the viewport the scale was fitted to.
func (pr *Projector) Viewport() Viewport { return pr.viewport }

// Degenerate reports whether the scale came from the fallback path.
func (pr *Projector) Degenerate() bool { return pr.degenerate }
