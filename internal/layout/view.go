package layout

import (
	"math"

	"github.com/woozymasta/citymap/internal/geo"
)

// Zoom limits and steps of the interactive map.
const (
	MinZoom   = 0.3
	MaxZoom   = 5.0
	ZoomStep  = 0.25 // buttons
	WheelStep = 0.15 // mouse wheel or trackpad
)

// View is the interactive state of one rendering: zoom, pan, toggles and selection.
// Every transition returns a new View; the receiver is never modified.
type View struct {
	Selected        string  `json:"selected,omitempty"`
	Zoom            float64 `json:"zoom"`
	PanX            float64 `json:"pan_x"`
	PanY            float64 `json:"pan_y"`
	ShowDistances   bool    `json:"show_distances"`
	ShowNames       bool    `json:"show_names"`
	ShowConnections bool    `json:"show_connections"`
}

// DefaultView is the state of a fresh page: no zoom, names and links shown, distances hidden.
func DefaultView() View {
	return View{
		Zoom:            1,
		ShowNames:       true,
		ShowConnections: true,
	}
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return max(MinZoom, min(MaxZoom, z))
}

// Normalized clamps the zoom and replaces non-finite pan offsets.
func (v View) Normalized() View {
	v.Zoom = clampZoom(v.Zoom)
	if math.IsNaN(v.PanX) || math.IsInf(v.PanX, 0) {
		v.PanX = 0
	}
	if math.IsNaN(v.PanY) || math.IsInf(v.PanY, 0) {
		v.PanY = 0
	}
	return v
}

// ZoomIn steps the zoom up by ZoomStep.
func (v View) ZoomIn() View {
	v.Zoom = clampZoom(v.Zoom + ZoomStep)
	return v
}

// ZoomOut steps the zoom down by ZoomStep.
func (v View) ZoomOut() View {
	v.Zoom = clampZoom(v.Zoom - ZoomStep)
	return v
}

// Wheel applies a wheel event. Scrolling down (positive delta) zooms out.
func (v View) Wheel(deltaY float64) View {
	step := WheelStep
	if deltaY > 0 {
		step = -WheelStep
	}
	v.Zoom = clampZoom(v.Zoom + step)
	return v
}

// Pan moves the map by a drag delta in pixels.
func (v View) Pan(dx, dy float64) View {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Reset restores zoom and pan, keeping toggles and selection.
func (v View) Reset() View {
	v.Zoom = 1
	v.PanX = 0
	v.PanY = 0
	return v
}

// ToggleDistances flips the distance labels.
func (v View) ToggleDistances() View {
	v.ShowDistances = !v.ShowDistances
	return v
}

// ToggleNames flips the city labels.
func (v View) ToggleNames() View {
	v.ShowNames = !v.ShowNames
	return v
}

// ToggleConnections flips the link lines.
func (v View) ToggleConnections() View {
	v.ShowConnections = !v.ShowConnections
	return v
}

// Select marks a point by ID. An empty ID clears the selection.
func (v View) Select(id string) View {
	v.Selected = id
	return v
}

// ZoomPercent is the zoom shown to the user, e.g. 125 for 1.25.
func (v View) ZoomPercent() int {
	return int(math.Round(v.Zoom * 100))
}

// Transform applies zoom and pan to a layout position. Panning happens in
// unzoomed pixels and the zoom is centered on the viewport.
func (v View) Transform(c geo.ScreenCoordinate, vp geo.Viewport) geo.ScreenCoordinate {
	cx, cy := vp.Width/2, vp.Height/2
	return geo.ScreenCoordinate{
		X: cx + v.Zoom*(c.X+v.PanX-cx),
		Y: cy + v.Zoom*(c.Y+v.PanY-cy),
	}
}
