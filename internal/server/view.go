package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/layout"
)

// panStep is how far the page arrows move the map.
const panStep = 50.0

// Query keys of the view state.
const (
	keyWidth       = "w"
	keyHeight      = "h"
	keyZoom        = "zoom"
	keyWheel       = "wheel"
	keyPanX        = "px"
	keyPanY        = "py"
	keyDistances   = "d"
	keyNames       = "n"
	keyConnections = "c"
	keySelected    = "sel"
)

// parseView reads the view state, starting from the default view.
func parseView(q url.Values) (layout.View, error) {
	v := layout.DefaultView()
	var err error

	if v.Zoom, err = floatParam(q, keyZoom, v.Zoom); err != nil {
		return v, err
	}
	// a wheel delta steps the zoom once, after any explicit zoom
	if q.Get(keyWheel) != "" {
		delta, err := floatParam(q, keyWheel, 0)
		if err != nil {
			return v, err
		}
		v = v.Normalized().Wheel(delta)
	}
	if v.PanX, err = floatParam(q, keyPanX, 0); err != nil {
		return v, err
	}
	if v.PanY, err = floatParam(q, keyPanY, 0); err != nil {
		return v, err
	}
	if v.ShowDistances, err = boolParam(q, keyDistances, v.ShowDistances); err != nil {
		return v, err
	}
	if v.ShowNames, err = boolParam(q, keyNames, v.ShowNames); err != nil {
		return v, err
	}
	if v.ShowConnections, err = boolParam(q, keyConnections, v.ShowConnections); err != nil {
		return v, err
	}
	v.Selected = q.Get(keySelected)

	return v.Normalized(), nil
}

// parseViewport applies w/h overrides to the configured viewport.
// Neither side may exceed maxSide.
func parseViewport(q url.Values, vp geo.Viewport, maxSide float64) (geo.Viewport, error) {
	var err error
	if vp.Width, err = floatParam(q, keyWidth, vp.Width); err != nil {
		return vp, err
	}
	if vp.Height, err = floatParam(q, keyHeight, vp.Height); err != nil {
		return vp, err
	}
	if vp.Width > maxSide || vp.Height > maxSide {
		return vp, fmt.Errorf("%w: viewport %vx%v larger than %vpx",
			geo.ErrInvalidArgument, vp.Width, vp.Height, maxSide)
	}
	return vp, vp.Validate()
}

// viewQuery encodes v, plus a viewport override, as a page URL.
func viewQuery(v layout.View, base url.Values) string {
	q := url.Values{}
	for _, k := range []string{keyWidth, keyHeight} {
		if val := base.Get(k); val != "" {
			q.Set(k, val)
		}
	}

	def := layout.DefaultView()
	if v.Zoom != def.Zoom {
		q.Set(keyZoom, strconv.FormatFloat(v.Zoom, 'f', -1, 64))
	}
	if v.PanX != 0 {
		q.Set(keyPanX, strconv.FormatFloat(v.PanX, 'f', -1, 64))
	}
	if v.PanY != 0 {
		q.Set(keyPanY, strconv.FormatFloat(v.PanY, 'f', -1, 64))
	}
	if v.ShowDistances != def.ShowDistances {
		q.Set(keyDistances, strconv.FormatBool(v.ShowDistances))
	}
	if v.ShowNames != def.ShowNames {
		q.Set(keyNames, strconv.FormatBool(v.ShowNames))
	}
	if v.ShowConnections != def.ShowConnections {
		q.Set(keyConnections, strconv.FormatBool(v.ShowConnections))
	}
	if v.Selected != "" {
		q.Set(keySelected, v.Selected)
	}

	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", geo.ErrInvalidArgument, key, raw)
	}
	return f, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", geo.ErrInvalidArgument, key, raw)
	}
	return i, nil
}

func boolParam(q url.Values, key string, def bool) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", geo.ErrInvalidArgument, key, raw)
	}
	return b, nil
}
