// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/dataset"
	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/layout"
	"github.com/woozymasta/citymap/internal/proximity"
	"github.com/woozymasta/citymap/internal/render"
)

// pageLinks are the control URLs of the map page.
type pageLinks struct {
	ZoomIn            string
	ZoomOut           string
	Reset             string
	PanLeft           string
	PanRight          string
	PanUp             string
	PanDown           string
	ToggleDistances   string
	ToggleNames       string
	ToggleConnections string
}

type pageData struct {
	Detail    *layout.Detail
	NodeLinks map[string]string
	Title     string
	CSS       template.CSS
	SVG       template.HTML
	Links     pageLinks
	View      layout.View
	Stats     proximity.Stats
}

// HandleIndex serves the server-rendered map page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	l, v, err := s.buildLayout(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	nodeLinks := make(map[string]string, len(l.Nodes))
	for _, n := range l.Nodes {
		nodeLinks[n.ID] = viewQuery(v.Select(n.ID), q)
	}

	svg, err := render.SVG(l, v, render.SVGOptions{
		NodeHref: func(id string) string { return nodeLinks[id] },
	})
	if err != nil {
		writeError(w, err)
		return
	}

	data := pageData{
		Title:     s.Config.Title,
		CSS:       s.css,
		SVG:       template.HTML(svg), // #nosec G203 -- escaped by render.SVG
		View:      v,
		Stats:     l.Stats,
		NodeLinks: nodeLinks,
		Links: pageLinks{
			ZoomIn:            viewQuery(v.ZoomIn(), q),
			ZoomOut:           viewQuery(v.ZoomOut(), q),
			Reset:             viewQuery(v.Reset(), q),
			PanLeft:           viewQuery(v.Pan(-panStep, 0), q),
			PanRight:          viewQuery(v.Pan(panStep, 0), q),
			PanUp:             viewQuery(v.Pan(0, -panStep), q),
			PanDown:           viewQuery(v.Pan(0, panStep), q),
			ToggleDistances:   viewQuery(v.ToggleDistances(), q),
			ToggleNames:       viewQuery(v.ToggleNames(), q),
			ToggleConnections: viewQuery(v.ToggleConnections(), q),
		},
	}

	if v.Selected != "" {
		d, err := l.Detail(v.Selected)
		if err != nil {
			writeError(w, err)
			return
		}
		data.Detail = &d
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		writeError(w, err)
		return
	}

	page, err := render.Minify(render.MediaHTML, buf.Bytes())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to minify page, serving as is")
		page = buf.Bytes()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

// HandleCities serves the loaded points.
func (s *ServerContext) HandleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Points)
}

// HandleLayout serves node positions, links and stats for the requested viewport.
func (s *ServerContext) HandleLayout(w http.ResponseWriter, r *http.Request) {
	l, v, err := s.buildLayout(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*layout.Layout
		View     layout.View  `json:"view"`
		Viewport geo.Viewport `json:"viewport"`
	}{l, v, l.Settings.Viewport})
}

// HandleStats serves the stats panel values.
func (s *ServerContext) HandleStats(w http.ResponseWriter, r *http.Request) {
	edges, err := proximity.BuildEdges(s.Points, s.Config.Proximity.ThresholdKm)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := proximity.Summarize(s.Points, edges)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleGeoJSON serves points and links as a FeatureCollection.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	edges, err := proximity.BuildEdges(s.Points, s.Config.Proximity.ThresholdKm)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := dataset.ToGeoJSON(s.Points, edges).MarshalJSON()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

// HandleNearby serves the nearest neighbors of /api/nearby/{id}.
// The radius and limit query parameters override the configured ones.
func (s *ServerContext) HandleNearby(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/nearby/"), "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	var target *geo.Point
	for i := range s.Points {
		if s.Points[i].ID == id {
			target = &s.Points[i]
			break
		}
	}
	if target == nil {
		writeError(w, layout.ErrUnknownPoint)
		return
	}

	q := r.URL.Query()
	radius, err := floatParam(q, "radius", s.Config.Proximity.NearbyRadiusKm)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intParam(q, "limit", s.Config.Proximity.NearbyLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	nearby, err := proximity.NearestNeighbors(*target, s.Points, radius, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nearby)
}

// HandleImage serves the map as a raster image. The thumb parameter scales it down.
func (s *ServerContext) HandleImage(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, v, err := s.buildLayout(r)
		if err != nil {
			writeError(w, err)
			return
		}

		thumb, err := intParam(r.URL.Query(), "thumb", 0)
		if err != nil {
			writeError(w, err)
			return
		}

		img := render.Thumbnail(render.Raster(l, v), thumb)

		var buf bytes.Buffer
		if err := render.Encode(&buf, img, format); err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", render.ContentType(format))
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(buf.Bytes())
	}
}

// HandleSVG serves the map as an SVG document.
func (s *ServerContext) HandleSVG(w http.ResponseWriter, r *http.Request) {
	l, v, err := s.buildLayout(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := render.SVG(l, v, render.SVGOptions{})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(render.FormatSVG))
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(out)
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, geo.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, layout.ErrUnknownPoint):
		status = http.StatusNotFound
	case errors.Is(err, geo.ErrEmptyInput), errors.Is(err, geo.ErrDegenerateBounds):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
