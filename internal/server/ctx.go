package server

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/assets"
	"github.com/woozymasta/citymap/internal/config"
	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/layout"
	"github.com/woozymasta/citymap/internal/metrics"
	"github.com/woozymasta/citymap/internal/render"
)

// ServerContext holds dependencies for request handlers.
// Points is an immutable snapshot; every request lays it out from scratch.
type ServerContext struct {
	Config  *config.Config
	Metrics *metrics.Registry
	Points  []geo.Point
	Favicon []byte
	page    *template.Template
	css     template.CSS
}

// NewServerContext parses the page template and prepares the stylesheet.
func NewServerContext(cfg *config.Config, points []geo.Point, reg *metrics.Registry) (*ServerContext, error) {
	page, err := template.New("index").Parse(assets.IndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	css, err := render.Minify(render.MediaCSS, []byte(assets.Style))
	if err != nil {
		return nil, fmt.Errorf("minify stylesheet: %w", err)
	}

	if reg == nil {
		reg = metrics.NewRegistry()
	}
	reg.DatasetPoints.Set(float64(len(points)))

	log.Info().
		Int("points", len(points)).
		Str("title", cfg.Title).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:  cfg,
		Metrics: reg,
		Points:  points,
		Favicon: assets.Favicon,
		page:    page,
		css:     template.CSS(css), // #nosec G203 -- embedded asset
	}, nil
}

// Routes registers every handler on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cities", s.HandleCities)
	mux.HandleFunc("/api/layout", s.HandleLayout)
	mux.HandleFunc("/api/stats", s.HandleStats)
	mux.HandleFunc("/api/geojson", s.HandleGeoJSON)
	mux.HandleFunc("/api/nearby/", s.HandleNearby)
	mux.HandleFunc("/map.png", s.HandleImage(render.FormatPNG))
	mux.HandleFunc("/map.webp", s.HandleImage(render.FormatWebP))
	mux.HandleFunc("/map.svg", s.HandleSVG)
	mux.HandleFunc("/favicon.ico", s.HandleFavicon)
	mux.Handle("/metrics", s.Metrics.Handler())
	mux.HandleFunc("/", s.HandleIndex)
	return mux
}

// buildLayout parses the view from the request and lays out the points.
func (s *ServerContext) buildLayout(r *http.Request) (*layout.Layout, layout.View, error) {
	q := r.URL.Query()

	vp, err := parseViewport(q, s.Config.GeoViewport(), s.Config.Viewport.MaxSide)
	if err != nil {
		return nil, layout.View{}, err
	}
	v, err := parseView(q)
	if err != nil {
		return nil, layout.View{}, err
	}

	start := time.Now()
	l, err := layout.Build(s.Points, s.Config.LayoutSettings(vp))
	if l != nil {
		s.Metrics.ObserveLayout(time.Since(start), len(l.Nodes), len(l.Links), err)
	} else {
		s.Metrics.ObserveLayout(time.Since(start), 0, 0, err)
	}
	if err != nil {
		return nil, v, err
	}

	return l, v, nil
}
