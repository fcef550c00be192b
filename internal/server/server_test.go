package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/citymap/internal/config"
	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/layout"
	"github.com/woozymasta/citymap/internal/metrics"
	"github.com/woozymasta/citymap/internal/proximity"
)

func testPoints() []geo.Point {
	return []geo.Point{
		{ID: "colombo", Name: "Colombo, Western Province, Sri Lanka", Lat: 6.9271, Lng: 79.8612},
		{ID: "dehiwala", Name: "Dehiwala-Mount Lavinia, Sri Lanka", Lat: 6.8511, Lng: 79.8659},
		{ID: "kotte", Name: "Sri Jayawardenepura Kotte, Sri Lanka", Lat: 6.8868, Lng: 79.9187},
		{ID: "kandy", Name: "Kandy, Central Province, Sri Lanka", Lat: 7.2906, Lng: 80.6337},
	}
}

func newTestServer(t *testing.T, points []geo.Point) (*ServerContext, http.Handler) {
	t.Helper()
	cfg := config.Default()
	cfg.Viewport.Width = 600
	cfg.Viewport.Height = 400
	cfg.Viewport.Margin = 40

	s, err := NewServerContext(cfg, points, metrics.NewRegistry())
	require.NoError(t, err)
	return s, RequestLogger(s.Metrics, s.Routes())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleIndex(t *testing.T) {
	_, h := newTestServer(t, testPoints())

	t.Run("renders map and stats", func(t *testing.T) {
		rec := get(t, h, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		body := rec.Body.String()
		assert.Contains(t, body, "Map Statistics")
		assert.Contains(t, body, "node-kotte")
		assert.Contains(t, body, "Show Distances")
		assert.Contains(t, body, "Hide Names")
		assert.Contains(t, body, "100%")
	})

	t.Run("selection shows nearby cities", func(t *testing.T) {
		rec := get(t, h, "/?sel=colombo&d=true&zoom=1.25")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Nearby Cities:")
		assert.Contains(t, body, "Lat: 6.927100, Lng: 79.861200")
		assert.Contains(t, body, "Hide Distances")
		assert.Contains(t, body, "125%")
	})

	t.Run("wheel steps the zoom", func(t *testing.T) {
		rec := get(t, h, "/?zoom=2&wheel=120")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "185%")

		rec = get(t, h, "/?wheel=-3")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "115%")
	})

	t.Run("unknown selection", func(t *testing.T) {
		rec := get(t, h, "/?sel=atlantis")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad query", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/?zoom=big").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/?w=50").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/?d=maybe").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/?wheel=up").Code)
	})

	t.Run("unknown path", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
	})
}

func TestHandleIndexEmptyDataset(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty input")
}

func TestHandleLayout(t *testing.T) {
	_, h := newTestServer(t, testPoints())

	rec := get(t, h, "/api/layout?w=800&h=600")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Nodes    []layout.Node   `json:"nodes"`
		Links    []layout.Link   `json:"links"`
		Stats    proximity.Stats `json:"stats"`
		Viewport geo.Viewport    `json:"viewport"`
		View     layout.View     `json:"view"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got.Nodes, 4)
	assert.Len(t, got.Links, 3)
	assert.Equal(t, 4, got.Stats.TotalPoints)
	assert.Equal(t, 800.0, got.Viewport.Width)
	assert.Equal(t, 1.0, got.View.Zoom)
}

func TestHandleNearby(t *testing.T) {
	_, h := newTestServer(t, testPoints())

	t.Run("default radius and limit", func(t *testing.T) {
		rec := get(t, h, "/api/nearby/colombo")
		require.Equal(t, http.StatusOK, rec.Code)
		var got []proximity.Neighbor
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "kotte", got[0].Point.ID)
	})

	t.Run("overrides", func(t *testing.T) {
		rec := get(t, h, "/api/nearby/colombo?radius=200&limit=1")
		require.Equal(t, http.StatusOK, rec.Code)
		var got []proximity.Neighbor
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got, 1)
	})

	t.Run("errors", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(t, h, "/api/nearby/atlantis").Code)
		assert.Equal(t, http.StatusNotFound, get(t, h, "/api/nearby/").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/nearby/colombo?radius=-1").Code)
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/nearby/colombo?limit=-1").Code)
	})
}

func TestHandleDataEndpoints(t *testing.T) {
	_, h := newTestServer(t, testPoints())

	t.Run("cities", func(t *testing.T) {
		rec := get(t, h, "/api/cities")
		require.Equal(t, http.StatusOK, rec.Code)
		var got []geo.Point
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, testPoints(), got)
	})

	t.Run("stats", func(t *testing.T) {
		rec := get(t, h, "/api/stats")
		require.Equal(t, http.StatusOK, rec.Code)
		var got proximity.Stats
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, 3, got.Connections)
	})

	t.Run("geojson", func(t *testing.T) {
		rec := get(t, h, "/api/geojson")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"distance_km"`)
	})
}

func TestHandleImages(t *testing.T) {
	_, h := newTestServer(t, testPoints())

	t.Run("png", func(t *testing.T) {
		rec := get(t, h, "/map.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		img, err := png.Decode(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, 600, img.Bounds().Dx())
	})

	t.Run("png thumbnail", func(t *testing.T) {
		rec := get(t, h, "/map.png?thumb=300")
		require.Equal(t, http.StatusOK, rec.Code)
		img, err := png.Decode(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	})

	t.Run("webp", func(t *testing.T) {
		rec := get(t, h, "/map.webp")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/webp", rec.Header().Get("Content-Type"))
	})

	t.Run("svg", func(t *testing.T) {
		rec := get(t, h, "/map.svg?c=false&sel=kotte")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
		assert.Contains(t, rec.Body.String(), "city-connection")
	})

	t.Run("favicon", func(t *testing.T) {
		rec := get(t, h, "/favicon.ico")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<svg")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t, testPoints())
	get(t, h, "/api/nearby/colombo")
	get(t, h, "/api/layout")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `citymap_http_requests_total{method="GET",path="/api/nearby",status="200"} 1`)
	assert.Contains(t, body, `citymap_layout_builds_total{result="ok"} 1`)
	assert.Contains(t, body, "citymap_dataset_points 4")
}

func TestViewQueryRoundTrip(t *testing.T) {
	v := layout.DefaultView().ZoomIn().Pan(-50, 25).ToggleDistances().ToggleNames().Select("kotte")
	base := url.Values{"w": {"800"}, "zoom": {"3"}}

	target := viewQuery(v, base)
	u, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "800", u.Query().Get("w"))

	back, err := parseView(u.Query())
	require.NoError(t, err)
	assert.Equal(t, v, back)

	assert.Equal(t, "/", viewQuery(layout.DefaultView(), url.Values{}))
}

func TestViewportSizeCap(t *testing.T) {
	s, h := newTestServer(t, testPoints())
	maxSide := s.Config.Viewport.MaxSide
	require.Equal(t, 4096.0, maxSide)

	assert.Equal(t, http.StatusOK, get(t, h, "/api/layout?w=4096&h=4096").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/map.png?w=8192&h=8192").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/map.webp?w=4097").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/map.svg?h=5000").Code)

	s.Config.Viewport.MaxSide = 700
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/map.png?w=800").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/api/layout?w=700").Code)
}

func TestParseViewWheel(t *testing.T) {
	v, err := parseView(url.Values{"zoom": {"4.9"}, "wheel": {"-1"}})
	require.NoError(t, err)
	assert.Equal(t, layout.MaxZoom, v.Zoom)

	v, err = parseView(url.Values{"zoom": {"0.1"}, "wheel": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, layout.MinZoom, v.Zoom)

	v, err = parseView(url.Values{"zoom": {"1.5"}})
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.Zoom)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/nearby", routeLabel("/api/nearby/abc"))
	assert.Equal(t, "/map.png", routeLabel("/map.png"))
	assert.Equal(t, "other", routeLabel("/wp-admin"))
}
