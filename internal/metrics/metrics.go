// Package metrics exposes Prometheus collectors for layout builds and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics of the application.
type Registry struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Layout
	LayoutBuildsTotal   *prometheus.CounterVec
	LayoutBuildDuration prometheus.Histogram
	LayoutNodes         prometheus.Gauge
	LayoutLinks         prometheus.Gauge

	// Dataset
	DatasetPoints prometheus.Gauge
}

// NewRegistry creates a registry with every collector registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citymap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citymap_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.LayoutBuildsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citymap_layout_builds_total",
			Help: "Total number of layout builds by result",
		},
		[]string{"result"},
	)
	r.LayoutBuildDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "citymap_layout_build_duration_seconds",
			Help:    "Time spent projecting points and building links",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
	r.LayoutNodes = f.NewGauge(prometheus.GaugeOpts{
		Name: "citymap_layout_nodes",
		Help: "Nodes in the most recent layout",
	})
	r.LayoutLinks = f.NewGauge(prometheus.GaugeOpts{
		Name: "citymap_layout_links",
		Help: "Proximity links in the most recent layout",
	})

	r.DatasetPoints = f.NewGauge(prometheus.GaugeOpts{
		Name: "citymap_dataset_points",
		Help: "Points in the loaded dataset",
	})

	return r
}

// ObserveLayout records one layout build.
func (r *Registry) ObserveLayout(d time.Duration, nodes, links int, err error) {
	r.LayoutBuildDuration.Observe(d.Seconds())
	if err != nil {
		r.LayoutBuildsTotal.WithLabelValues("error").Inc()
		return
	}
	r.LayoutBuildsTotal.WithLabelValues("ok").Inc()
	r.LayoutNodes.Set(float64(nodes))
	r.LayoutLinks.Set(float64(links))
}

// ObserveRequest records one HTTP request.
func (r *Registry) ObserveRequest(method, path string, status int, d time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
