package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/metrics"
)

// RequestLogger is a middleware to log HTTP requests and record their metrics.
func RequestLogger(reg *metrics.Registry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		if reg != nil {
			reg.ObserveRequest(r.Method, routeLabel(r.URL.Path), ww.statusCode, elapsed)
		}

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.statusCode).
			Str("ip", r.RemoteAddr).
			Dur("duration", elapsed).
			Msg("Request processed")
	})
}

// routeLabel folds per-point paths so metric labels stay bounded.
func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/nearby/"):
		return "/api/nearby"
	case path == "/" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/map.") ||
		path == "/metrics" || path == "/favicon.ico":
		return path
	}
	return "other"
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing to the underlying response writer.
func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
