package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/geo"
	"gopkg.in/yaml.v3"
)

// Load reads a dataset file and picks the decoder from its extension:
// .json and .js city lists, .geojson feature collections, .yaml/.yml city lists.
func Load(path string) ([]geo.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var points []geo.Point
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".js":
		points, err = DecodeJSON(data)
	case ".geojson":
		points, err = DecodeGeoJSON(data)
	case ".yaml", ".yml":
		points, err = DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("points", len(points)).
		Msg("Dataset loaded")

	return points, nil
}

// DecodeJSON parses a JSON array of city records. A script wrapper such as
// `window.cityData = [...];` is tolerated and stripped.
func DecodeJSON(data []byte) ([]geo.Point, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '[' {
		start := bytes.IndexByte(data, '[')
		end := bytes.LastIndexByte(data, ']')
		if start < 0 || end < start {
			return nil, fmt.Errorf("no city array found")
		}
		data = data[start : end+1]
	}

	var cities []City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, err
	}
	return FromRecords(cities)
}

// DecodeYAML parses a YAML list of city records.
func DecodeYAML(data []byte) ([]geo.Point, error) {
	var cities []City
	if err := yaml.Unmarshal(data, &cities); err != nil {
		return nil, err
	}
	return FromRecords(cities)
}
