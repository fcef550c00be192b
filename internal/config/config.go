// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/woozymasta/citymap/internal/dataset"
	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/layout"
	"github.com/woozymasta/citymap/internal/proximity"
	"gopkg.in/yaml.v3"
)

// DefaultMaxSide caps requested map sizes. Raster memory grows with width * height.
const DefaultMaxSide = 4096

var validate = validator.New()

// Config represents the root configuration file structure.
type Config struct {
	Title      string         `yaml:"title" json:"title"`
	Dataset    string         `yaml:"dataset,omitempty" json:"-"`
	DatasetURL string         `yaml:"dataset_url,omitempty" json:"-" validate:"omitempty,url"`
	Cities     []dataset.City `yaml:"cities,omitempty" json:"-"` // inline dataset, wins over files
	Major      []string       `yaml:"major,omitempty" json:"major,omitempty" validate:"dive,required"`
	Viewport   Viewport       `yaml:"viewport" json:"viewport"`
	Proximity  Proximity      `yaml:"proximity" json:"proximity"`
}

// Viewport sets the default canvas the map is fitted into.
type Viewport struct {
	Width        float64 `yaml:"width" json:"width" validate:"gt=0,ltefield=MaxSide"`
	Height       float64 `yaml:"height" json:"height" validate:"gt=0,ltefield=MaxSide"`
	Margin       float64 `yaml:"margin" json:"margin" validate:"gte=0"`
	DefaultScale float64 `yaml:"default_scale" json:"default_scale" validate:"gt=0"`
	MaxSide      float64 `yaml:"max_side" json:"max_side" validate:"gt=0"` // largest width or height a request may ask for
}

// Proximity sets the link and nearby-query limits.
type Proximity struct {
	ThresholdKm    float64 `yaml:"threshold_km" json:"threshold_km" validate:"gte=0"`
	NearbyRadiusKm float64 `yaml:"nearby_radius_km" json:"nearby_radius_km" validate:"gte=0"`
	NearbyLimit    int     `yaml:"nearby_limit" json:"nearby_limit" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Title:   "City Map",
		Dataset: "cities.json",
		Major:   []string{"Colombo", "Moratuwa", "Kotte", "Battaramulla", "Malabe", "Kaduwela"},
		Viewport: Viewport{
			Width:        1200,
			Height:       800,
			Margin:       geo.DefaultMargin,
			DefaultScale: 1000,
			MaxSide:      DefaultMaxSide,
		},
		Proximity: Proximity{
			ThresholdKm:    proximity.DefaultThresholdKm,
			NearbyRadiusKm: proximity.DefaultNearbyRadiusKm,
			NearbyLimit:    proximity.DefaultNearbyLimit,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks struct constraints and that the viewport leaves room inside its margin.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return c.GeoViewport().Validate()
}

// GeoViewport converts the viewport section for projection.
func (c *Config) GeoViewport() geo.Viewport {
	return geo.Viewport{
		Width:  c.Viewport.Width,
		Height: c.Viewport.Height,
		Margin: c.Viewport.Margin,
	}
}

// LayoutSettings returns the layout settings for vp.
func (c *Config) LayoutSettings(vp geo.Viewport) layout.Settings {
	return layout.Settings{
		Viewport:       vp,
		DefaultScale:   c.Viewport.DefaultScale,
		ThresholdKm:    c.Proximity.ThresholdKm,
		NearbyRadiusKm: c.Proximity.NearbyRadiusKm,
		NearbyLimit:    c.Proximity.NearbyLimit,
		Major:          c.Major,
	}
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	switch e.Tag() {
	case "gt":
		return fmt.Errorf("%s: must be greater than %s", e.Namespace(), e.Param())
	case "gte":
		return fmt.Errorf("%s: must be at least %s", e.Namespace(), e.Param())
	case "ltefield":
		return fmt.Errorf("%s: must not exceed %s", e.Namespace(), e.Param())
	case "url":
		return fmt.Errorf("%s: must be a valid URL", e.Namespace())
	case "required":
		return fmt.Errorf("%s: field is required", e.Namespace())
	default:
		return fmt.Errorf("%s: validation failed (%s)", e.Namespace(), e.Tag())
	}
}
