package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/citymap/internal/geo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, 10.0, cfg.Proximity.ThresholdKm)
		assert.Equal(t, 15.0, cfg.Proximity.NearbyRadiusKm)
		assert.Equal(t, 8, cfg.Proximity.NearbyLimit)
		assert.Equal(t, 75.0, cfg.Viewport.Margin)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
title: Lanka
proximity:
  threshold_km: 5
cities:
  - place: Colombo
    latitude: 6.9271
    longitude: 79.8612
`))
		require.NoError(t, err)
		assert.Equal(t, "Lanka", cfg.Title)
		assert.Equal(t, 5.0, cfg.Proximity.ThresholdKm)
		assert.Equal(t, 15.0, cfg.Proximity.NearbyRadiusKm)
		assert.Equal(t, 1200.0, cfg.Viewport.Width)
		require.Len(t, cfg.Cities, 1)
		assert.Equal(t, "Colombo", cfg.Cities[0].Place)
	})

	t.Run("negative threshold is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "proximity:\n  threshold_km: -1\n"))
		assert.ErrorContains(t, err, "ThresholdKm")
	})

	t.Run("margin wider than viewport is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "viewport:\n  width: 100\n  height: 100\n  margin: 60\n  default_scale: 1\n"))
		assert.ErrorIs(t, err, geo.ErrInvalidArgument)
	})

	t.Run("bad dataset url", func(t *testing.T) {
		_, err := Load(writeConfig(t, "dataset_url: not a url\n"))
		assert.ErrorContains(t, err, "DatasetURL")
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "viewport: [\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestLayoutSettings(t *testing.T) {
	cfg := Default()
	vp := geo.Viewport{Width: 640, Height: 480, Margin: 20}

	s := cfg.LayoutSettings(vp)
	assert.Equal(t, vp, s.Viewport)
	assert.Equal(t, cfg.Viewport.DefaultScale, s.DefaultScale)
	assert.Equal(t, 10.0, s.ThresholdKm)
	assert.Equal(t, 15.0, s.NearbyRadiusKm)
	assert.Equal(t, 8, s.NearbyLimit)
	assert.Equal(t, cfg.Major, s.Major)
}

func TestViewportMaxSide(t *testing.T) {
	t.Run("default cap", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, float64(DefaultMaxSide), cfg.Viewport.MaxSide)
		require.NoError(t, cfg.Validate())
	})

	t.Run("width above the cap is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "viewport:\n  width: 5000\n"))
		assert.ErrorContains(t, err, "Width")
		assert.ErrorContains(t, err, "must not exceed MaxSide")
	})

	t.Run("raised cap allows larger maps", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "viewport:\n  width: 6000\n  height: 6000\n  max_side: 8192\n"))
		require.NoError(t, err)
		assert.Equal(t, 8192.0, cfg.Viewport.MaxSide)
	})

	t.Run("cap must be positive", func(t *testing.T) {
		_, err := Load(writeConfig(t, "viewport:\n  max_side: 0\n"))
		assert.Error(t, err)
	})
}
