package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/woozymasta/citymap/internal/config"
	"github.com/woozymasta/citymap/internal/dataset"
	"github.com/woozymasta/citymap/internal/layout"
	"github.com/woozymasta/citymap/internal/logger"
	"github.com/woozymasta/citymap/internal/render"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"    env:"CONFIG_FILE" description:"Path to configuration file"`
	Input      string  `short:"i" long:"in"        description:"City dataset file or http(s) URL. Falls back to the config dataset"`
	Output     string  `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format     string  `short:"f" long:"format"    description:"Output format" choice:"png" choice:"webp" choice:"svg" default:"png"`
	Width      float64 `short:"W" long:"width"     description:"Map width in pixels"`
	Height     float64 `short:"H" long:"height"    description:"Map height in pixels"`
	Zoom       float64 `short:"z" long:"zoom"      description:"Zoom factor" default:"1"`
	Select     string  `short:"s" long:"select"    description:"Highlight the city with this ID"`
	Distances  bool    `short:"d" long:"distances" description:"Draw distance labels"`
	NoNames    bool    `long:"no-names"            description:"Hide city names"`
	Thumbnail  int     `short:"t" long:"thumbnail" description:"Scale raster output down to this width"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Width > 0 {
		cfg.Viewport.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Viewport.Height = opts.Height
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	src := dataset.Source{Inline: cfg.Cities, URL: cfg.DatasetURL, Path: cfg.Dataset}
	switch {
	case strings.HasPrefix(opts.Input, "http://"), strings.HasPrefix(opts.Input, "https://"):
		src = dataset.Source{URL: opts.Input}
	case opts.Input != "":
		src = dataset.Source{Path: opts.Input}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	points, err := dataset.LoadSource(ctx, &http.Client{Timeout: 15 * time.Second}, src)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	l, err := layout.Build(points, cfg.LayoutSettings(cfg.GeoViewport()))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to lay out cities")
	}

	view := layout.DefaultView()
	view.Zoom = opts.Zoom
	view.ShowDistances = opts.Distances
	view.ShowNames = !opts.NoNames
	view = view.Normalized()

	if opts.Select != "" {
		if _, err := l.Node(opts.Select); err != nil {
			log.Fatal().Err(err).Str("id", opts.Select).Msg("Cannot select city")
		}
		view = view.Select(opts.Select)
	}

	var out []byte
	if opts.Format == render.FormatSVG {
		out, err = render.SVG(l, view, render.SVGOptions{})
	} else {
		var buf bytes.Buffer
		img := render.Thumbnail(render.Raster(l, view), opts.Thumbnail)
		err = render.Encode(&buf, img, opts.Format)
		out = buf.Bytes()
	}
	if err != nil {
		log.Fatal().Err(err).Str("format", opts.Format).Msg("Failed to render map")
	}

	if opts.Output == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output")
		}
		return
	}

	if err := os.WriteFile(opts.Output, out, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
	}

	log.Info().
		Str("path", opts.Output).
		Str("format", opts.Format).
		Int("cities", len(l.Nodes)).
		Int("links", len(l.Links)).
		Bool("fallback_scale", l.Fallback).
		Msg("Map rendered successfully")
}
