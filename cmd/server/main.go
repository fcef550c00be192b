package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/citymap/internal/config"
	"github.com/woozymasta/citymap/internal/dataset"
	"github.com/woozymasta/citymap/internal/logger"
	"github.com/woozymasta/citymap/internal/metrics"
	"github.com/woozymasta/citymap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"      env:"CONFIG_FILE"    description:"Path to configuration file"`
	Dataset    string  `short:"d" long:"dataset"     env:"DATASET"        description:"City dataset file (.json, .js, .geojson, .yaml)"`
	DatasetURL string  `short:"u" long:"dataset-url" env:"DATASET_URL"    description:"Remote JSON city list, wins over --dataset"`
	Addr       string  `short:"a" long:"addr"        env:"LISTEN_ADDRESS" description:"Address to listen on" default:"0.0.0.0"`
	Port       int     `short:"p" long:"port"        env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
	Width      float64 `short:"W" long:"width"       env:"MAP_WIDTH"      description:"Default map width in pixels"`
	Height     float64 `short:"H" long:"height"      env:"MAP_HEIGHT"     description:"Default map height in pixels"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Dataset != "" {
		cfg.Dataset = opts.Dataset
	}
	if opts.DatasetURL != "" {
		cfg.DatasetURL = opts.DatasetURL
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

	client := &http.Client{Timeout: 15 * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	points, err := dataset.LoadSource(ctx, client, dataset.Source{
		Inline: cfg.Cities,
		URL:    cfg.DatasetURL,
		Path:   cfg.Dataset,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	reg := metrics.NewRegistry()
	srvCtx, err := server.NewServerContext(cfg, points, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	handler := server.RequestLogger(reg, srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("cities_loaded", len(points)).
		Float64("threshold_km", cfg.Proximity.ThresholdKm).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
