package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/citymap/internal/dataset"
	"github.com/woozymasta/citymap/internal/proximity"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input     string  `short:"i" long:"in"        description:"Input dataset (.json, .js, .geojson, .yaml)" required:"true"`
	Output    string  `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format    string  `short:"f" long:"format"    description:"Output format: json is a GeoJSON FeatureCollection, yaml a city list" choice:"json" choice:"yaml" default:"json"`
	Threshold float64 `short:"t" long:"threshold" description:"Link threshold in km for GeoJSON edges" default:"10"`
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

	points, err := dataset.Load(opts.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	var outputData []byte
	count := len(points)

	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(dataset.ToRecords(points))
	} else {
		edges, edgeErr := proximity.BuildEdges(points, opts.Threshold)
		if edgeErr != nil {
			fmt.Fprintf(os.Stderr, "Error building links: %v\n", edgeErr)
			os.Exit(1)
		}
		count += len(edges)
		outputData, err = json.MarshalIndent(dataset.ToGeoJSON(points, edges), "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d features to %s (format: %s)\n", count, opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}
