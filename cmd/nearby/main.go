package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - search:   Run one fetch-with-fallback search and print the sorted list
// - validate: Check that the fallback dataset normalizes cleanly

func main() {
	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	searchLat := searchCmd.Float64("lat", 0, "Origin latitude (required)")
	searchLng := searchCmd.Float64("lng", 0, "Origin longitude (required)")
	searchRadius := searchCmd.Int("radius", 0, "Search radius in meters (default from config)")
	searchQuery := searchCmd.String("q", "", "Only keep cafes whose name or area contains this text")
	searchOffline := searchCmd.Bool("offline", false, "Skip the live query and use the fallback dataset")

	validateBucket := validateCmd.String("bucket", "", "Bucket URL of the dataset (default from config, empty for the bundled copy)")
	validateKey := validateCmd.String("key", "", "Object key of the dataset (default from config)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "search":
		_ = searchCmd.Parse(os.Args[2:])
		err = runSearch(ctx, searchFlags{
			cmd:     searchCmd,
			lat:     *searchLat,
			lng:     *searchLng,
			radius:  *searchRadius,
			query:   *searchQuery,
			offline: *searchOffline,
		})
	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		err = runValidate(ctx, validateFlags{
			bucket: *validateBucket,
			key:    *validateKey,
		})
	case "-h", "--help", "help":
		printUsage()

		return
	default:
		err = errors.Errorf("unknown subcommand %q", os.Args[1])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: nearby <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search    Find cafes around a point")
	fmt.Println("  validate  Check the fallback dataset")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  nearby search -lat 22.97 -lng 78.66 -radius 2000")
	fmt.Println("  nearby search -lat 23.25 -lng 77.41 -q chai -offline")
	fmt.Println("  nearby validate -bucket file:///srv/data -key cafes.json")
}
