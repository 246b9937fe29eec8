// Command geosuggest-query loads a built index and answers one suggest,
// reverse, or capital lookup, per spec §6's logical query API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/geosuggest-go/geosuggest"
)

func main() {
	index := flag.String("index", "geosuggest.bin", "path to built index")
	suggest := flag.String("suggest", "", "pattern to suggest against")
	limit := flag.Int("limit", 10, "result limit")
	countries := flag.String("countries", "", "comma-separated ISO-2 country filter")
	reverseLatLng := flag.String("reverse", "", "\"lat,lng\" to reverse geocode")
	capital := flag.String("capital", "", "ISO-2 country code to resolve a capital for")
	flag.Parse()

	engine, _, err := geosuggest.LoadFrom(*index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading index: %v\n", err)
		os.Exit(1)
	}

	var countryFilter []string
	if *countries != "" {
		countryFilter = strings.Split(*countries, ",")
	}

	switch {
	case *suggest != "":
		for _, c := range engine.Suggest(*suggest, *limit, nil, countryFilter) {
			fmt.Printf("%d\t%s\t%d\n", c.ID, c.Name, c.Population)
		}
	case *reverseLatLng != "":
		lat, lng, err := parseLatLng(*reverseLatLng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, r := range engine.Reverse(lat, lng, *limit, nil, countryFilter) {
			fmt.Printf("%d\t%s\t%.4f\n", r.City.ID, r.City.Name, r.Distance)
		}
	case *capital != "":
		city, ok := engine.Capital(*capital)
		if !ok {
			fmt.Println("no capital on record")
			return
		}
		fmt.Printf("%d\t%s\n", city.ID, city.Name)
	default:
		fmt.Fprintln(os.Stderr, "Error: one of -suggest, -reverse, -capital is required")
		os.Exit(1)
	}
}

func parseLatLng(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	return lat, lng, nil
}
