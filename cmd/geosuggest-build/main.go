// Command geosuggest-build assembles a GeoNames index from local source
// files and writes it to a single output file, per spec §6's file-bundle
// CLI contract. Styled on andreiashu-geobed/cmd/update-cache/main.go.
//
// Usage:
//
//	geosuggest-build -cities cities1000.txt -countries countryInfo.txt \
//	    -admin1 admin1CodesASCII.txt -admin2 admin2Codes.txt \
//	    -names alternateNamesV2.txt -languages en,ru -out index.bin
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/geosuggest-go/geosuggest"
)

func main() {
	cities := flag.String("cities", "", "path to cities file (required)")
	names := flag.String("names", "", "path to alternate names file")
	countries := flag.String("countries", "", "path to country info file")
	admin1 := flag.String("admin1", "", "path to admin1 codes file")
	admin2 := flag.String("admin2", "", "path to admin2 codes file")
	languages := flag.String("languages", "", "comma-separated language filter")
	out := flag.String("out", "geosuggest.bin", "output index path")
	flag.Parse()

	if *cities == "" {
		fmt.Fprintln(os.Stderr, "Error: -cities is required")
		os.Exit(1)
	}

	fmt.Println("=== GeoSuggest Index Build ===")
	fmt.Println()

	fmt.Println("[1/3] Reading source files...")
	opts := geosuggest.SourceFileContentOptions{Cities: mustRead(*cities)}
	if *names != "" {
		c := mustRead(*names)
		opts.Names = &c
	}
	if *countries != "" {
		c := mustRead(*countries)
		opts.Countries = &c
	}
	if *admin1 != "" {
		c := mustRead(*admin1)
		opts.Admin1Codes = &c
	}
	if *admin2 != "" {
		c := mustRead(*admin2)
		opts.Admin2Codes = &c
	}
	if *languages != "" {
		opts.FilterLanguages = strings.Split(*languages, ",")
	}

	fmt.Println("[2/3] Building index...")
	data, err := geosuggest.NewIndexFromFileContents(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building index: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("      %d cities, %d entries, %d countries\n", len(data.Geonames), len(data.Entries), len(data.CountryInfoByCode))

	fmt.Println("[3/3] Writing index...")
	metadata := geosuggest.EngineMetadata{
		LibraryVersion:  geosuggest.Version,
		CreatedAtUnix:   time.Now().Unix(),
		FilterLanguages: opts.FilterLanguages,
	}
	if err := geosuggest.DumpTo(*out, metadata, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing index: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Success ===")
	fmt.Printf("Index written to %s\n", *out)
}

func mustRead(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	return string(b)
}
