package geosuggest

import (
	"strconv"
	"strings"
)

// cityRow is the subset of the 19 GeoNames cities1000.txt columns this
// package retains, per spec §4.1.
type cityRow struct {
	geonameID      uint32
	name           string
	asciiName      string
	alternateNames string
	latitude       float32
	longitude      float32
	featureCode    string
	countryCode    string
	admin1Code     string
	admin2Code     string
	population     uint32
	timezone       string
}

// decodeCitiesLine parses one tab-separated GeoNames cities row. A
// malformed row is reported via ok=false and silently skipped by the
// caller, matching the MalformedRow recovery policy in spec §4.1/§7.
func decodeCitiesLine(line string) (cityRow, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 19 {
		return cityRow{}, false
	}

	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return cityRow{}, false
	}
	lat, err := strconv.ParseFloat(fields[4], 32)
	if err != nil {
		return cityRow{}, false
	}
	lng, err := strconv.ParseFloat(fields[5], 32)
	if err != nil {
		return cityRow{}, false
	}
	pop, err := strconv.ParseUint(fields[14], 10, 32)
	if err != nil {
		return cityRow{}, false
	}

	return cityRow{
		geonameID:      uint32(id),
		name:           fields[1],
		asciiName:      fields[2],
		alternateNames: fields[3],
		latitude:       float32(lat),
		longitude:      float32(lng),
		featureCode:    fields[7],
		countryCode:    fields[8],
		admin1Code:     fields[10],
		admin2Code:     fields[11],
		population:     uint32(pop),
		timezone:       fields[17],
	}, true
}

// decodeCitiesChunk parses every line of a chunk, skipping malformed rows.
func decodeCitiesChunk(chunk string) []cityRow {
	lines := strings.Split(chunk, "\n")
	rows := make([]cityRow, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		row, ok := decodeCitiesLine(line)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
