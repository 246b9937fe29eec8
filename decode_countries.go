package geosuggest

import (
	"strconv"
	"strings"
)

// skipCommentLines strips lines starting with '#', matching the teacher's
// loadGeonamesCountryInfo and spec §4.1 ("comment lines beginning with #
// are stripped from country info").
func skipCommentLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.HasPrefix(l, "#") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// decodeCountryInfoLine parses one tab-separated countryInfo.txt row (19
// fields, all retained per spec §4.1).
func decodeCountryInfoLine(line string) (CountryInfo, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 19 || fields[0] == "" || fields[0] == "0" {
		return CountryInfo{}, false
	}

	pop, err := strconv.ParseUint(fields[7], 10, 32)
	if err != nil {
		return CountryInfo{}, false
	}
	gid, err := strconv.ParseUint(fields[16], 10, 32)
	if err != nil {
		return CountryInfo{}, false
	}

	return CountryInfo{
		ISO:                fields[0],
		ISO3:               fields[1],
		ISONumeric:         fields[2],
		FIPS:               fields[3],
		Name:               fields[4],
		Capital:            fields[5],
		Area:               fields[6],
		Population:         uint32(pop),
		Continent:          fields[8],
		TLD:                fields[9],
		CurrencyCode:       fields[10],
		CurrencyName:       fields[11],
		Phone:              fields[12],
		PostalCodeFormat:   fields[13],
		PostalCodeRegex:    fields[14],
		Languages:          fields[15],
		GeonameID:          uint32(gid),
		Neighbours:         fields[17],
		EquivalentFipsCode: fields[18],
	}, true
}

// decodeCountryInfo decodes every non-comment row of a countryInfo.txt
// file into a map keyed by ISO-2 code.
func decodeCountryInfo(content string) map[string]CountryInfo {
	content = skipCommentLines(content)
	out := make(map[string]CountryInfo)
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		row, ok := decodeCountryInfoLine(line)
		if !ok {
			continue
		}
		out[row.ISO] = row
	}
	return out
}
