package geosuggest

import (
	"strconv"
	"strings"
)

// alternateNameRow is the subset of the 10 alternateNamesV2.txt columns
// this package retains, per spec §4.1.
type alternateNameRow struct {
	geonameID       uint32
	isoLanguage     string
	alternateName   string
	isPreferredName bool
	isShortName     bool
	isColloquial    bool
	isHistoric      bool
}

// decodeAlternateNameLine parses one tab-separated alternate-names row.
func decodeAlternateNameLine(line string) (alternateNameRow, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 10 {
		return alternateNameRow{}, false
	}

	id, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return alternateNameRow{}, false
	}

	return alternateNameRow{
		geonameID:       uint32(id),
		isoLanguage:     fields[2],
		alternateName:   fields[3],
		isPreferredName: fields[4] == "1",
		isShortName:     fields[5] == "1",
		isColloquial:    fields[6] == "1",
		isHistoric:      fields[7] == "1",
	}, true
}
