package geosuggest

import (
	"strconv"
	"strings"
)

// decodeAdminCodeLine parses one admin1CodesASCII.txt / admin2Codes.txt
// row: code, name, ascii name, geonameid (spec §4.1). The composite code
// (e.g. "RU.86") is used verbatim as the map key by the caller; it is not
// reparsed here since admin1 and admin2 keys are joined differently
// (admin2 embeds the admin1 code as its own prefix).
func decodeAdminCodeLine(line string) (code, name string, geonameID uint32, ok bool) {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 {
		return "", "", 0, false
	}
	id, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return "", "", 0, false
	}
	return fields[0], fields[1], uint32(id), true
}

// decodeAdminCodes decodes an admin1/admin2 codes file into a map keyed by
// the raw composite code string ("CC.A1" or "CC.A1.A2").
func decodeAdminCodes(content string, interner *stringInterner) map[string]AdminDivision {
	out := make(map[string]AdminDivision)
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		code, name, id, ok := decodeAdminCodeLine(line)
		if !ok {
			continue
		}
		if interner != nil {
			code = interner.intern(code)
		}
		out[code] = AdminDivision{ID: id, Code: code, Name: name}
	}
	return out
}
