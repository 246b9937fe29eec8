package geosuggest

import (
	"sort"
	"strings"
)

// excludedFeatureCodes is the feature-code exclusion set from spec §4.2
// step 2 / §8 ("Feature-code exclusion").
var excludedFeatureCodes = map[string]bool{
	"PPLA3": true, "PPLA4": true, "PPLA5": true, "PPLF": true,
	"PPLL": true, "PPLQ": true, "PPLW": true, "PPLX": true, "STLMT": true,
}

// SourceFileContentOptions is the builder's input: raw file contents (not
// paths), per spec §4.2. Only Cities is mandatory.
type SourceFileContentOptions struct {
	Cities          string
	Names           *string
	Countries       *string
	Admin1Codes     *string
	Admin2Codes     *string
	FilterLanguages []string
}

// nameRecord tracks the chosen alternate-name record for one (geonameid,
// lang) pair during resolution, so the "preferred names are sticky" rule
// (spec §4.2 step 4) can be applied before projecting to a plain string.
type nameRecord struct {
	value     string
	preferred bool
}

// NewIndexFromFileContents runs the full builder algorithm (spec §4.2) and
// returns a complete IndexData, or a *BuildError.
func NewIndexFromFileContents(opts SourceFileContentOptions) (*IndexData, error) {
	records, err := parseCitiesParallel(opts.Cities)
	if err != nil {
		return nil, newBuildError("parse cities", err)
	}

	var countryByCode map[string]CountryInfo
	if opts.Countries != nil {
		countryByCode = decodeCountryInfo(*opts.Countries)
	}

	interner := newStringInterner()

	var admin1ByCode map[string]AdminDivision
	if opts.Admin1Codes != nil {
		admin1ByCode = decodeAdminCodes(*opts.Admin1Codes, interner)
	}
	var admin2ByCode map[string]AdminDivision
	if opts.Admin2Codes != nil {
		admin2ByCode = decodeAdminCodes(*opts.Admin2Codes, interner)
	}

	var namesByID map[uint32]map[string]string
	if opts.Names != nil {
		namesByID = resolveNames(*opts.Names, records, countryByCode, admin1ByCode, admin2ByCode, opts.FilterLanguages)
	}

	capitals := make(map[string]uint32)
	entries := make([]Entry, 0, len(records))
	geonames := make([]City, 0, len(records))

	for _, rec := range records {
		if excludedFeatureCodes[rec.featureCode] {
			continue
		}
		isCapital := rec.featureCode == "PPLC"

		var countryID uint32
		var hasCountryID bool
		var country *Country
		var countryInfo CountryInfo
		var hasCountryInfo bool
		if countryByCode != nil {
			if ci, ok := countryByCode[rec.countryCode]; ok {
				countryInfo = ci
				hasCountryInfo = true
				countryID = ci.GeonameID
				hasCountryID = true
				country = &Country{ID: ci.GeonameID, Code: ci.ISO, Name: ci.Name}
			}
		}

		entries = append(entries, Entry{ID: rec.geonameID, Value: strings.ToLower(rec.name), CountryID: countryID, HasCountry: hasCountryID})
		if rec.name != rec.asciiName {
			entries = append(entries, Entry{ID: rec.geonameID, Value: strings.ToLower(rec.asciiName), CountryID: countryID, HasCountry: hasCountryID})
		}
		for _, alt := range strings.Split(rec.alternateNames, ",") {
			if alt == "" {
				// Open Question (spec §4.2 edge cases, §9): this build
				// skips empty tokens produced by an empty alternatenames
				// field. See DESIGN.md.
				continue
			}
			entries = append(entries, Entry{ID: rec.geonameID, Value: strings.ToLower(alt), CountryID: countryID, HasCountry: hasCountryID})
		}

		if isCapital && hasCountryInfo {
			capitals[strings.ToUpper(rec.countryCode)] = rec.geonameID
		}

		var countryNames map[string]string
		if hasCountryInfo && namesByID != nil {
			countryNames = namesByID[countryInfo.GeonameID]
		}

		var admin1Div *AdminDivision
		var admin1Names map[string]string
		if admin1ByCode != nil {
			if a, ok := admin1ByCode[rec.countryCode+"."+rec.admin1Code]; ok {
				admin1Div = &a
				if namesByID != nil {
					admin1Names = namesByID[a.ID]
				}
			}
		}

		var admin2Div *AdminDivision
		var admin2Names map[string]string
		if admin2ByCode != nil {
			if a, ok := admin2ByCode[rec.countryCode+"."+rec.admin1Code+"."+rec.admin2Code]; ok {
				admin2Div = &a
				if namesByID != nil {
					admin2Names = namesByID[a.ID]
				}
			}
		}

		var cityNames map[string]string
		if namesByID != nil {
			if isCapital {
				cityNames = namesByID[rec.geonameID]
			} else {
				// Non-capital cities have their names map moved out of the
				// per-id table to shrink memory (spec §4.2 step 7, §5).
				cityNames = namesByID[rec.geonameID]
				delete(namesByID, rec.geonameID)
			}
		}

		geonames = append(geonames, City{
			ID:           rec.geonameID,
			Name:         rec.name,
			Latitude:     rec.latitude,
			Longitude:    rec.longitude,
			Timezone:     rec.timezone,
			Population:   rec.population,
			Country:      country,
			Admin1:       admin1Div,
			Admin2:       admin2Div,
			Names:        cityNames,
			CountryNames: countryNames,
			Admin1Names:  admin1Names,
			Admin2Names:  admin2Names,
		})
	}

	sort.Slice(geonames, func(i, j int) bool { return geonames[i].ID < geonames[j].ID })
	geonames = dedupByID(geonames)

	geonameMap := make(map[uint32]City, len(geonames))
	for _, c := range geonames {
		geonameMap[c.ID] = c
	}

	countryInfoByCode := make(map[string]CountryRecord)
	if countryByCode != nil {
		for iso, info := range countryByCode {
			rec := CountryRecord{Info: info}
			if namesByID != nil {
				rec.Names = namesByID[info.GeonameID]
				if cityID, ok := capitals[strings.ToUpper(iso)]; ok {
					rec.CapitalNames = namesByID[cityID]
				}
			}
			countryInfoByCode[strings.ToUpper(iso)] = rec
		}
	}

	return &IndexData{
		Entries:           entries,
		Geonames:          geonameMap,
		Capitals:          capitals,
		CountryInfoByCode: countryInfoByCode,
	}, nil
}

// dedupByID removes consecutive duplicate-id entries from an ID-sorted
// slice, keeping the first occurrence — mirrors Vec::dedup_by_key in
// original_source/geosuggest-core/src/index.rs.
func dedupByID(sorted []City) []City {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, c := range sorted[1:] {
		if c.ID == out[len(out)-1].ID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// resolveNames implements spec §4.2 step 4: builds the union of relevant
// geoname ids, scans the alternate-names file once, and projects the
// chosen record per (id, lang) to a plain string.
func resolveNames(
	content string,
	cityRecords []cityRow,
	countryByCode map[string]CountryInfo,
	admin1ByCode map[string]AdminDivision,
	admin2ByCode map[string]AdminDivision,
	filterLanguages []string,
) map[uint32]map[string]string {
	cityIDs := make(map[uint32]bool, len(cityRecords))
	for _, r := range cityRecords {
		cityIDs[r.geonameID] = true
	}

	union := make(map[uint32]bool, len(cityRecords))
	for id := range cityIDs {
		union[id] = true
	}
	if countryByCode != nil {
		for _, c := range countryByCode {
			union[c.GeonameID] = true
		}
	}
	if admin1ByCode != nil {
		for _, a := range admin1ByCode {
			union[a.ID] = true
		}
	}
	if admin2ByCode != nil {
		for _, a := range admin2ByCode {
			union[a.ID] = true
		}
	}

	langFilter := make(map[string]bool, len(filterLanguages))
	for _, l := range filterLanguages {
		langFilter[l] = true
	}

	byID := make(map[uint32]map[string]nameRecord)
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		row, ok := decodeAlternateNameLine(line)
		if !ok {
			continue
		}
		if !union[row.geonameID] {
			continue
		}
		isCityName := cityIDs[row.geonameID]
		if isCityName && row.isShortName && !row.isPreferredName {
			continue
		}
		if row.isColloquial || row.isHistoric {
			continue
		}
		if !langFilter[row.isoLanguage] {
			continue
		}

		byLang, ok := byID[row.geonameID]
		if !ok {
			byLang = make(map[string]nameRecord)
			byID[row.geonameID] = byLang
		}
		if existing, ok := byLang[row.isoLanguage]; ok && existing.preferred {
			// preferred names are sticky
			continue
		}
		byLang[row.isoLanguage] = nameRecord{value: row.alternateName, preferred: row.isPreferredName}
	}

	result := make(map[uint32]map[string]string, len(byID))
	for id, byLang := range byID {
		names := make(map[string]string, len(byLang))
		for lang, rec := range byLang {
			names[lang] = rec.value
		}
		result[id] = names
	}
	return result
}
