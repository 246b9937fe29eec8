package geosuggest

import (
	"math"
	"sort"
	"strings"

	"github.com/geosuggest-go/geosuggest/geoip"
	"github.com/xrash/smetrics"
	"golang.org/x/sync/errgroup"
)

// scoreEpsilon is the float-equality tolerance for suggest's score
// comparison (spec §4.3 step 7): IEEE-754 smallest normal for f32.
const scoreEpsilon = 1.1754943508222875e-38

const defaultMinScore = 0.8

// jaroWinklerBoostThreshold and jaroWinklerPrefixSize are smetrics.JaroWinkler
// tuning constants; 0.7/4 are the library's own documented defaults.
const (
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// Engine is a read-only handle over an IndexData plus its reverse-geocoding
// k-d tree, per spec §4.3.
type Engine struct {
	data  *IndexData
	geo   *geoIndex
	geoIP geoip.Holder
}

// NewEngine wraps a built IndexData in a query engine, constructing the k-d
// tree once.
func NewEngine(data *IndexData) *Engine {
	return &Engine{data: data, geo: newGeoIndex(data.Geonames)}
}

// Get looks up a city by its GeoNames id.
func (e *Engine) Get(id uint32) (City, bool) {
	city, ok := e.data.Geonames[id]
	return city, ok
}

// Capital resolves the capital city recorded for an ISO-2 country code.
// The code is case-normalised before lookup (spec §3, §4.3).
func (e *Engine) Capital(code string) (City, bool) {
	id, ok := e.data.Capitals[strings.ToUpper(code)]
	if !ok {
		return City{}, false
	}
	return e.Get(id)
}

// CountryInfo resolves an ISO-2 country code to its record.
func (e *Engine) CountryInfo(code string) (CountryRecord, bool) {
	rec, ok := e.data.CountryInfoByCode[strings.ToUpper(code)]
	return rec, ok
}

// Suggest implements spec §4.3's fuzzy text search over lowercased name
// entries, scored in parallel by Jaro-Winkler similarity with a prefix
// bonus.
func (e *Engine) Suggest(pattern string, limit int, minScore *float64, countries []string) []City {
	if limit <= 0 {
		return nil
	}
	normalized := strings.ToLower(pattern)
	if normalized == "" {
		return nil
	}
	threshold := defaultMinScore
	if minScore != nil {
		threshold = *minScore
	}

	var countrySet map[uint32]bool
	if len(countries) > 0 {
		countrySet = make(map[uint32]bool, len(countries))
		for _, code := range countries {
			if rec, ok := e.data.CountryInfoByCode[strings.ToUpper(code)]; ok {
				countrySet[rec.Info.GeonameID] = true
			}
		}
	}

	type scoredEntry struct {
		cityID uint32
		score  float64
	}

	chunks := chunkEntries(e.data.Entries, parallelism())
	results := make([][]scoredEntry, len(chunks))
	var g errgroup.Group
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			local := make([]scoredEntry, 0, len(chunk))
			for _, entry := range chunk {
				if countrySet != nil {
					if !entry.HasCountry || !countrySet[entry.CountryID] {
						continue
					}
				}
				var score float64
				if strings.HasPrefix(entry.Value, normalized) {
					score = 1.0
				} else {
					score = smetrics.JaroWinkler(entry.Value, normalized, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
				}
				if score+scoreEpsilon < threshold {
					continue
				}
				local = append(local, scoredEntry{cityID: entry.ID, score: score})
			}
			results[i] = local
			return nil
		})
	}
	_ = g.Wait() // scoring goroutines never return an error

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]scoredEntry, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !floatNearlyEqual(all[i].score, all[j].score) {
			return all[i].score > all[j].score
		}
		return e.data.Geonames[all[i].cityID].Population > e.data.Geonames[all[j].cityID].Population
	})

	seen := make(map[uint32]bool, len(all))
	out := make([]City, 0, limit)
	for _, s := range all {
		if seen[s.cityID] {
			continue
		}
		seen[s.cityID] = true
		out = append(out, e.data.Geonames[s.cityID])
		if len(out) >= limit {
			break
		}
	}
	return out
}

// ReverseItem is one result of Reverse: a city, its squared-Euclidean
// distance from the query point, and the score it was ranked by.
type ReverseItem struct {
	City     City
	Distance float64
	Score    float64
}

// Reverse implements spec §4.3's nearest-neighbour reverse geocoding, with
// optional country filtering (via k-d tree over-fetch) and optional
// population-weighted re-ranking.
func (e *Engine) Reverse(lat, lng float64, limit int, k *float64, countries []string) []ReverseItem {
	if limit <= 0 {
		return nil
	}

	var countrySet map[string]bool
	if len(countries) > 0 {
		countrySet = make(map[string]bool, len(countries))
		for _, c := range countries {
			countrySet[strings.ToUpper(c)] = true
		}
	}

	nearestLimit := limit
	if countrySet != nil {
		nearestLimit = len(e.data.Geonames)
	}

	hits := e.geo.nearest(lat, lng, nearestLimit)

	filtered := make([]kdHit, 0, len(hits))
	for _, h := range hits {
		city, ok := e.data.Geonames[h.id]
		if !ok {
			continue
		}
		if countrySet != nil {
			if city.Country == nil || !countrySet[strings.ToUpper(city.Country.Code)] {
				continue
			}
		}
		filtered = append(filtered, h)
		if countrySet == nil && len(filtered) >= limit {
			break
		}
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	items := make([]ReverseItem, 0, len(filtered))
	for _, h := range filtered {
		city := e.data.Geonames[h.id]
		score := h.dist
		if k != nil {
			score = h.dist - (*k)*float64(city.Population)
		}
		items = append(items, ReverseItem{City: city, Distance: h.dist, Score: score})
	}

	if k != nil {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Score < items[j].Score })
	}

	return items
}

// chunkEntries splits entries into up to n contiguous, roughly-equal slices
// for parallel scoring (spec §4.3 step 5 / §5).
func chunkEntries(entries []Entry, n int) [][]Entry {
	if n <= 1 || len(entries) == 0 {
		return [][]Entry{entries}
	}
	size := (len(entries) + n - 1) / n
	chunks := make([][]Entry, 0, n)
	for i := 0; i < len(entries); i += size {
		end := i + size
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[i:end])
	}
	return chunks
}

// floatNearlyEqual compares two scores within scoreEpsilon, per spec §4.3
// step 7's epsilon-tolerant equality requirement.
func floatNearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= scoreEpsilon
}
