package geosuggest

import "testing"

func TestGeoIndexNearestOrdering(t *testing.T) {
	cities := map[uint32]City{
		1: {ID: 1, Name: "A", Latitude: 0, Longitude: 0},
		2: {ID: 2, Name: "B", Latitude: 1, Longitude: 0},
		3: {ID: 3, Name: "C", Latitude: 5, Longitude: 5},
		4: {ID: 4, Name: "D", Latitude: -2, Longitude: -2},
	}
	idx := newGeoIndex(cities)

	hits := idx.nearest(0, 0, 3)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].id != 1 {
		t.Fatalf("expected city 1 (exact match) first, got %d", hits[0].id)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i-1].dist > hits[i].dist {
			t.Fatalf("hits not ascending by distance: %+v", hits)
		}
	}
}

func TestGeoIndexNearestZeroLimit(t *testing.T) {
	idx := newGeoIndex(map[uint32]City{1: {ID: 1, Latitude: 0, Longitude: 0}})
	if hits := idx.nearest(0, 0, 0); hits != nil {
		t.Fatalf("expected nil hits for limit 0, got %+v", hits)
	}
}

func TestGeoIndexNearestMoreThanAvailable(t *testing.T) {
	idx := newGeoIndex(map[uint32]City{1: {ID: 1, Latitude: 0, Longitude: 0}, 2: {ID: 2, Latitude: 1, Longitude: 1}})
	hits := idx.nearest(0, 0, 10)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits (capped to available points), got %d", len(hits))
	}
}
