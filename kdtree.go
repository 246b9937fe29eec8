package geosuggest

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// geoPoint is a 2-D (lat, lng) point keyed by geoname id: the
// kdtree.Comparable implementation backing reverse geocoding. Distance is
// squared Euclidean over (lat, lng), matching the kdtree crate's distance
// contract in original_source/geosuggest-core/src/lib.rs (squared_euclidean).
type geoPoint struct {
	id  uint32
	lat float64
	lng float64
}

func (p geoPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	o := c.(geoPoint)
	if d == 0 {
		return p.lat - o.lat
	}
	return p.lng - o.lng
}

func (p geoPoint) Dims() int { return 2 }

func (p geoPoint) Distance(c kdtree.Comparable) float64 {
	o := c.(geoPoint)
	dLat := p.lat - o.lat
	dLng := p.lng - o.lng
	return dLat*dLat + dLng*dLng
}

// geoPoints implements kdtree.Interface over a flat slice of geoPoint.
// Pivot partitions by a full sort rather than gonum's internal
// median-of-medians selection: tree construction is a one-time build-time
// cost here, so the simpler O(n log n) partition is an acceptable trade for
// not depending on kdtree's unexported partitioning helpers.
type geoPoints []geoPoint

func (p geoPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p geoPoints) Len() int                      { return len(p) }

func (p geoPoints) Pivot(d kdtree.Dim) int {
	sort.Slice(p, func(i, j int) bool {
		if d == 0 {
			return p[i].lat < p[j].lat
		}
		return p[i].lng < p[j].lng
	})
	return len(p) / 2
}

func (p geoPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// kdHit is one result of a nearest-neighbour query: a geoname id and its
// squared-Euclidean distance from the query point.
type kdHit struct {
	id   uint32
	dist float64
}

// geoIndex is the immutable 2-D k-d tree over every city's coordinates,
// built once during index assembly and reused across Reverse calls.
type geoIndex struct {
	tree *kdtree.Tree
}

// newGeoIndex builds a k-d tree over the given cities' coordinates. Points
// are sorted ascending by geoname id before insertion so that the backing
// slice's insertion order is deterministic across calls (map iteration
// order is not), making nearest's tie-break reproducible per run.
func newGeoIndex(cities map[uint32]City) *geoIndex {
	points := make(geoPoints, 0, len(cities))
	for _, c := range cities {
		points = append(points, geoPoint{id: c.ID, lat: float64(c.Latitude), lng: float64(c.Longitude)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].id < points[j].id })
	return &geoIndex{tree: kdtree.New(points, false)}
}

// nearest returns up to limit hits closest to (lat, lng), ascending by
// distance. Ties among equal distances keep the order of the keeper's heap
// array, which depends on the tree traversal; it is reproducible for a
// given city set but is not geoname-id order (see DESIGN.md).
func (g *geoIndex) nearest(lat, lng float64, limit int) []kdHit {
	if limit <= 0 {
		return nil
	}
	keeper := kdtree.NewNKeeper(limit)
	g.tree.NearestSet(keeper, geoPoint{lat: lat, lng: lng})

	hits := make([]kdHit, 0, len(keeper.Heap))
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil {
			continue
		}
		pt := cd.Comparable.(geoPoint)
		hits = append(hits, kdHit{id: pt.id, dist: cd.Dist})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	return hits
}
