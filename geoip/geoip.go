// Package geoip wraps a MaxMind-style binary database for optional IP-to-city
// lookup, re-architected per spec §9 away from the original's process-global
// leaked buffer: the owning bytes and the reader that borrows from them
// travel together as one value, and the active value is swapped atomically.
// There is no manual leak or free.
package geoip

import (
	"net"
	"os"
	"sync/atomic"

	"github.com/oschwald/maxminddb-golang"
)

// Record is the subset of MaxMind City-database fields this lookup surfaces.
type Record struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Country struct {
		ISOCode string            `maxminddb:"iso_code"`
		Names   map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
}

// GeoIP owns the backing bytes of one loaded database and a reader over them.
type GeoIP struct {
	bytes  []byte
	reader *maxminddb.Reader
}

// Load reads an entire MaxMind database file into memory and opens a reader
// over the owned bytes (so the reader's lifetime never outlives its bytes).
func Load(path string) (*GeoIP, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reader, err := maxminddb.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return &GeoIP{bytes: b, reader: reader}, nil
}

// Lookup resolves an IP to a Record.
func (g *GeoIP) Lookup(ip net.IP) (Record, bool) {
	if g == nil || g.reader == nil {
		return Record{}, false
	}
	var rec Record
	if err := g.reader.Lookup(ip, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Holder is an engine-owned, hot-swappable GeoIP slot. Its zero value has no
// database loaded. Reads (Lookup) are safe for concurrent use; concurrent
// Store calls must be serialised by the caller (spec §5).
type Holder struct {
	current atomic.Pointer[GeoIP]
}

// Store atomically replaces the active database. The previous GeoIP and its
// backing bytes are reclaimed by the garbage collector once unreferenced.
func (h *Holder) Store(g *GeoIP) {
	h.current.Store(g)
}

// Lookup resolves an IP against the currently active database, if any.
func (h *Holder) Lookup(ip net.IP) (Record, bool) {
	g := h.current.Load()
	if g == nil {
		return Record{}, false
	}
	return g.Lookup(ip)
}
