package geosuggest

import (
	"net"

	"github.com/geosuggest-go/geosuggest/geoip"
)

// LoadGeoIP loads a MaxMind-style database and makes it the engine's active
// IP-lookup source, per spec §9's atomic-ownership re-architecture.
// Concurrent calls to LoadGeoIP on the same Engine must be serialised by
// the caller (spec §5); concurrent GeoIPLookup calls are always safe.
func (e *Engine) LoadGeoIP(path string) error {
	g, err := geoip.Load(path)
	if err != nil {
		return newBuildError("load geoip database", err)
	}
	e.geoIP.Store(g)
	return nil
}

// GeoIPLookup resolves an IP address via the currently loaded database. It
// reports false when no database has been loaded or the lookup fails.
func (e *Engine) GeoIPLookup(ip net.IP) (geoip.Record, bool) {
	return e.geoIP.Lookup(ip)
}
