// pkg/navdb/database.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package navdb

import "github.com/tsailer/vfrnav-public-sub016/pkg/geo"

// AirwaySegment is one leg of a named airway (or, with Airway=="",
// a synthetic segment used only internally). Direction is as stored;
// the builder adds both directions to the graph.
type AirwaySegment struct {
	Airway         string
	From, To       Object
	BaseFL, TopFL  int // flight levels, inclusive; 0/0 means "unrestricted"
}

// Database is the static navigation database the graph builder
// queries: airports, navaids, ICAO intersections and airways within a
// bounding box. Implementations are free to back this with whatever
// storage they like; the core only ever calls these four methods.
type Database interface {
	// AirwaysInBBox returns every airway segment that intersects bb.
	AirwaysInBBox(bb geo.Extent) []AirwaySegment
	// NavaidsInBBox returns navaids located within bb.
	NavaidsInBBox(bb geo.Extent) []Navaid
	// IntersectionsInBBox returns ICAO intersections located within bb.
	IntersectionsInBBox(bb geo.Extent) []Intersection
	// LookupAirport returns the Airport object for an ICAO identifier.
	LookupAirport(icao string) (Airport, bool)
}

// Terrain answers minimum-safe-altitude queries over a 5nm-wide
// corridor between two points, per spec §4.D.1/§4.K.
type Terrain interface {
	// MaxElevationCorridor returns the highest terrain elevation (feet
	// MSL) within a 5nm-wide corridor along the segment p0-p1.
	MaxElevationCorridor(p0, p1 geo.Point) int
}

// MinAltitudeForTerrain computes the minimum usable cruise altitude
// over a corridor given its highest terrain point, per the margin
// rule used identically by the graph builder (§4.D.1) and the
// ground-clearance finalizer (§4.K): 1,000ft above terrain, plus an
// additional 1,000ft if that puts the result at or above 5,000ft MSL.
func MinAltitudeForTerrain(terrainMaxFt int) int {
	minAlt := terrainMaxFt + 1000
	if minAlt >= 5000 {
		minAlt += 1000
	}
	return minAlt
}
