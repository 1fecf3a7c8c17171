// pkg/geo/point.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geo provides the fixed-point equirectangular coordinate and
// great-circle primitives the route-search core is built on. Point
// coordinates are stored as signed 32-bit integers in a fixed unit
// (1/FixedUnit of a degree) rather than as floating point degrees so
// that two searches given the same inputs produce bit-identical graphs.
package geo

import (
	gomath "math"
)

// FixedUnit is the number of fixed-point units per degree of latitude
// or longitude. 1e7 gives about 1.1cm resolution in latitude, matching the
// resolution commonly used by aviation databases for navaid coordinates.
const FixedUnit = 1e7

// EarthRadiusNM is the mean radius of the earth in nautical miles.
const EarthRadiusNM = 3440.065

// Point is a pair of signed 32-bit equirectangular coordinates
// (latitude, longitude) in FixedUnit-ths of a degree.
type Point struct {
	Lat, Lon int32
}

// InvalidPoint is returned by lookups that failed; Valid reports false
// for it and for the zero value's antipode is never produced by any
// constructor below, so (0,0) remains a legitimate point.
var InvalidPoint = Point{Lat: gomath.MinInt32, Lon: gomath.MinInt32}

// Valid reports whether p carries a meaningful coordinate.
func (p Point) Valid() bool {
	return p != InvalidPoint
}

// FromDegrees builds a Point from floating-point degrees.
func FromDegrees(lat, lon float64) Point {
	return Point{
		Lat: int32(gomath.Round(lat * FixedUnit)),
		Lon: int32(gomath.Round(lon * FixedUnit)),
	}
}

// Degrees returns p's latitude and longitude in floating-point degrees.
func (p Point) Degrees() (lat, lon float64) {
	return float64(p.Lat) / FixedUnit, float64(p.Lon) / FixedUnit
}

func (p Point) radians() (latR, lonR float64) {
	lat, lon := p.Degrees()
	return gomath.Pi / 180 * lat, gomath.Pi / 180 * lon
}

// DistanceNM returns the great-circle distance between p and q in
// nautical miles, via the haversine formula.
func (p Point) DistanceNM(q Point) float32 {
	lat1, lon1 := p.radians()
	lat2, lon2 := q.radians()
	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := gomath.Sin(dlat/2)*gomath.Sin(dlat/2) +
		gomath.Cos(lat1)*gomath.Cos(lat2)*gomath.Sin(dlon/2)*gomath.Sin(dlon/2)
	c := 2 * gomath.Atan2(gomath.Sqrt(a), gomath.Sqrt(1-a))
	return float32(EarthRadiusNM * c)
}

// InitialBearing returns the initial true course in degrees [0,360) for
// the great-circle path from p to q.
func (p Point) InitialBearing(q Point) float32 {
	lat1, lon1 := p.radians()
	lat2, lon2 := q.radians()
	dlon := lon2 - lon1
	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	brg := gomath.Atan2(y, x) * 180 / gomath.Pi
	return float32(gomath.Mod(brg+360, 360))
}

// Midpoint returns the point half-way along the great-circle path
// between p and q.
func (p Point) Midpoint(q Point) Point {
	lat1, lon1 := p.radians()
	lat2, lon2 := q.radians()
	dlon := lon2 - lon1

	bx := gomath.Cos(lat2) * gomath.Cos(dlon)
	by := gomath.Cos(lat2) * gomath.Sin(dlon)

	latm := gomath.Atan2(gomath.Sin(lat1)+gomath.Sin(lat2),
		gomath.Sqrt((gomath.Cos(lat1)+bx)*(gomath.Cos(lat1)+bx)+by*by))
	lonm := lon1 + gomath.Atan2(by, gomath.Cos(lat1)+bx)

	return FromDegrees(latm*180/gomath.Pi, lonm*180/gomath.Pi)
}

// BoundingBoxRadiusNM returns an Extent that conservatively bounds all
// points within radiusNM nautical miles of p. It is deliberately
// approximate (a simple degrees-per-nm scaling at p's latitude) since
// it is only ever used to build a candidate set that is then filtered
// with exact distance tests.
func (p Point) BoundingBoxRadiusNM(radiusNM float32) Extent {
	lat, _ := p.Degrees()
	latDeltaDeg := float64(radiusNM) / 60.0
	cosLat := gomath.Cos(lat * gomath.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonDeltaDeg := latDeltaDeg / cosLat

	dLat := int32(gomath.Ceil(latDeltaDeg * FixedUnit))
	dLon := int32(gomath.Ceil(lonDeltaDeg * FixedUnit))

	return Extent{
		Min: Point{Lat: p.Lat - dLat, Lon: p.Lon - dLon},
		Max: Point{Lat: p.Lat + dLat, Lon: p.Lon + dLon},
	}
}
