// pkg/navdb/object.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package navdb declares the interfaces the route-search core uses to
// treat the static navigation database and terrain elevation model as
// external collaborators (spec §1's "out of scope" list, spec §6's
// "external interfaces"); the performance model and traffic-flow-
// restriction engine are declared in pkg/perf and pkg/tfr. This package
// contains no implementation of Database or Terrain; callers inject
// their own.
//
// Per the design note on cyclic references (spec §9), a graph Vertex
// does not hold a pointer into the database: it holds an Object, a
// small tagged variant over the five database object kinds, each
// exposing only the capability the core actually needs (identifier,
// coordinate, insertion into a rendered route). This avoids a
// reference cycle between the graph and the database layer, the same
// way the teacher's aviation package keeps Navaid/FAAAirport/Fix as
// plain value types rather than participating in an object graph.
package navdb

import "github.com/tsailer/vfrnav-public-sub016/pkg/geo"

// Kind tags which of the five database object kinds an Object wraps.
type Kind int

const (
	KindAirport Kind = iota
	KindNavaid
	KindIntersection
	KindMapElement
	KindFPLWaypoint
)

// Object is the small capability set a graph Vertex needs from
// whatever underlying database record it represents: enough to
// render an ICAO flight-plan waypoint, and nothing that would require
// the graph to hold a live pointer back into the database.
type Object interface {
	Kind() Kind
	Ident() string
	Coordinate() geo.Point
	// InsertInto appends this object's representation to the given
	// ICAO route-string builder in the form the
	// validator expects (bare ident for navaids/intersections/fixes,
	// airport ICAO for terminal points).
	InsertInto(b RouteStringBuilder)
}

// RouteStringBuilder is the minimal sink Object.InsertInto writes
// into.
type RouteStringBuilder interface {
	WriteField(s string)
}

// Airport is a terminal aerodrome object.
type Airport struct {
	ICAO string
	Loc  geo.Point
}

func (a Airport) Kind() Kind            { return KindAirport }
func (a Airport) Ident() string         { return a.ICAO }
func (a Airport) Coordinate() geo.Point { return a.Loc }
func (a Airport) InsertInto(b RouteStringBuilder) {
	b.WriteField(a.ICAO)
}

// Navaid is a VOR/NDB/VORTAC etc.
type Navaid struct {
	Id  string
	Loc geo.Point
}

func (n Navaid) Kind() Kind            { return KindNavaid }
func (n Navaid) Ident() string         { return n.Id }
func (n Navaid) Coordinate() geo.Point { return n.Loc }
func (n Navaid) InsertInto(b RouteStringBuilder) {
	b.WriteField(n.Id)
}

// Intersection is a named ICAO five-letter reporting point.
type Intersection struct {
	Id  string
	Loc geo.Point
}

func (i Intersection) Kind() Kind            { return KindIntersection }
func (i Intersection) Ident() string         { return i.Id }
func (i Intersection) Coordinate() geo.Point { return i.Loc }
func (i Intersection) InsertInto(b RouteStringBuilder) {
	b.WriteField(i.Id)
}

// MapElement is a user-created waypoint (e.g. a map-drawn shaping
// point along an airway that has no formal navaid/intersection
// identity).
type MapElement struct {
	Id  string
	Loc geo.Point
}

func (m MapElement) Kind() Kind            { return KindMapElement }
func (m MapElement) Ident() string         { return m.Id }
func (m MapElement) Coordinate() geo.Point { return m.Loc }
func (m MapElement) InsertInto(b RouteStringBuilder) {
	b.WriteField(m.Id)
}

// FPLWaypoint is a user-entered free-text flight-plan waypoint
// (typically a lat/lon pair with no database identity at all).
type FPLWaypoint struct {
	Id  string
	Loc geo.Point
}

func (f FPLWaypoint) Kind() Kind            { return KindFPLWaypoint }
func (f FPLWaypoint) Ident() string         { return f.Id }
func (f FPLWaypoint) Coordinate() geo.Point { return f.Loc }
func (f FPLWaypoint) InsertInto(b RouteStringBuilder) {
	b.WriteField(f.Id)
}
