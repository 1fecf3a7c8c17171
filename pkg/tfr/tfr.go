// pkg/tfr/tfr.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package tfr declares the traffic-flow-restrictions engine
// collaborator (spec §6) and implements the TFR-to-graph translator
// (component H, spec §4.H) that turns its rule matches into graph
// mutations.
package tfr

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/altset"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
)

// DctParameters is the query the graph builder issues per candidate
// DCT segment (spec §4.D.4).
type DctParameters struct {
	Id0, Id1       string
	Coord0, Coord1 geo.Point
	AltMin, AltMax int
}

// CodeType distinguishes the three rule categories.
type CodeType int

const (
	Forbidden CodeType = iota
	Closed
	Mandatory
)

// Step is one (vertex, level-band, airway-to-next) entry in a
// mandatory sequence.
type Step struct {
	Ident        string
	LevelBandLo  int
	LevelBandHi  int
	AirwayToNext string // "" means DCT
}

// Sequence is an ordered list of Steps a route may satisfy.
type Sequence struct {
	Steps []Step
}

// Alternative is a disjunction of Sequences; a rule (or a forbidden/
// closed crossing condition) is satisfied by any one Sequence inside
// it.
type Alternative struct {
	Sequences []Sequence
	// CrossingConditions names airspaces by identifier (looked up in
	// the translator's airspace.Cache with empty class and typecode).
	// For a forbidden rule, each one found is queried with get_altrange
	// at every step of every Sequence to derive the levels to kill.
	CrossingConditions []string
	// RouteStatic, when true, means this alternative names a specific
	// segment already present in the submitted route rather than a
	// generic crossing condition.
	RouteStatic         bool
	RouteStaticFrom, RouteStaticTo string
	RouteStaticAirway   string
}

// Match is one rule match reported by check_fplan.
type Match struct {
	Code              string
	Type              CodeType
	IsDCT             bool
	IsUnconditional   bool
	IsRouteStatic     bool
	IsMandatoryInbound bool
	TerminalIdent     string // for mandatory-inbound: the rule's terminal point
	Alternatives      []Alternative
	Messages          []string
}

// Result bundles everything check_fplan returns.
type Result struct {
	Matches  []Match
	Messages []string
}

// RouteView is the minimal view of a candidate route the engine needs
// to evaluate rules against.
type RouteView interface {
	WaypointIdents() []string
}

// Engine is the TFR collaborator injected into the builder (for
// check_dct) and the repair loop (for check_fplan).
type Engine interface {
	// CheckDCT returns the altitude intervals permitted for travel
	// from Id0 to Id1 and, symmetrically, from Id1 to Id0.
	CheckDCT(p DctParameters) (fwd, rev altset.Set)
	// CheckFplan evaluates a candidate route against the rule base.
	CheckFplan(route RouteView, equipment string) Result
	// DCTWhitelisted reports whether the segment id0-id1, despite
	// exceeding the configured DCT-limit distance, is explicitly
	// permitted by the TFR engine's DCT-segments table (spec §4.D.4).
	DCTWhitelisted(id0, id1 string) bool
}
