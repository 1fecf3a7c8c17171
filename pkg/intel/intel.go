// pkg/intel/intel.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package intel implements the persistent CFMU intel store (component
// J): a cache of previously-discovered forbidden points and segments,
// replayed into the graph at build time (spec §4.D.6) so that a
// validator rejection discovered in one search immediately prunes the
// same bad edge out of every subsequent search over the same region.
package intel

import "github.com/tsailer/vfrnav-public-sub016/pkg/geo"

// Point is a single point the validator (or a prior repair pass) has
// reported as universally unusable.
type Point struct {
	Ident string
	Coord geo.Point
}

// Segment is a single (from, airway, to) triple reported as unusable
// at a specific cruise-level index.
type Segment struct {
	From, To string
	Airway   string
	Level    int
}

// Store is the forbidden-point/segment collaborator the builder
// queries during 4.D.6 and the one the repair loop (component I)
// writes into when the validator rejects a segment outright.
type Store interface {
	PointsInBBox(bb geo.Extent) []Point
	SegmentsInBBox(bb geo.Extent) []Segment
	AddPoint(p Point)
	AddSegment(s Segment)
}

// MemStore is an in-memory Store, suitable for a single process
// lifetime or as the decoded form of a persisted snapshot.
type MemStore struct {
	points   []Point
	segments []Segment
}

// NewMemStore returns an empty, ready-to-use MemStore.
func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) PointsInBBox(bb geo.Extent) []Point {
	var out []Point
	for _, p := range s.points {
		if bb.Inside(p.Coord) {
			out = append(out, p)
		}
	}
	return out
}

// SegmentsInBBox returns every recorded segment; callers filter
// further against their own graph, since a Segment's endpoints are
// identifiers rather than coordinates and the store does not resolve
// them.
func (s *MemStore) SegmentsInBBox(bb geo.Extent) []Segment {
	_ = bb
	return append([]Segment(nil), s.segments...)
}

func (s *MemStore) AddPoint(p Point) {
	for _, e := range s.points {
		if e.Ident == p.Ident {
			return
		}
	}
	s.points = append(s.points, p)
}

func (s *MemStore) AddSegment(seg Segment) {
	for _, e := range s.segments {
		if e == seg {
			return
		}
	}
	s.segments = append(s.segments, seg)
}

// Points returns every recorded point, for persistence.
func (s *MemStore) Points() []Point { return s.points }

// Segments returns every recorded segment, for persistence.
func (s *MemStore) Segments() []Segment { return s.segments }

// Load replaces s's contents with the decoded points/segments.
func (s *MemStore) Load(points []Point, segments []Segment) {
	s.points = points
	s.segments = segments
}
