// pkg/airspace/airspace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package airspace implements the airspace-geometry cache (component
// A): point-in-airspace and segment-intersect tests against airspace
// volumes that may themselves be composed of other volumes via
// set/union/subtract/intersect operators. The volume shape (polygon
// with holes, or circle) is adapted from the teacher's
// aviation.AirspaceVolume; the component-operator composition and the
// get_altrange query are new, grounded on the union/intersect/
// subtract arithmetic in pkg/altset (itself grounded on
// original_source's interval.cc/.hh).
package airspace

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/altset"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
)

// VolumeKind distinguishes the two primitive volume shapes.
type VolumeKind int

const (
	KindPolygon VolumeKind = iota
	KindCircle
)

// Volume is a single primitive airspace shape with a vertical band.
type Volume struct {
	Kind    VolumeKind
	Polygon geo.Polygon
	Center  geo.Point
	RadiusNM float32
	Floor, Ceiling int // feet
}

func (v *Volume) insideLateral(p geo.Point) bool {
	switch v.Kind {
	case KindPolygon:
		return v.Polygon.Inside(p)
	case KindCircle:
		return p.DistanceNM(v.Center) <= v.RadiusNM
	default:
		return false
	}
}

func (v *Volume) intersectsLateral(p0, p1 geo.Point) bool {
	switch v.Kind {
	case KindPolygon:
		return v.Polygon.IntersectsSegment(p0, p1)
	case KindCircle:
		// Either endpoint inside, or the segment passes within RadiusNM
		// of Center at its closest approach (found by ternary search
		// along the segment, interpolated in degrees).
		if v.insideLateral(p0) || v.insideLateral(p1) {
			return true
		}
		lat0, lon0 := p0.Degrees()
		lat1, lon1 := p1.Degrees()
		at := func(t float64) geo.Point { return geo.FromDegrees(lat0+t*(lat1-lat0), lon0+t*(lon1-lon0)) }
		lo, hi := 0.0, 1.0
		for i := 0; i < 40; i++ {
			m1, m2 := lo+(hi-lo)/3, hi-(hi-lo)/3
			if at(m1).DistanceNM(v.Center) < at(m2).DistanceNM(v.Center) {
				hi = m2
			} else {
				lo = m1
			}
		}
		return at((lo+hi)/2).DistanceNM(v.Center) <= v.RadiusNM
	default:
		return false
	}
}

// Op is a composition operator combining a child volume's result with
// the running accumulator.
type Op int

const (
	OpSet Op = iota // replace the accumulator with the child's altitude set
	OpUnion
	OpSubtract
	OpIntersect
)

// Component is one step of a composed airspace: a primitive Volume
// (Prim non-nil) or a reference to another named/typed airspace
// (Ref non-empty, resolved via the owning Cache), combined into the
// accumulator with Op.
type Component struct {
	Op   Op
	Prim *Volume
	Ref  Key // looked up against the same Cache; empty Ref means Prim is used
}

// Key identifies an airspace by its navdata triple.
type Key struct {
	Ident, Class, Typecode string
}

// Composed is a named airspace assembled from a sequence of
// Components evaluated in order.
type Composed struct {
	Key        Key
	Components []Component
	Floor, Ceiling int // overall declared vertical limits, used when a query omits explicit bounds
}

// Cache resolves Composed airspaces by Key and memoizes repeated
// lookups, per spec's "re-entrant lookups reuse the cached copy".
type Cache struct {
	defs    map[Key]*Composed
	resolved map[Key]*Composed
}

// NewCache builds a Cache over the given airspace definitions.
func NewCache(defs []*Composed) *Cache {
	c := &Cache{
		defs:    make(map[Key]*Composed, len(defs)),
		resolved: make(map[Key]*Composed, len(defs)),
	}
	for _, d := range defs {
		c.defs[d.Key] = d
	}
	return c
}

// Find returns the Composed airspace for the given key, or nil if
// none is registered. The same *Composed is returned on repeated
// calls.
func (c *Cache) Find(ident, class, typecode string) *Composed {
	k := Key{Ident: ident, Class: class, Typecode: typecode}
	if a, ok := c.resolved[k]; ok {
		return a
	}
	a := c.defs[k]
	c.resolved[k] = a
	return a
}

// altrangeAt evaluates A's component sequence at lateral point p (or
// along segment p-p1 if segment is true), clipped to [reqLo,reqHi),
// and returns the resulting altitude set. A missing/invalid component
// (a Ref that does not resolve) behaves as empty, per spec.
func (c *Cache) altrangeAt(a *Composed, p, p1 geo.Point, segment bool, reqLo, reqHi int) altset.Set {
	if a == nil {
		return altset.Set{}
	}
	var acc altset.Set
	for _, comp := range a.Components {
		var childSet altset.Set
		if comp.Prim != nil {
			lo, hi := comp.Prim.Floor, comp.Prim.Ceiling
			inside := false
			if segment {
				inside = comp.Prim.intersectsLateral(p, p1)
			} else {
				inside = comp.Prim.insideLateral(p)
			}
			if inside {
				childSet = altset.Of(altset.Interval{Lo: lo, Hi: hi})
			}
		} else if comp.Ref != (Key{}) {
			if child := c.Find(comp.Ref.Ident, comp.Ref.Class, comp.Ref.Typecode); child != nil {
				childSet = c.altrangeAt(child, p, p1, segment, reqLo, reqHi)
			}
		}

		switch comp.Op {
		case OpSet:
			acc = childSet
		case OpUnion:
			acc = altset.Union(acc, childSet)
		case OpSubtract:
			acc = altset.Subtract(acc, childSet)
		case OpIntersect:
			acc = altset.Intersect(acc, childSet)
		}
	}
	return acc.Clip(reqLo, reqHi)
}

// requestedBand returns (lo,hi) to use for a query, honouring the
// optional altlwr/altupr override and otherwise falling back to a's
// own declared limits.
func requestedBand(a *Composed, altlwr, altupr []int) (int, int) {
	lo, hi := a.Floor, a.Ceiling
	if len(altlwr) > 0 {
		lo = altlwr[0]
	}
	if len(altupr) > 0 {
		hi = altupr[0]
	}
	return lo, hi
}

// IsInside reports whether P at alt is inside A, honouring optional
// altlwr/altupr overrides (A's own limits otherwise).
func (c *Cache) IsInside(a *Composed, p geo.Point, alt int, altlwr, altupr []int) bool {
	lo, hi := requestedBand(a, altlwr, altupr)
	if alt < lo || alt >= hi {
		return false
	}
	return c.altrangeAt(a, p, geo.Point{}, false, lo, hi).Contains(alt)
}

// IsIntersect reports whether the segment P0-P1 crosses A at some
// altitude within its band (or the supplied override).
func (c *Cache) IsIntersect(a *Composed, p0, p1 geo.Point, altlwr, altupr []int) bool {
	lo, hi := requestedBand(a, altlwr, altupr)
	return !c.altrangeAt(a, p0, p1, true, lo, hi).Empty()
}

// GetAltRange returns the altitudes for which P (or segment P-P1,
// when p1 is non-nil) lies inside A, clipped to [reqLo,reqHi).
func (c *Cache) GetAltRange(a *Composed, p geo.Point, p1 *geo.Point, reqLo, reqHi int) altset.Set {
	if p1 == nil {
		return c.altrangeAt(a, p, geo.Point{}, false, reqLo, reqHi)
	}
	return c.altrangeAt(a, p, *p1, true, reqLo, reqHi)
}
