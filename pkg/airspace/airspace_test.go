// pkg/airspace/airspace_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/altset"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
)

func square(floor, ceiling int) *Volume {
	return &Volume{
		Kind: KindPolygon,
		Polygon: geo.Polygon{Outer: []geo.Point{
			geo.FromDegrees(0, 0), geo.FromDegrees(0, 10),
			geo.FromDegrees(10, 10), geo.FromDegrees(10, 0),
		}},
		Floor: floor, Ceiling: ceiling,
	}
}

func TestSimpleVolumeInside(t *testing.T) {
	a := &Composed{
		Key:        Key{Ident: "LFRR", Class: "D"},
		Components: []Component{{Op: OpSet, Prim: square(10000, 20000)}},
		Floor:      10000, Ceiling: 20000,
	}
	c := NewCache([]*Composed{a})

	in := geo.FromDegrees(5, 5)
	if !c.IsInside(a, in, 15000, nil, nil) {
		t.Error("expected inside at FL150")
	}
	if c.IsInside(a, in, 5000, nil, nil) {
		t.Error("expected outside below floor")
	}
	out := geo.FromDegrees(50, 50)
	if c.IsInside(a, out, 15000, nil, nil) {
		t.Error("expected outside laterally")
	}
}

func TestFindReuse(t *testing.T) {
	a := &Composed{Key: Key{Ident: "LFRR", Class: "D"}}
	c := NewCache([]*Composed{a})
	f1 := c.Find("LFRR", "D", "")
	f2 := c.Find("LFRR", "D", "")
	if f1 != f2 {
		t.Error("expected the same cached pointer on re-lookup")
	}
	if c.Find("ZZZZ", "", "") != nil {
		t.Error("expected nil for unknown airspace")
	}
}

func TestComposedSubtract(t *testing.T) {
	outer := square(0, 60000)
	// A "hole" region modeled as a smaller inner polygon at the same levels.
	inner := &Volume{
		Kind: KindPolygon,
		Polygon: geo.Polygon{Outer: []geo.Point{
			geo.FromDegrees(4, 4), geo.FromDegrees(4, 6),
			geo.FromDegrees(6, 6), geo.FromDegrees(6, 4),
		}},
		Floor: 0, Ceiling: 60000,
	}
	composed := &Composed{
		Key: Key{Ident: "TEST"},
		Components: []Component{
			{Op: OpSet, Prim: outer},
			{Op: OpSubtract, Prim: inner},
		},
		Floor: 0, Ceiling: 60000,
	}
	c := NewCache([]*Composed{composed})

	if c.IsInside(composed, geo.FromDegrees(5, 5), 10000, nil, nil) {
		t.Error("point in the subtracted hole should read as outside")
	}
	if !c.IsInside(composed, geo.FromDegrees(1, 1), 10000, nil, nil) {
		t.Error("point outside the hole but inside outer should read as inside")
	}
}

func TestGetAltRangeClip(t *testing.T) {
	a := &Composed{
		Key:        Key{Ident: "X"},
		Components: []Component{{Op: OpSet, Prim: square(5000, 25000)}},
		Floor:      5000, Ceiling: 25000,
	}
	c := NewCache([]*Composed{a})
	got := c.GetAltRange(a, geo.FromDegrees(5, 5), nil, 0, 18000)
	want := altset.Of(altset.Interval{Lo: 5000, Hi: 18000})
	if got.Intervals()[0] != want.Intervals()[0] {
		t.Errorf("got %v, want %v", got.Intervals(), want.Intervals())
	}
}

func TestMissingRefIsEmpty(t *testing.T) {
	composed := &Composed{
		Key:        Key{Ident: "DANGLING"},
		Components: []Component{{Op: OpSet, Ref: Key{Ident: "NOPE"}}},
		Floor:      0, Ceiling: 60000,
	}
	c := NewCache([]*Composed{composed})
	if c.IsInside(composed, geo.FromDegrees(1, 1), 10000, nil, nil) {
		t.Error("a dangling ref should behave as empty, never inside")
	}
}
