// pkg/builder/builder_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airspace"
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/altset"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/navdb"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
	"github.com/tsailer/vfrnav-public-sub016/pkg/tfr"
)

type fakeDB struct {
	airways []navdb.AirwaySegment
	navaids []navdb.Navaid
	fixes   []navdb.Intersection
	aps     map[string]navdb.Airport
}

func (f *fakeDB) AirwaysInBBox(geo.Extent) []navdb.AirwaySegment      { return f.airways }
func (f *fakeDB) NavaidsInBBox(geo.Extent) []navdb.Navaid             { return f.navaids }
func (f *fakeDB) IntersectionsInBBox(geo.Extent) []navdb.Intersection { return f.fixes }
func (f *fakeDB) LookupAirport(icao string) (navdb.Airport, bool) {
	a, ok := f.aps[icao]
	return a, ok
}

type fakeTerrain struct{}

func (fakeTerrain) MaxElevationCorridor(p0, p1 geo.Point) int { return 2000 }

type fakeTFR struct{}

func (fakeTFR) CheckDCT(p tfr.DctParameters) (altset.Set, altset.Set) {
	full := altset.Of(altset.Interval{Lo: 0, Hi: 60000})
	return full, full
}
func (fakeTFR) CheckFplan(route tfr.RouteView, equipment string) tfr.Result { return tfr.Result{} }
func (fakeTFR) DCTWhitelisted(id0, id1 string) bool                        { return false }

type fakePerf struct{ levels []perf.Level }

func (p *fakePerf) NumLevels() int           { return len(p.levels) }
func (p *fakePerf) LevelAt(pi int) perf.Level { return p.levels[pi] }
func (p *fakePerf) WindAt(geo.Point, int) (float32, float32) { return 0, 0 }
func (p *fakePerf) LevelChange(from, to int) (float32, float32) {
	if from == to {
		return 0, 0
	}
	return 1, 5
}

func testPerf() *fakePerf {
	return &fakePerf{levels: []perf.Level{
		{AltitudeFt: 10000, TAS: 250, MetricPerNM: 1},
		{AltitudeFt: 20000, TAS: 280, MetricPerNM: 1},
		{AltitudeFt: 30000, TAS: 300, MetricPerNM: 1},
	}}
}

func TestBuildIngestsAirwayBothDirections(t *testing.T) {
	alpha := navdb.Navaid{Id: "ALPHA", Loc: geo.FromDegrees(0, 0)}
	bravo := navdb.Navaid{Id: "BRAVO", Loc: geo.FromDegrees(0, 1)}
	db := &fakeDB{
		navaids: []navdb.Navaid{alpha, bravo},
		airways: []navdb.AirwaySegment{{Airway: "N869", From: alpha, To: bravo}},
		aps: map[string]navdb.Airport{
			"EDDF": {ICAO: "EDDF", Loc: geo.FromDegrees(50, 8)},
			"LFPG": {ICAO: "LFPG", Loc: geo.FromDegrees(49, 2)},
		},
	}

	bld := New(db, fakeTerrain{}, fakeTFR{}, airspace.NewCache(nil), nil, testPerf(), airway.NewTable(), nil)
	cfg := Config{
		SearchBBox:                 geo.Extent{Min: geo.FromDegrees(-10, -10), Max: geo.FromDegrees(10, 10)},
		DCTLimitNM:                 5,
		DepartureICAO:              "EDDF",
		DestinationICAO:            "LFPG",
		SIDRadiusNM:                50,
		STARRadiusNM:               50,
		AirportConnectionOffsetNM:  2,
	}

	g, vdep, vdest, errs := bld.Build(cfg)
	if errs.HaveErrors() {
		t.Fatalf("unexpected ingest errors: %s", errs.String())
	}
	if vdep == vdest {
		t.Fatal("Vdep and Vdest should be distinct")
	}

	u := g.VerticesNamed("ALPHA")[0]
	v := g.VerticesNamed("BRAVO")[0]
	if e := g.FindEdge(u, v, airway.MatchAwy); e == nil {
		t.Error("expected a forward airway edge")
	}
	if e := g.FindEdge(v, u, airway.MatchAwy); e == nil {
		t.Error("expected a reverse airway edge")
	}
}

func TestEliminateInvalidSupernodesBypassesNumericIdent(t *testing.T) {
	a := navdb.Navaid{Id: "ALPHA", Loc: geo.FromDegrees(0, 0)}
	mid := navdb.Intersection{Id: "123", Loc: geo.FromDegrees(0, 0.5)}
	c := navdb.Navaid{Id: "CHARLIE", Loc: geo.FromDegrees(0, 1)}
	db := &fakeDB{
		navaids: []navdb.Navaid{a, c},
		fixes:   []navdb.Intersection{mid},
		airways: []navdb.AirwaySegment{
			{Airway: "N869", From: a, To: mid},
			{Airway: "N869", From: mid, To: c},
		},
		aps: map[string]navdb.Airport{
			"EDDF": {ICAO: "EDDF", Loc: geo.FromDegrees(50, 8)},
			"LFPG": {ICAO: "LFPG", Loc: geo.FromDegrees(49, 2)},
		},
	}
	bld := New(db, fakeTerrain{}, fakeTFR{}, airspace.NewCache(nil), nil, testPerf(), airway.NewTable(), nil)
	cfg := Config{
		SearchBBox:      geo.Extent{Min: geo.FromDegrees(-10, -10), Max: geo.FromDegrees(10, 10)},
		DCTLimitNM:      0, // keep the test to the airway graph alone
		DepartureICAO:   "EDDF",
		DestinationICAO: "LFPG",
	}
	g, _, _, _ := bld.Build(cfg)

	if verts := g.VerticesNamed("123"); len(verts) > 0 {
		v := verts[0]
		if len(g.OutEdges(v)) != 0 {
			t.Error("bypassed supernode should have no remaining out-edges")
		}
	}

	u := g.VerticesNamed("ALPHA")[0]
	v := g.VerticesNamed("CHARLIE")[0]
	if e := g.FindEdge(u, v, airway.MatchAwy); e == nil {
		t.Error("expected a synthesized bypass edge from ALPHA to CHARLIE")
	}
}
