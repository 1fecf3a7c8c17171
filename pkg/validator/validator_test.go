// pkg/validator/validator_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package validator

import (
	"context"
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
)

func TestParseKnownLines(t *testing.T) {
	cases := []struct {
		line string
		code Code
		want []string
	}{
		{"PROF50: CLIMBING/DESCENDING OUTSIDE THE VERTICAL LIMITS OF SEGMENT NUNRI T103 KUDIS", CodePROF50, []string{"NUNRI", "T103", "KUDIS"}},
		{"ROUTE49: THE POINT XYZAB IS UNKNOWN IN THE CONTEXT OF THE ROUTE", CodeROUTE49, []string{"XYZAB"}},
		{"ROUTE52: THE DCT SEGMENT ABCDE..FGHIJ IS FORBIDDEN", CodeROUTE52, []string{"ABCDE", "FGHIJ"}},
		{"FAIL: internal server error", CodeFAIL, []string{"internal server error"}},
		{"PROF188: channel spacing notice", "", nil},
	}
	for _, c := range cases {
		m, ok := Parse(c.line)
		if c.code == "" {
			if ok {
				t.Errorf("%q: expected no match, got %v", c.line, m)
			}
			continue
		}
		if !ok || m.Code != c.code {
			t.Fatalf("%q: expected code %s, got %v (ok=%v)", c.line, c.code, m.Code, ok)
		}
		for i, g := range c.want {
			if m.Groups[i] != g {
				t.Errorf("%q: group %d = %q, want %q", c.line, i, m.Groups[i], g)
			}
		}
	}
}

type testPerfModel struct{ levels []perf.Level }

func (p *testPerfModel) NumLevels() int           { return len(p.levels) }
func (p *testPerfModel) LevelAt(pi int) perf.Level { return p.levels[pi] }
func (p *testPerfModel) WindAt(geo.Point, int) (float32, float32) { return 0, 0 }
func (p *testPerfModel) LevelChange(a, b int) (float32, float32)  { return 0, 0 }

func fourLevels() *testPerfModel {
	return &testPerfModel{levels: []perf.Level{
		{AltitudeFt: 10000}, {AltitudeFt: 20000}, {AltitudeFt: 30000}, {AltitudeFt: 40000},
	}}
}

func metricAll(n int, v float32) []float32 {
	m := make([]float32, n)
	for i := range m {
		m[i] = v
	}
	return m
}

func TestMutatorPROF50KillsNamedSegmentBothDirections(t *testing.T) {
	g := lgraph.New(4)
	nunri := g.AddVertex(lgraph.Vertex{Ident: "NUNRI", Coord: geo.FromDegrees(0, 0)})
	kudis := g.AddVertex(lgraph.Vertex{Ident: "KUDIS", Coord: geo.FromDegrees(0, 1)})
	tbl := airway.NewTable()
	t103 := tbl.Lookup("T103", true)
	g.SetMetric(nunri, kudis, t103, metricAll(4, 60), 60, 90)
	g.SetMetric(kudis, nunri, t103, metricAll(4, 60), 60, 270)

	mu := &Mutator{G: g, Airways: tbl, Perf: PerfLevels{Perf: fourLevels()}}
	m, ok := Parse("PROF50: CLIMBING/DESCENDING OUTSIDE THE VERTICAL LIMITS OF SEGMENT NUNRI T103 KUDIS")
	if !ok {
		t.Fatal("expected a PROF50 match")
	}
	if !mu.Apply(m) {
		t.Fatal("expected PROF50 to mutate the graph")
	}
	if g.FindEdge(nunri, kudis, t103) != nil || g.FindEdge(kudis, nunri, t103) != nil {
		t.Error("both directions of the cited segment should be gone")
	}
}

func TestMutatorROUTE130DisconnectsAndDowngrades(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	b := g.AddVertex(lgraph.Vertex{Ident: "BOGUS", Coord: geo.FromDegrees(0, 1)})
	tbl := airway.NewTable()
	aw := tbl.Lookup("BOGUS", true)
	g.SetMetric(a, b, aw, metricAll(2, 10), 10, 90)

	mu := &Mutator{G: g, Airways: tbl, Perf: PerfLevels{Perf: &testPerfModel{levels: []perf.Level{{AltitudeFt: 10000}, {AltitudeFt: 20000}}}}}
	m, ok := Parse("ROUTE130: UNKNOWN DESIGNATOR BOGUS")
	if !ok {
		t.Fatal("expected a ROUTE130 match")
	}
	if !mu.Apply(m) {
		t.Error("expected ROUTE130 to mutate the graph")
	}
}

func TestFinalizerKillsBelowMinAltitude(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	b := g.AddVertex(lgraph.Vertex{Ident: "BRAVO", Coord: geo.FromDegrees(0, 1)})
	e := g.SetMetric(a, b, airway.DCT, metricAll(2, 50), 50, 90)
	e.SolutionLevel = 0

	fin := &Finalizer{G: g, Terrain: fakeTerrain{}, Perf: fourLevels()}
	if !fin.Run() {
		t.Fatal("expected the finalizer to kill the low level under 9,000ft terrain")
	}
	if e.ValidAtLevel(0) {
		t.Error("level 0 (FL100, below minalt) should have been killed")
	}
	if !e.ValidAtLevel(1) {
		t.Error("level 1 (FL200) should remain valid")
	}
}

type fakeTerrain struct{}

func (fakeTerrain) MaxElevationCorridor(p0, p1 geo.Point) int { return 9000 }

type fakeConn struct {
	lines []string
	pos   int
}

func (c *fakeConn) Send(ctx context.Context, planText string) error { return nil }
func (c *fakeConn) ReadLine(ctx context.Context) (string, bool, error) {
	if c.pos >= len(c.lines) {
		return "", true, nil
	}
	l := c.lines[c.pos]
	c.pos++
	return l, false, nil
}
func (c *fakeConn) Restart(ctx context.Context) error { return nil }

func TestDriverAcceptsCleanResponse(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	b := g.AddVertex(lgraph.Vertex{Ident: "BRAVO", Coord: geo.FromDegrees(0, 1)})
	// Valid only at level 1 (FL200), which clears the 9,000ft terrain,
	// so the finalizer has nothing to kill.
	e := g.SetMetric(a, b, airway.DCT, []float32{lgraph.InvalidMetric, 50}, 50, 90)
	e.SolutionLevel = 1

	tbl := airway.NewTable()
	mu := &Mutator{G: g, Airways: tbl, Perf: PerfLevels{Perf: fourLevels()}}
	fin := &Finalizer{G: g, Terrain: fakeTerrain{}, Perf: fourLevels()}
	conn := &fakeConn{lines: []string{"NO ERRORS"}}
	d := NewDriver(conn, mu, fin, nil, 3)

	accepted, mutated, stop := d.Round(context.Background(), "plan text", nil)
	if !accepted || mutated || stop != StopNone {
		t.Errorf("expected acceptance, got accepted=%v mutated=%v stop=%v", accepted, mutated, stop)
	}
}

func TestDriverMutatesOnRecognisedError(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	b := g.AddVertex(lgraph.Vertex{Ident: "BOGUS", Coord: geo.FromDegrees(0, 1)})
	tbl := airway.NewTable()
	aw := tbl.Lookup("BOGUS", true)
	g.SetMetric(a, b, aw, metricAll(2, 10), 10, 90)

	mu := &Mutator{G: g, Airways: tbl, Perf: PerfLevels{Perf: fourLevels()}}
	fin := &Finalizer{G: g, Terrain: fakeTerrain{}, Perf: fourLevels()}
	conn := &fakeConn{lines: []string{"ROUTE130: UNKNOWN DESIGNATOR BOGUS"}}
	d := NewDriver(conn, mu, fin, nil, 3)

	accepted, mutated, stop := d.Round(context.Background(), "plan text", nil)
	if accepted || !mutated || stop != StopNone {
		t.Errorf("expected a mutation and resubmission, got accepted=%v mutated=%v stop=%v", accepted, mutated, stop)
	}
}
