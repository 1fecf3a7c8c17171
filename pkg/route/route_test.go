// pkg/route/route_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"context"
	"strings"
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
	"github.com/tsailer/vfrnav-public-sub016/pkg/validator"
)

type fixturePerf struct{ levels []perf.Level }

func (p fixturePerf) NumLevels() int            { return len(p.levels) }
func (p fixturePerf) LevelAt(pi int) perf.Level { return p.levels[pi] }
func (p fixturePerf) WindAt(geo.Point, int) (float32, float32) { return 0, 0 }
func (p fixturePerf) LevelChange(a, b int) (float32, float32)  { return 0, 0 }

func onelevel() fixturePerf {
	return fixturePerf{levels: []perf.Level{{AltitudeFt: 9000, TAS: 120}}}
}

type fixtureTerrain struct{}

func (fixtureTerrain) MaxElevationCorridor(p0, p1 geo.Point) int { return 0 }

type fakeConn struct {
	responses [][]string
	calls     int
	pos       int
}

func (c *fakeConn) Send(ctx context.Context, planText string) error { c.pos = 0; return nil }

func (c *fakeConn) ReadLine(ctx context.Context) (string, bool, error) {
	if c.calls >= len(c.responses) {
		return "", true, nil
	}
	cur := c.responses[c.calls]
	if c.pos >= len(cur) {
		c.calls++
		return "", true, nil
	}
	l := cur[c.pos]
	c.pos++
	return l, false, nil
}

func (c *fakeConn) Restart(ctx context.Context) error { return nil }

func buildFixture(t *testing.T) (*Search, *airway.Table) {
	t.Helper()
	g := lgraph.New(1)
	dep := g.AddVertex(lgraph.Vertex{Ident: "DEP", Coord: geo.FromDegrees(0, 0)})
	dest := g.AddVertex(lgraph.Vertex{Ident: "DEST", Coord: geo.FromDegrees(0, 1)})
	tbl := airway.NewTable()
	bad := tbl.Lookup("BADAWY", true)
	g.SetMetric(dep, dest, bad, []float32{10}, 10, 90)
	g.SetMetric(dep, dest, airway.DCT, []float32{50}, 50, 90)

	return &Search{
		G:       g,
		Airways: tbl,
		Perf:    onelevel(),
		Vdep:    dep,
		Vdest:   dest,
		Mutator: &validator.Mutator{G: g, Airways: tbl, Perf: validator.PerfLevels{Perf: onelevel()}},
		Finalizer: &validator.Finalizer{G: g, Terrain: fixtureTerrain{}, Perf: onelevel()},
		Cfg:     DefaultConfig(),
	}, tbl
}

func TestSearchAcceptsFirstCandidate(t *testing.T) {
	s, _ := buildFixture(t)
	s.Conn = &fakeConn{responses: [][]string{{"NO ERRORS"}}}

	res := s.Run(context.Background())
	if res.Stop != validator.StopNone || res.Nodes == nil {
		t.Fatalf("expected acceptance, got stop=%v nodes=%v", res.Stop, res.Nodes)
	}
	if !strings.Contains(res.PlanText, "DEP BADAWY DEST") {
		t.Errorf("expected the optimal BADAWY leg in the plan text, got %q", res.PlanText)
	}
	if !strings.HasPrefix(res.PlanText, "N0120 F090 ") {
		t.Errorf("expected a speed/level prefix, got %q", res.PlanText)
	}
}

func TestSearchMutatesAwayBadDesignatorThenAccepts(t *testing.T) {
	s, _ := buildFixture(t)
	s.Conn = &fakeConn{responses: [][]string{
		{"ROUTE130: UNKNOWN DESIGNATOR BADAWY"},
		{"NO ERRORS"},
	}}

	res := s.Run(context.Background())
	if res.Stop != validator.StopNone || res.Nodes == nil {
		t.Fatalf("expected eventual acceptance, got stop=%v", res.Stop)
	}
	if strings.Contains(res.PlanText, "BADAWY") {
		t.Errorf("the accepted plan should no longer use the disconnected airway, got %q", res.PlanText)
	}
	if !strings.Contains(res.PlanText, "DEP DCT DEST") {
		t.Errorf("expected the remaining DCT leg, got %q", res.PlanText)
	}
}
