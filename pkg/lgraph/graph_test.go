// pkg/lgraph/graph_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package lgraph

import (
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
)

func newTestGraph(levels int) (*Graph, VertexIndex, VertexIndex) {
	g := New(levels)
	u := g.AddVertex(Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	v := g.AddVertex(Vertex{Ident: "BRAVO", Coord: geo.FromDegrees(0, 1)})
	return g, u, v
}

func metricAll(levels int, valid float32) []float32 {
	m := make([]float32, levels)
	for i := range m {
		m[i] = valid
	}
	return m
}

func TestSetMetricMergeTakesElementwiseMin(t *testing.T) {
	tbl := airway.NewTable()
	aw := tbl.Lookup("N869", true)
	g, u, v := newTestGraph(3)

	g.SetMetric(u, v, aw, []float32{10, InvalidMetric, 30}, 60, 90)
	g.SetMetric(u, v, aw, []float32{5, 20, InvalidMetric}, 60, 90)

	e := g.FindEdge(u, v, aw)
	want := []float32{5, 20, 30}
	for i, w := range want {
		if e.Metric[i] != w {
			t.Errorf("level %d: got %f, want %f", i, e.Metric[i], w)
		}
	}
}

func TestAtMostOneEdgePerAirwayPerPair(t *testing.T) {
	tbl := airway.NewTable()
	aw := tbl.Lookup("N869", true)
	g, u, v := newTestGraph(2)
	g.SetMetric(u, v, aw, metricAll(2, 1), 10, 0)
	g.SetMetric(u, v, aw, metricAll(2, 1), 10, 0)
	if n := len(g.out[u]); n != 1 {
		t.Errorf("expected a single merged edge, got %d", n)
	}
}

func TestRemoveInvalidEdges(t *testing.T) {
	g, u, v := newTestGraph(2)
	g.SetMetric(u, v, airway.DCT, []float32{InvalidMetric, InvalidMetric}, 10, 0)
	g.RemoveInvalidEdges()
	if e := g.FindEdge(u, v, airway.MatchAll); e != nil {
		t.Error("edge with no valid level should have been removed")
	}
}

func TestSuppressDCTWherePreferred(t *testing.T) {
	tbl := airway.NewTable()
	aw := tbl.Lookup("N869", true)
	g, u, v := newTestGraph(3)
	g.SetMetric(u, v, airway.DCT, metricAll(3, 50), 50, 0)
	g.SetMetric(u, v, aw, []float32{InvalidMetric, 40, 40}, 50, 0)

	g.SuppressDCTWherePreferred()

	dct := g.FindEdge(u, v, airway.DCT)
	if dct == nil {
		t.Fatal("DCT edge should still exist (valid at level 0)")
	}
	if dct.ValidAtLevel(1) || dct.ValidAtLevel(2) {
		t.Error("DCT should be suppressed where the airway is valid")
	}
	if !dct.ValidAtLevel(0) {
		t.Error("DCT should remain valid where no airway covers the level")
	}
}

func TestIsValidConnectionDCTSimple(t *testing.T) {
	g, u, v := newTestGraph(3)
	e := g.SetMetric(u, v, airway.DCT, metricAll(3, 50), 50, 0)
	if !g.IsValidConnection(u, v, 1, 1, e) {
		t.Error("same-level DCT traversal at a valid level should be admissible")
	}
	if !g.IsValidConnection(u, v, 1, 2, e) {
		// all levels valid, so a climb across the edge is fine too
		t.Error("climb across a fully-valid DCT edge should be admissible")
	}
}

func TestIsValidConnectionDCTGapRequiresParallelAirway(t *testing.T) {
	tbl := airway.NewTable()
	aw := tbl.Lookup("N869", true)
	g, u, v := newTestGraph(3)
	dct := g.SetMetric(u, v, airway.DCT, []float32{50, InvalidMetric, 50}, 50, 0)

	if g.IsValidConnection(u, v, 0, 2, dct) {
		t.Error("a level-1 gap on a DCT edge with no parallel airway should block the climb")
	}

	g.SetMetric(u, v, aw, []float32{InvalidMetric, 40, InvalidMetric}, 50, 0)
	if !g.IsValidConnection(u, v, 0, 2, dct) {
		t.Error("a parallel airway valid at the gap level should permit the DCT climb")
	}
}

func TestIsValidConnectionSIDUsesDestinationLevel(t *testing.T) {
	g, u, v := newTestGraph(3)
	e := g.SetMetric(u, v, airway.SID, []float32{InvalidMetric, 10, InvalidMetric}, 10, 0)
	if g.IsValidConnection(u, v, 0, 0, e) {
		t.Error("SID should be gated on piv, not piu")
	}
	if !g.IsValidConnection(u, v, 0, 1, e) {
		t.Error("SID valid at piv=1 should be admissible regardless of piu")
	}
}

func TestIsValidConnectionSTARUsesSourceLevel(t *testing.T) {
	g, u, v := newTestGraph(3)
	e := g.SetMetric(u, v, airway.STAR, []float32{10, InvalidMetric, InvalidMetric}, 10, 0)
	if !g.IsValidConnection(u, v, 0, 2, e) {
		t.Error("STAR valid at piu=0 should be admissible regardless of piv")
	}
	if g.IsValidConnection(u, v, 1, 2, e) {
		t.Error("STAR should be gated on piu, not piv")
	}
}

func TestDisconnectVertexRemovesAllIncidentEdges(t *testing.T) {
	g, u, v := newTestGraph(2)
	g.SetMetric(u, v, airway.DCT, metricAll(2, 1), 1, 0)
	g.SetMetric(v, u, airway.DCT, metricAll(2, 1), 1, 0)
	g.DisconnectVertex(v)
	if g.FindEdge(u, v, airway.MatchAll) != nil || g.FindEdge(v, u, airway.MatchAll) != nil {
		t.Error("all edges incident to a disconnected vertex should be gone")
	}
}
