// pkg/search/dijkstra_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

type flatPerf struct{}

func (flatPerf) LevelChange(from, to int) (float32, float32) {
	if from == to {
		return 0, 0
	}
	return 2, 10
}

func metricAll(levels int, v float32) []float32 {
	m := make([]float32, levels)
	for i := range m {
		m[i] = v
	}
	return m
}

func threeHop(t *testing.T) (*lgraph.Graph, lgraph.VertexIndex, lgraph.VertexIndex, lgraph.VertexIndex) {
	t.Helper()
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	b := g.AddVertex(lgraph.Vertex{Ident: "BRAVO", Coord: geo.FromDegrees(0, 1)})
	c := g.AddVertex(lgraph.Vertex{Ident: "CHARLIE", Coord: geo.FromDegrees(0, 2)})
	tbl := airway.NewTable()
	aw := tbl.Lookup("N869", true)
	g.SetMetric(a, b, aw, metricAll(2, 60), 60, 90)
	g.SetMetric(b, c, aw, metricAll(2, 60), 60, 90)
	g.SetMetric(a, c, airway.DCT, metricAll(2, 200), 200, 90)
	return g, a, b, c
}

func TestDijkstraPrefersAirwayOverLongDCT(t *testing.T) {
	g, a, _, c := threeHop(t)
	d := NewDijkstra(g, flatPerf{})
	d.Run(Node{Vertex: a, Level: 0}, Node{}, false)

	got := d.State.Dist(Node{Vertex: c, Level: 0})
	if got != 120 {
		t.Errorf("expected shortest distance to CHARLIE at level 0 to be 120 via the airway, got %v", got)
	}
	path := d.State.PathTo(Node{Vertex: c, Level: 0}, Node{}, false)
	if len(path) != 3 {
		t.Fatalf("expected a 3-node path, got %d: %v", len(path), path)
	}
}

func TestDijkstraLevelChangeAddsCost(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	b := g.AddVertex(lgraph.Vertex{Ident: "BRAVO", Coord: geo.FromDegrees(0, 1)})
	g.SetMetric(a, b, airway.DCT, metricAll(2, 50), 50, 90)

	d := NewDijkstra(g, flatPerf{})
	d.Run(Node{Vertex: a, Level: 0}, Node{}, false)

	same := d.State.Dist(Node{Vertex: b, Level: 0})
	climb := d.State.Dist(Node{Vertex: b, Level: 1})
	if climb <= same {
		t.Errorf("a level-changing arrival should cost more than a same-level one: same=%v climb=%v", same, climb)
	}
}

func TestDijkstraSeenIdentSkipsRepeatedPoint(t *testing.T) {
	g, a, b, c := threeHop(t)
	d := NewDijkstra(g, flatPerf{})
	d.SeenIdent = map[string]bool{"BRAVO": true}
	d.Run(Node{Vertex: a, Level: 0}, Node{}, false)

	// BRAVO is excluded, so the only remaining route to CHARLIE is the DCT.
	if got := d.State.Dist(Node{Vertex: c, Level: 0}); got != 200 {
		t.Errorf("expected the excluded-BRAVO path to fall back to the direct edge (200), got %v", got)
	}
	if d.State.Color(Node{Vertex: b, Level: 0}) != White {
		t.Error("BRAVO should never have been relaxed")
	}
}

func TestStateMarkPathAndCopyGrayPaths(t *testing.T) {
	g, a, b, c := threeHop(t)
	d := NewDijkstra(g, flatPerf{})
	d.Run(Node{Vertex: a, Level: 0}, Node{}, false)

	dst := NewState(g, flatPerf{})
	d.State.MarkPath(Node{Vertex: c, Level: 0})
	dst.CopyGrayPaths(d.State)

	if dst.Color(Node{Vertex: c, Level: 0}) != Gray {
		t.Error("CHARLIE should have been copied over as the gray leaf")
	}
	_ = b
}
