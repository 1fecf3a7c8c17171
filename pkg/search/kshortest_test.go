// pkg/search/kshortest_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// diamond builds two parallel routes between Vdep and Vdest of
// different lengths (50+50 via MID1, 60+60 via MID2), so the
// k-shortest loop has a real alternative to enumerate.
func diamond(t *testing.T) (*lgraph.Graph, lgraph.VertexIndex, lgraph.VertexIndex) {
	t.Helper()
	g := lgraph.New(1)
	dep := g.AddVertex(lgraph.Vertex{Ident: "DEP", Coord: geo.FromDegrees(0, 0)})
	mid1 := g.AddVertex(lgraph.Vertex{Ident: "MID1", Coord: geo.FromDegrees(0, 1)})
	mid2 := g.AddVertex(lgraph.Vertex{Ident: "MID2", Coord: geo.FromDegrees(1, 1)})
	dest := g.AddVertex(lgraph.Vertex{Ident: "DEST", Coord: geo.FromDegrees(0, 2)})

	g.SetMetric(dep, mid1, airway.DCT, metricAll(1, 50), 50, 90)
	g.SetMetric(mid1, dest, airway.DCT, metricAll(1, 50), 50, 90)
	g.SetMetric(dep, mid2, airway.DCT, metricAll(1, 60), 60, 45)
	g.SetMetric(mid2, dest, airway.DCT, metricAll(1, 60), 60, 135)
	return g, dep, dest
}

func TestKShortestFirstIterationFindsOptimal(t *testing.T) {
	g, dep, dest := diamond(t)
	k := NewKShortest(g, flatPerf{}, dep, dest)
	if !k.Start(nil) {
		t.Fatal("expected the base Dijkstra to find a route")
	}
	route, ok := k.Next()
	if !ok {
		t.Fatal("expected a first candidate")
	}
	if route.Dist != 100 {
		t.Errorf("expected the optimal 50+50 route, got dist %v (nodes %v)", route.Dist, route.Nodes)
	}
}

func TestKShortestSecondIterationFindsAlternative(t *testing.T) {
	g, dep, dest := diamond(t)
	k := NewKShortest(g, flatPerf{}, dep, dest)
	k.Start(nil)
	first, _ := k.Next()
	second, ok := k.Next()
	if !ok {
		t.Fatal("expected a second, alternative candidate")
	}
	if second.Dist <= first.Dist {
		t.Errorf("second candidate should be strictly longer than the first: first=%v second=%v", first.Dist, second.Dist)
	}
	if second.Dist != 120 {
		t.Errorf("expected the 60+60 alternative, got %v (nodes %v)", second.Dist, second.Nodes)
	}
}

func TestKShortestInvalidatesPoolOnGraphMutation(t *testing.T) {
	g, dep, dest := diamond(t)
	k := NewKShortest(g, flatPerf{}, dep, dest)
	k.Start(nil)
	if len(k.pool) == 0 {
		t.Fatal("expected a seeded pool")
	}
	g.RemoveEdge(dep, g.VerticesNamed("MID1")[0], airway.DCT)
	if len(k.pool) != 0 {
		t.Error("a graph mutation should flush the candidate pool via the modified hook")
	}
	if k.started {
		t.Error("a graph mutation should reset the started flag")
	}
}
