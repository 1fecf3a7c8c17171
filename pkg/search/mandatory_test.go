// pkg/search/mandatory_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"testing"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

func TestPlannerSatisfiesSingleStepRule(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	klo := g.AddVertex(lgraph.Vertex{Ident: "KLO", Coord: geo.FromDegrees(0, 1)})
	dest := g.AddVertex(lgraph.Vertex{Ident: "DEST", Coord: geo.FromDegrees(0, 2)})
	tbl := airway.NewTable()
	aw := tbl.Lookup("N1", true)
	g.SetMetric(a, klo, airway.DCT, metricAll(2, 50), 50, 90)
	g.SetMetric(klo, dest, aw, metricAll(2, 50), 50, 90)

	rule := Alternative{Sequences: []Sequence{
		{{Ident: "KLO", LevelLo: 0, LevelHi: 1, Airway: airway.MatchAll}},
	}}

	p := &Planner{G: g, Perf: flatPerf{}}
	final, ok := p.Plan(Node{Vertex: a, Level: 0}, []Alternative{rule})
	if !ok {
		t.Fatal("expected the rule to be satisfiable")
	}
	path := final.PathTo(Node{Vertex: dest, Level: 0}, Node{}, false)
	foundKLO := false
	for _, n := range path {
		if n.Vertex == klo {
			foundKLO = true
		}
	}
	if !foundKLO {
		t.Errorf("expected the accepted route to cross KLO, got %v", path)
	}
}

func TestPlannerFailsWhenEntryUnreachable(t *testing.T) {
	g := lgraph.New(2)
	a := g.AddVertex(lgraph.Vertex{Ident: "ALPHA", Coord: geo.FromDegrees(0, 0)})
	_ = g.AddVertex(lgraph.Vertex{Ident: "ISOLATED", Coord: geo.FromDegrees(5, 5)})

	rule := Alternative{Sequences: []Sequence{
		{{Ident: "ISOLATED", LevelLo: 0, LevelHi: 1, Airway: airway.MatchAll}},
	}}
	p := &Planner{G: g, Perf: flatPerf{}}
	_, ok := p.Plan(Node{Vertex: a, Level: 0}, []Alternative{rule})
	if ok {
		t.Error("expected failure: ISOLATED is never reached from ALPHA")
	}
}
