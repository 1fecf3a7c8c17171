// pkg/search/mandatory.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// Step is one (vertex, level-band, airway-to-next) element of a
// mandatory-crossing sequence.
type Step struct {
	Ident      string
	LevelLo    int
	LevelHi    int
	Airway     airway.Index
}

// Sequence is an ordered list of Steps a route must satisfy in order.
type Sequence []Step

// Alternative is a disjunction of Sequences; satisfying any one of
// them satisfies the whole rule.
type Alternative struct {
	Sequences []Sequence
}

// TerrainClear reports whether a synthesized DCT leg between two
// points clears the terrain, returning its great-circle distance when
// it does. The mandatory-sequence planner calls this only when a step
// demands airway.DCT and no edge already connects the two vertices.
type TerrainClear func(from, to lgraph.VertexIndex) (ok bool, distNM, courseTrue float32)

// Planner runs the mandatory-sequence algorithm (component F) over a
// graph, given a base Dijkstra state reachable from the route's
// source.
type Planner struct {
	G       *lgraph.Graph
	Perf    LevelChanger
	Terrain TerrainClear
}

// entryCandidate is a reachable first-step node of one sequence.
type entryCandidate struct {
	seqIdx int
	node   Node
	dist   float64
}

// Plan satisfies every rule in order, closest-entry-point first,
// returning the final accumulated state or false if some rule could
// not be satisfied at all (spec §4.F.2/§4.F.5's failure cases).
func (p *Planner) Plan(source Node, rules []Alternative) (*State, bool) {
	base := NewDijkstra(p.G, p.Perf)
	base.OnlyAirway = airway.MatchDCTAwySIDSTAR
	base.Run(source, Node{}, false)
	cur := base.State

	remaining := append([]Alternative(nil), rules...)
	for len(remaining) > 0 {
		bestRule := -1
		var bestDist float64
		for ri, rule := range remaining {
			_, _, dist, ok := p.closestEntry(cur, rule)
			if !ok {
				continue
			}
			if bestRule < 0 || dist < bestDist {
				bestRule, bestDist = ri, dist
			}
		}
		if bestRule < 0 {
			return cur, false
		}

		next, ok := p.satisfyRule(cur, remaining[bestRule])
		if !ok {
			return cur, false
		}
		cur = next
		remaining = append(remaining[:bestRule], remaining[bestRule+1:]...)

		if !p.anyGray(cur) {
			return cur, len(remaining) == 0
		}
	}
	return cur, true
}

func (p *Planner) anyGray(s *State) bool {
	for _, ns := range s.nodes {
		if ns.color == Gray {
			return true
		}
	}
	return false
}

// closestEntry finds, across every sequence in rule, the reachable
// first step with the smallest current distance.
func (p *Planner) closestEntry(s *State, rule Alternative) (seqIdx int, node Node, dist float64, ok bool) {
	best := -1
	var bestNode Node
	var bestDist float64
	for si, seq := range rule.Sequences {
		if len(seq) == 0 {
			continue
		}
		for _, cand := range p.matchingNodes(s, seq[0]) {
			if s.Color(cand) == White {
				continue
			}
			d := s.Dist(cand)
			if best < 0 || d < bestDist {
				best, bestNode, bestDist = si, cand, d
			}
		}
	}
	if best < 0 {
		return 0, Node{}, 0, false
	}
	return best, bestNode, bestDist, true
}

func (p *Planner) matchingNodes(s *State, step Step) []Node {
	var out []Node
	for _, vi := range p.G.VerticesNamed(step.Ident) {
		for lvl := step.LevelLo; lvl <= step.LevelHi; lvl++ {
			out = append(out, Node{Vertex: vi, Level: lvl})
		}
	}
	return out
}

// satisfyRule runs spec §4.F steps 3-4 for one rule: restrict cur to
// the paths reaching any of the rule's entry points, then walk every
// sequence from a cloned branch, accumulating the gray frontier of
// whichever sequences complete.
func (p *Planner) satisfyRule(cur *State, rule Alternative) (*State, bool) {
	var entries []Node
	for _, seq := range rule.Sequences {
		if len(seq) == 0 {
			continue
		}
		for _, cand := range p.matchingNodes(cur, seq[0]) {
			if cur.Color(cand) != White {
				entries = append(entries, cand)
			}
		}
	}
	if len(entries) == 0 {
		return cur, false
	}

	cur.MarkAllWhite()
	for _, e := range entries {
		cur.MarkPath(e)
	}
	cur.MarkWhiteInfiniteSelfpred()
	cur.RebuildQueue()

	accumulator := NewState(p.G, p.Perf)
	satisfied := false
	for _, seq := range rule.Sequences {
		if len(seq) == 0 {
			continue
		}
		seqState := cur.Clone()
		entryFound := false
		for _, cand := range p.matchingNodes(seqState, seq[0]) {
			if seqState.Color(cand) != White {
				entryFound = true
				break
			}
		}
		if !entryFound {
			continue
		}

		if p.walkSequence(seqState, seq) {
			accumulator.CopyGrayPaths(seqState)
			satisfied = true
		}
	}
	if !satisfied {
		return cur, false
	}
	return accumulator, true
}

// walkSequence steps through seq, at each step marking the path to
// every level within the step's band, re-infiniting the rest, and
// relaxing constrained to the step's airway toward the next step's
// vertex (or toward the graph at large on the final step).
func (p *Planner) walkSequence(s *State, seq Sequence) bool {
	for i, step := range seq {
		var frontier []Node
		for lvl := step.LevelLo; lvl <= step.LevelHi; lvl++ {
			for _, vi := range p.G.VerticesNamed(step.Ident) {
				n := Node{Vertex: vi, Level: lvl}
				if s.Color(n) != White {
					s.MarkPath(n)
					frontier = append(frontier, n)
				}
			}
		}
		if len(frontier) == 0 {
			return false
		}
		s.MarkWhiteInfiniteSelfpred()
		s.RebuildQueue()

		if step.Airway == airway.DCT && i+1 < len(seq) {
			p.synthesizeDCTIfNeeded(frontier, seq[i+1])
		}

		d := &Dijkstra{G: p.G, State: s, OnlyAirway: step.Airway}
		var dest Node
		hasDest := false
		if i+1 < len(seq) {
			for _, vi := range p.G.VerticesNamed(seq[i+1].Ident) {
				dest = Node{Vertex: vi, Level: seq[i+1].LevelLo}
				hasDest = true
				break
			}
		}
		for _, n := range frontier {
			d.Run(n, dest, hasDest)
		}
	}
	return true
}

// synthesizeDCTIfNeeded adds a direct edge between every frontier
// vertex and the next step's vertex when none exists and the terrain
// collaborator clears it, per spec §4.F.4.b.
func (p *Planner) synthesizeDCTIfNeeded(frontier []Node, next Step) {
	if p.Terrain == nil {
		return
	}
	targets := p.G.VerticesNamed(next.Ident)
	seen := map[lgraph.VertexIndex]bool{}
	for _, f := range frontier {
		if seen[f.Vertex] {
			continue
		}
		seen[f.Vertex] = true
		for _, t := range targets {
			if p.G.FindEdge(f.Vertex, t, airway.DCT) != nil {
				continue
			}
			ok, distNM, course := p.Terrain(f.Vertex, t)
			if !ok {
				continue
			}
			metric := make([]float32, p.G.NumLevels())
			for i := range metric {
				metric[i] = distNM
			}
			p.G.SetMetric(f.Vertex, t, airway.DCT, metric, distNM, course)
		}
	}
}
