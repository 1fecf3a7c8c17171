// pkg/search/state.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package search implements the multi-level Dijkstra core (component
// E), the mandatory-sequence planner (component F) and the
// k-shortest-path loop (component G) over an lgraph.Graph.
package search

import (
	"container/heap"
	"math"

	"github.com/brunoga/deep"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// Color is a node's Dijkstra tri-state.
type Color int

const (
	White Color = iota
	Gray
	Black
)

// Node is one (vertex, level) product-space entry.
type Node struct {
	Vertex lgraph.VertexIndex
	Level  int
}

// nodeState is the per-node Dijkstra bookkeeping.
type nodeState struct {
	color    Color
	dist     float64
	predV    lgraph.VertexIndex
	predL    int
	predAirway airway.Index
}

// State is the state vector over the product space vertex×level, plus
// the priority queue and graph reference the relaxation step needs.
type State struct {
	g      *lgraph.Graph
	levels int
	nodes  map[Node]*nodeState
	pq     priorityQueue
	perf   LevelChanger
}

// LevelChanger is the aircraft-performance collaborator's subset the
// search needs: the metric/track-nmi cost of changing cruise level.
type LevelChanger interface {
	LevelChange(piFrom, piTo int) (metric float32, minTrackNM float32)
}

// NewState returns a State with every node white, distance +Inf, and
// self-predecessor (spec §4.E's initialisation).
func NewState(g *lgraph.Graph, perf LevelChanger) *State {
	return &State{g: g, levels: g.NumLevels(), nodes: make(map[Node]*nodeState), perf: perf}
}

func (s *State) get(n Node) *nodeState {
	ns, ok := s.nodes[n]
	if !ok {
		ns = &nodeState{color: White, dist: math.Inf(1), predV: n.Vertex, predL: n.Level}
		s.nodes[n] = ns
	}
	return ns
}

// Color returns n's current color.
func (s *State) Color(n Node) Color { return s.get(n).color }

// Dist returns n's current distance.
func (s *State) Dist(n Node) float64 { return s.get(n).dist }

// Seed sets source gray with distance 0 and enqueues it.
func (s *State) Seed(source Node) {
	ns := s.get(source)
	ns.color = Gray
	ns.dist = 0
	ns.predV, ns.predL = source.Vertex, source.Level
	heap.Push(&s.pq, &pqItem{node: source, dist: 0})
}

// MarkAllWhite resets every tracked node to white without touching
// distance/predecessor.
func (s *State) MarkAllWhite() {
	for _, ns := range s.nodes {
		ns.color = White
	}
}

// MarkWhiteInfinite resets every white node's distance to +Inf,
// leaving gray/black untouched.
func (s *State) MarkWhiteInfinite() {
	for _, ns := range s.nodes {
		if ns.color == White {
			ns.dist = math.Inf(1)
		}
	}
}

// MarkWhiteSelfpred resets every white node's predecessor to itself.
func (s *State) MarkWhiteSelfpred() {
	for n, ns := range s.nodes {
		if ns.color == White {
			ns.predV, ns.predL = n.Vertex, n.Level
		}
	}
}

// MarkWhiteInfiniteSelfpred combines the two resets above.
func (s *State) MarkWhiteInfiniteSelfpred() {
	for n, ns := range s.nodes {
		if ns.color == White {
			ns.dist = math.Inf(1)
			ns.predV, ns.predL = n.Vertex, n.Level
		}
	}
}

// MarkPath walks predecessors from v to a self-predecessor root,
// colouring every interior node black and the leaf (v) gray.
func (s *State) MarkPath(v Node) {
	cur := v
	first := true
	for {
		ns := s.get(cur)
		if first {
			ns.color = Gray
			first = false
		} else {
			ns.color = Black
		}
		next := Node{Vertex: ns.predV, Level: ns.predL}
		if next == cur {
			break
		}
		cur = next
	}
}

// CopyGrayPaths imports every gray node from src into s when src's
// distance strictly improves on s's (or s has none yet).
func (s *State) CopyGrayPaths(src *State) {
	for n, srcNS := range src.nodes {
		if srcNS.color != Gray {
			continue
		}
		dstNS := s.get(n)
		if dstNS.color == White || srcNS.dist < dstNS.dist {
			*dstNS = *srcNS
		}
	}
}

// RebuildQueue reconstructs the priority queue from every currently
// gray node, used after a round of bulk state edits.
func (s *State) RebuildQueue() {
	s.pq = s.pq[:0]
	heap.Init(&s.pq)
	for n, ns := range s.nodes {
		if ns.color == Gray {
			heap.Push(&s.pq, &pqItem{node: n, dist: ns.dist})
		}
	}
}

// Clone returns a deep copy of s, used by the mandatory-sequence
// planner to branch state per sequence (spec §4.F.4.a). The node
// bookkeeping map is deep-copied (each sequence must mutate its own
// predecessor chains without aliasing the others); the graph and
// performance-model references are shared, since both are read-only
// from the search's point of view.
func (s *State) Clone() *State {
	nodes, err := deep.Copy(s.nodes)
	if err != nil {
		panic(err)
	}
	c := &State{g: s.g, levels: s.levels, perf: s.perf, nodes: nodes}
	c.RebuildQueue()
	return c
}

// PathTo walks predecessors from dest back to stopAt (or to a
// self-predecessor root if stopAt is the zero Node and never
// reached), returning the node sequence from source to dest.
func (s *State) PathTo(dest Node, stopAt Node, hasStopAt bool) []Node {
	var rev []Node
	cur := dest
	for {
		rev = append(rev, cur)
		ns := s.get(cur)
		next := Node{Vertex: ns.predV, Level: ns.predL}
		if hasStopAt && cur == stopAt {
			break
		}
		if next == cur {
			break
		}
		cur = next
	}
	out := make([]Node, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}
