// pkg/search/dijkstra.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"container/heap"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// Dijkstra runs the multi-level shortest-path relaxation (component E)
// over a Graph, tracking visited identifiers so the no-repeated-point
// heuristic (spec §4.E's duplicate-identifier pruning) can reject a
// candidate edge before it is ever relaxed.
type Dijkstra struct {
	G     *lgraph.Graph
	State *State

	// SeenIdent, when non-nil, is consulted before every relaxation:
	// an edge whose target identifier is already present is skipped,
	// unless the target shares the identifier of the vertex being
	// expanded.
	// The k-shortest-path loop (component G) and the mandatory-sequence
	// planner (component F) populate this per in-flight candidate.
	SeenIdent map[string]bool

	// OnlyAirway restricts relaxation to edges matching this index
	// (airway.MatchAll by default, i.e. unrestricted). The
	// mandatory-sequence planner (component F) sets this to a
	// specific step's airway for the duration of one sequence step.
	OnlyAirway airway.Index
}

// NewDijkstra returns a Dijkstra ready to search g.
func NewDijkstra(g *lgraph.Graph, perf LevelChanger) *Dijkstra {
	return &Dijkstra{G: g, State: NewState(g, perf), OnlyAirway: airway.MatchAll}
}

// Run executes the relaxation loop from source until the queue
// drains, or until dest is popped black (when hasDest is true) for an
// early exit once the optimal distance to dest is finalised.
func (d *Dijkstra) Run(source Node, dest Node, hasDest bool) {
	d.State.Seed(source)
	pq := &d.State.pq

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		u := item.node
		us := d.State.get(u)
		if us.color == Black {
			continue
		}
		if item.dist > us.dist {
			continue // stale entry
		}
		us.color = Black

		if hasDest && u == dest {
			return
		}

		d.relaxFrom(u, us)
	}
}

// relaxFrom relaxes every valid out-edge of u across every level
// reachable from u's current cruise level, adding the level-change
// metric from LevelChanger when the level itself changes mid-route and
// rejecting the change when the edge is shorter than the track-nmi it
// requires.
func (d *Dijkstra) relaxFrom(u Node, us *nodeState) {
	uv := d.G.Vertex(u.Vertex)
	for _, out := range d.G.OutEdges(u.Vertex) {
		if out.Edge.Filtered {
			continue
		}
		if !airway.Matches(out.Edge.Airway, d.OnlyAirway) {
			continue
		}
		vv := d.G.Vertex(out.To)
		if d.SeenIdent != nil && d.SeenIdent[vv.Ident] && vv.Ident != uv.Ident {
			continue
		}

		for piv := 0; piv < len(out.Edge.Metric); piv++ {
			if !d.G.IsValidConnection(u.Vertex, out.To, u.Level, piv, out.Edge) {
				continue
			}
			cost := float64(edgeCost(out.Edge, u.Level, piv))

			var lvlCost float64
			if piv != u.Level && d.State.perf != nil {
				lc, minTrk := d.State.perf.LevelChange(u.Level, piv)
				if minTrk > out.Edge.DistNM {
					continue // edge too short to complete the level change
				}
				lvlCost = float64(lc)
			}

			vNode := Node{Vertex: out.To, Level: piv}
			vs := d.State.get(vNode)
			if vs.color == Black {
				continue
			}
			nd := us.dist + cost + lvlCost
			if vs.color == White || nd < vs.dist {
				vs.color = Gray
				vs.dist = nd
				vs.predV, vs.predL = u.Vertex, u.Level
				vs.predAirway = out.Edge.Airway
				heap.Push(&d.State.pq, &pqItem{node: vNode, dist: nd})
			}
		}
	}
}

// edgeCost returns e's metric for the traversal from piu to piv,
// preferring the metric recorded at the edge's own entry level.
func edgeCost(e *lgraph.Edge, piu, piv int) float32 {
	if e.ValidAtLevel(piu) {
		return e.Metric[piu]
	}
	return e.Metric[piv]
}
