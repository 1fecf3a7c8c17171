// pkg/search/kshortest.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package search

import (
	"sort"

	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// DefaultPoolLimit bounds the k-shortest-path candidate pool (spec
// §4.G: "e.g. 16,384").
const DefaultPoolLimit = 16384

// Route is one proposed candidate, in source-to-destination order.
type Route struct {
	Nodes []Node
	Dist  float64
}

// KShortest drives the Yen-style enumeration loop (component G) over
// a single Graph, owning the solution tree and candidate pool it
// mutates across iterations.
type KShortest struct {
	G          *lgraph.Graph
	Perf       LevelChanger
	Vdep, Vdest lgraph.VertexIndex
	PoolLimit  int

	pool    []Route
	tree    *solutionTree
	current Route
	started bool
}

// NewKShortest returns a loop ready for Start.
func NewKShortest(g *lgraph.Graph, perf LevelChanger, vdep, vdest lgraph.VertexIndex) *KShortest {
	k := &KShortest{G: g, Perf: perf, Vdep: vdep, Vdest: vdest, PoolLimit: DefaultPoolLimit, tree: newSolutionTree()}
	g.OnModified(k.invalidate)
	return k
}

// invalidate is the "modified" hook (spec §3/§5): it flushes the pool
// and the solution tree, since prior distances and branch records may
// no longer hold over the mutated graph.
func (k *KShortest) invalidate() {
	k.pool = nil
	k.tree = newSolutionTree()
	k.started = false
}

// Start runs the initial Dijkstra (optionally honouring a mandatory
// alternative list via the Planner) and seeds the pool with it.
func (k *KShortest) Start(rules []Alternative) bool {
	var final *State
	if len(rules) > 0 {
		p := &Planner{G: k.G, Perf: k.Perf}
		var ok bool
		final, ok = p.Plan(Node{Vertex: k.Vdep, Level: 0}, rules)
		if !ok {
			return false
		}
	} else {
		d := NewDijkstra(k.G, k.Perf)
		d.OnlyAirway = airway.MatchAll
		d.Run(Node{Vertex: k.Vdep, Level: 0}, Node{}, false)
		final = d.State
	}

	best, ok := bestAtVertex(final, k.Vdest)
	if !ok {
		return false
	}
	route := Route{Nodes: final.PathTo(best, Node{}, false), Dist: final.Dist(best)}
	k.pool = append(k.pool, route)
	k.started = true
	return true
}

// bestAtVertex returns the least-distance reached Node at vertex v
// across every level.
func bestAtVertex(s *State, v lgraph.VertexIndex) (Node, bool) {
	found := false
	var best Node
	var bestDist float64
	for pi := 0; pi < s.levels; pi++ {
		n := Node{Vertex: v, Level: pi}
		if s.Color(n) == White {
			continue
		}
		d := s.Dist(n)
		if !found || d < bestDist {
			found, best, bestDist = true, n, d
		}
	}
	return best, found
}

// Next pops the best remaining candidate, expands it per spec §4.G,
// and returns it. ok is false once the pool is exhausted.
func (k *KShortest) Next() (Route, bool) {
	for len(k.pool) > 0 {
		sort.Slice(k.pool, func(i, j int) bool { return k.pool[i].Dist < k.pool[j].Dist })
		route := k.pool[0]
		k.pool = k.pool[1:]
		if !k.routeStillValid(route) {
			continue
		}
		k.tree.insert(route)
		k.expand(route)
		k.trimPool()
		return route, true
	}
	return Route{}, false
}

func (k *KShortest) routeStillValid(r Route) bool {
	for i := 0; i+1 < len(r.Nodes); i++ {
		u, v := r.Nodes[i], r.Nodes[i+1]
		e := k.G.FindEdge(u.Vertex, v.Vertex, airway.MatchAll)
		if e == nil || (!e.ValidAtLevel(u.Level) && !e.ValidAtLevel(v.Level)) {
			return false
		}
	}
	return true
}

// expand implements the per-prefix branch exploration of spec §4.G.
func (k *KShortest) expand(route Route) {
	for i := 0; i+1 < len(route.Nodes); i++ {
		prefix := route.Nodes[:i+1]
		endpoint := route.Nodes[i]

		excluded := k.tree.branches(prefix)
		excluded[route.Nodes[i+1].Vertex] = true

		var unfilter []*lgraph.Edge
		for ex := range excluded {
			if e := k.G.FindEdge(endpoint.Vertex, ex, airway.MatchAll); e != nil && !e.Filtered {
				e.Filtered = true
				unfilter = append(unfilter, e)
			}
		}
		for _, vi := range k.G.VerticesNamed(k.G.Vertex(endpoint.Vertex).Ident) {
			if vi == endpoint.Vertex {
				continue
			}
			for _, out := range k.G.OutEdges(vi) {
				if !out.Edge.Filtered {
					out.Edge.Filtered = true
					unfilter = append(unfilter, out.Edge)
				}
			}
		}

		seen := map[string]bool{}
		for _, n := range prefix {
			seen[k.G.Vertex(n.Vertex).Ident] = true
		}

		d := NewDijkstra(k.G, k.Perf)
		d.OnlyAirway = airway.MatchAll
		d.SeenIdent = seen
		d.Run(endpoint, Node{Vertex: k.Vdest}, false)

		for _, e := range unfilter {
			e.Filtered = false
		}

		if best, ok := bestAtVertex(d.State, k.Vdest); ok {
			tail := d.State.PathTo(best, endpoint, true)
			candidate := append(append([]Node(nil), prefix[:len(prefix)-1]...), tail...)
			dist := k.prefixDist(prefix) + d.State.Dist(best)
			k.pool = append(k.pool, Route{Nodes: candidate, Dist: dist})
		}

		k.tree.recordBranch(prefix, route.Nodes[i+1].Vertex)
	}
}

// prefixDist sums the edge metric (plus any level-change cost) along
// nodes, used to price a candidate whose tail came from a fresh
// Dijkstra run rooted partway through the original route.
func (k *KShortest) prefixDist(nodes []Node) float64 {
	var total float64
	for i := 0; i+1 < len(nodes); i++ {
		u, v := nodes[i], nodes[i+1]
		e := k.G.FindEdge(u.Vertex, v.Vertex, airway.MatchAll)
		if e == nil {
			continue
		}
		total += float64(edgeCost(e, u.Level, v.Level))
		if v.Level != u.Level && k.Perf != nil {
			lc, _ := k.Perf.LevelChange(u.Level, v.Level)
			total += float64(lc)
		}
	}
	return total
}

// trimPool bounds the candidate pool to PoolLimit, discarding the
// worst entries.
func (k *KShortest) trimPool() {
	if k.PoolLimit <= 0 || len(k.pool) <= k.PoolLimit {
		return
	}
	sort.Slice(k.pool, func(i, j int) bool { return k.pool[i].Dist < k.pool[j].Dist })
	k.pool = k.pool[:k.PoolLimit]
}
