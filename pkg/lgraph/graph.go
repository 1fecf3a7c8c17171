// pkg/lgraph/graph.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package lgraph implements the layered graph model (component C): a
// directed multigraph whose vertices are significant points and
// whose edges carry a per-cruise-level metric array. The adjacency
// shape (nested maps keyed by endpoint, one entry per airway index,
// per invariant I4's "at most one edge of a given airway index
// between any pair") follows the style the pack's graph-library
// example (lvlath/core) uses for its own adjacencyList, adapted from
// a generic edge-ID keyed map down to an airway.Index-keyed one since
// our uniqueness key *is* the airway index rather than an opaque
// edge ID.
package lgraph

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/navdb"
)

// VertexIndex identifies a Vertex within one Graph.
type VertexIndex int

// Invalid is returned by lookups that failed.
const Invalid VertexIndex = -1

// InvalidMetric marks an edge as not valid at a given level.
const InvalidMetric float32 = -1

// Vertex is a significant point: an airport, navaid, ICAO
// intersection, user waypoint or map element.
type Vertex struct {
	Ident string
	Coord geo.Point
	Obj   navdb.Object
}

// Edge is a directed connection between two vertices at a specific
// airway index, carrying a per-level metric array.
type Edge struct {
	Airway   airway.Index
	Metric   []float32 // length L; InvalidMetric marks "not valid at this level"
	DistNM   float32
	CourseTrue float32

	// Solution marks a level currently chosen on a proposed route, and
	// whether this edge is filtered out of consideration during
	// k-shortest-path branch exploration (component G).
	SolutionLevel int // -1 if this edge is not on the current solution
	Filtered      bool
}

// ValidAtLevel reports whether e is usable at cruise-level index pi.
func (e *Edge) ValidAtLevel(pi int) bool {
	return pi >= 0 && pi < len(e.Metric) && e.Metric[pi] != InvalidMetric
}

// Valid reports whether e is usable at any level.
func (e *Edge) Valid() bool {
	for _, m := range e.Metric {
		if m != InvalidMetric {
			return true
		}
	}
	return false
}

type edgeKey struct {
	to VertexIndex
	aw airway.Index
}

// Graph is the per-search L-graph.
type Graph struct {
	vertices []Vertex
	byIdent  map[string][]VertexIndex

	out []map[edgeKey]*Edge // out[u][{v,airway}] = edge
	in  []map[VertexIndex]map[airway.Index]*Edge

	numLevels int

	onModified func()
}

// New returns an empty graph with an L-level metric ladder.
func New(numLevels int) *Graph {
	return &Graph{
		byIdent:   make(map[string][]VertexIndex),
		numLevels: numLevels,
	}
}

// NumLevels returns the cruise-level ladder length.
func (g *Graph) NumLevels() int { return g.numLevels }

// OnModified installs the callback that SetMetric, RemoveEdge (and so
// RemoveInvalidEdges), DisconnectVertex and Clear invoke; per spec §3
// this is used to flush the k-shortest-path pool and solution tree.
// AddVertex and writes made directly into an Edge's Metric slice do
// not invoke it.
func (g *Graph) OnModified(f func()) { g.onModified = f }

func (g *Graph) modified() {
	if g.onModified != nil {
		g.onModified()
	}
}

// AddVertex adds v to the graph and returns its index. Identifier
// lookups remain consistent with the vertex set, per invariant I6.
func (g *Graph) AddVertex(v Vertex) VertexIndex {
	idx := VertexIndex(len(g.vertices))
	g.vertices = append(g.vertices, v)
	g.out = append(g.out, make(map[edgeKey]*Edge))
	g.in = append(g.in, make(map[VertexIndex]map[airway.Index]*Edge))
	g.byIdent[v.Ident] = append(g.byIdent[v.Ident], idx)
	return idx
}

// Vertex returns the vertex at idx.
func (g *Graph) Vertex(idx VertexIndex) *Vertex {
	if idx < 0 || int(idx) >= len(g.vertices) {
		return nil
	}
	return &g.vertices[idx]
}

// VertexCount returns the number of vertices (live or disconnected).
func (g *Graph) VertexCount() int { return len(g.vertices) }

// Vertices iterates over all vertex indices.
func (g *Graph) Vertices() []VertexIndex {
	idxs := make([]VertexIndex, len(g.vertices))
	for i := range idxs {
		idxs[i] = VertexIndex(i)
	}
	return idxs
}

// VerticesNamed returns every vertex index sharing the given
// identifier.
func (g *Graph) VerticesNamed(ident string) []VertexIndex {
	return g.byIdent[ident]
}

// SetMetric installs (or merges, per invariant I4) an edge from u to
// v at the given airway index. If an edge already exists for
// (u,v,airway), the per-level metric is merged by elementwise min and
// the stored distance and course are kept. SetMetric does not apply
// the DCT-preference rule (invariant I5); SuppressDCTWherePreferred
// does that as a separate pass.
func (g *Graph) SetMetric(u, v VertexIndex, aw airway.Index, metric []float32, distNM, courseTrue float32) *Edge {
	k := edgeKey{to: v, aw: aw}
	if e, ok := g.out[u][k]; ok {
		for i := range e.Metric {
			if metric[i] == InvalidMetric {
				continue
			}
			if e.Metric[i] == InvalidMetric || metric[i] < e.Metric[i] {
				e.Metric[i] = metric[i]
			}
		}
		g.modified()
		return e
	}

	e := &Edge{
		Airway:        aw,
		Metric:        append([]float32(nil), metric...),
		DistNM:        distNM,
		CourseTrue:    courseTrue,
		SolutionLevel: -1,
	}
	g.out[u][k] = e
	if g.in[v][u] == nil {
		g.in[v][u] = make(map[airway.Index]*Edge)
	}
	g.in[v][u][aw] = e
	g.modified()
	return e
}

// FindEdge returns the first out-edge of u to v whose airway index
// matches the wildcard m (ordering among multiple matches is
// unspecified), or nil.
func (g *Graph) FindEdge(u, v VertexIndex, m airway.Index) *Edge {
	for k, e := range g.out[u] {
		if k.to == v && airway.Matches(k.aw, m) {
			return e
		}
	}
	return nil
}

// OutEdges returns every out-edge of u together with its target.
func (g *Graph) OutEdges(u VertexIndex) []struct {
	To   VertexIndex
	Edge *Edge
} {
	out := make([]struct {
		To   VertexIndex
		Edge *Edge
	}, 0, len(g.out[u]))
	for k, e := range g.out[u] {
		out = append(out, struct {
			To   VertexIndex
			Edge *Edge
		}{To: k.to, Edge: e})
	}
	return out
}

// InEdges returns every in-edge of v together with its source.
func (g *Graph) InEdges(v VertexIndex) []struct {
	From VertexIndex
	Edge *Edge
} {
	in := make([]struct {
		From VertexIndex
		Edge *Edge
	}, 0)
	for from, byAw := range g.in[v] {
		for _, e := range byAw {
			in = append(in, struct {
				From VertexIndex
				Edge *Edge
			}{From: from, Edge: e})
		}
	}
	return in
}

// RemoveEdge removes the edge (u,v,aw), if present.
func (g *Graph) RemoveEdge(u, v VertexIndex, aw airway.Index) {
	k := edgeKey{to: v, aw: aw}
	if _, ok := g.out[u][k]; !ok {
		return
	}
	delete(g.out[u], k)
	if byAw := g.in[v][u]; byAw != nil {
		delete(byAw, aw)
		if len(byAw) == 0 {
			delete(g.in[v], u)
		}
	}
	g.modified()
}

// DisconnectVertex removes every edge incident to v, in either
// direction, per §4.D.6's forbidden-point handling and §4.I's
// vertex-kill recipe.
func (g *Graph) DisconnectVertex(v VertexIndex) {
	for k := range g.out[v] {
		if byAw := g.in[k.to][v]; byAw != nil {
			delete(byAw, k.aw)
			if len(byAw) == 0 {
				delete(g.in[k.to], v)
			}
		}
	}
	g.out[v] = make(map[edgeKey]*Edge)
	for from, byAw := range g.in[v] {
		for aw := range byAw {
			delete(g.out[from], edgeKey{to: v, aw: aw})
		}
	}
	g.in[v] = make(map[VertexIndex]map[airway.Index]*Edge)
	g.modified()
}

// RemoveInvalidEdges deletes every edge with no valid level, per
// spec §3's "Edges with no valid level are collected and removed
// after each mutation pass."
func (g *Graph) RemoveInvalidEdges() {
	for u := range g.out {
		for k, e := range g.out[VertexIndex(u)] {
			if !e.Valid() {
				g.RemoveEdge(VertexIndex(u), k.to, k.aw)
			}
		}
	}
}

// Clear empties the graph back to zero vertices/edges.
func (g *Graph) Clear() {
	g.vertices = nil
	g.byIdent = make(map[string][]VertexIndex)
	g.out = nil
	g.in = nil
	g.modified()
}
