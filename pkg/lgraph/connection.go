// pkg/lgraph/connection.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package lgraph

import "github.com/tsailer/vfrnav-public-sub016/pkg/airway"

// IsValidConnection is the pruning predicate used by the search
// (component E): given the cruise-level index before traversing e
// (piu) and after (piv), decide whether the traversal is permitted.
// See spec §4.C.
func (g *Graph) IsValidConnection(u, v VertexIndex, piu, piv int, e *Edge) bool {
	switch e.Airway {
	case airway.SID:
		return e.ValidAtLevel(piv)
	case airway.STAR:
		return e.ValidAtLevel(piu)
	default:
		// DCT or a named airway.
		if !e.ValidAtLevel(piu) {
			return false
		}
		if piu == piv {
			return true
		}
		lo, hi := piu, piv
		if lo > hi {
			lo, hi = hi, lo
		}
		for pi := lo; pi <= hi; pi++ {
			if e.ValidAtLevel(pi) {
				continue
			}
			if e.Airway == airway.DCT && g.hasValidParallelAirway(u, v, pi) {
				continue
			}
			return false
		}
		return true
	}
}

// hasValidParallelAirway reports whether some named-airway edge from
// u to v is valid at level pi, used by IsValidConnection to permit a
// mid-DCT-edge level change when an airway covers the gap.
func (g *Graph) hasValidParallelAirway(u, v VertexIndex, pi int) bool {
	for k, e := range g.out[u] {
		if k.to == v && k.aw.IsNamed() && e.ValidAtLevel(pi) {
			return true
		}
	}
	return false
}

// SuppressDCTWherePreferred enforces invariant I5/property P6: for
// every (u,v,pi) where a named-airway edge is valid, any DCT edge on
// the same ordered pair is invalidated at that level, since airways
// are always preferred over DCT. Called by the builder after the
// ingest and DCT-adding passes.
func (g *Graph) SuppressDCTWherePreferred() {
	for u := range g.out {
		uu := VertexIndex(u)
		for k, e := range g.out[uu] {
			if !k.aw.IsNamed() {
				continue
			}
			dctEdge, ok := g.out[uu][edgeKey{to: k.to, aw: airway.DCT}]
			if !ok {
				continue
			}
			for pi := range e.Metric {
				if e.ValidAtLevel(pi) && dctEdge.ValidAtLevel(pi) {
					dctEdge.Metric[pi] = InvalidMetric
				}
			}
		}
	}
	g.RemoveInvalidEdges()
}
