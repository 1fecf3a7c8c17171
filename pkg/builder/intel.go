// pkg/builder/intel.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// applyPersistentIntel is spec §4.D.6: replay the CFMU intel store
// over the search bbox, disconnecting points previously found to be
// universally forbidden and killing the specific segments previously
// rejected at a given level.
func (b *Builder) applyPersistentIntel(cfg Config) {
	b.Log.Push("intel")
	defer b.Log.Pop()

	if b.Intel == nil {
		return
	}

	for _, p := range b.Intel.PointsInBBox(cfg.SearchBBox) {
		for _, vi := range b.Graph.VerticesNamed(p.Ident) {
			b.Graph.DisconnectVertex(vi)
		}
	}

	for _, seg := range b.Intel.SegmentsInBBox(cfg.SearchBBox) {
		aw := b.Airways.Lookup(seg.Airway, false)
		if aw == airway.MatchNone {
			continue
		}
		for _, u := range b.Graph.VerticesNamed(seg.From) {
			for _, v := range b.Graph.VerticesNamed(seg.To) {
				e := b.Graph.FindEdge(u, v, aw)
				if e == nil || !e.ValidAtLevel(seg.Level) {
					continue
				}
				e.Metric[seg.Level] = lgraph.InvalidMetric
			}
		}
	}
	b.Graph.RemoveInvalidEdges()
}
