// pkg/validator/finalizer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package validator

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/navdb"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
)

// Finalizer is the ground-clearance pass (component K): after the
// validator accepts a route on paper, re-check every solution edge's
// terrain corridor and kill any cruise level that no longer clears
// it, forcing one more validator round if anything changed.
type Finalizer struct {
	G       *lgraph.Graph
	Terrain navdb.Terrain
	Perf    perf.Model
}

// Run re-queries every solution edge's corridor and returns true if
// any level was killed.
func (f *Finalizer) Run() bool {
	work := false
	for _, u := range f.G.Vertices() {
		uv := f.G.Vertex(u)
		for _, out := range f.G.OutEdges(u) {
			if out.Edge.SolutionLevel < 0 {
				continue
			}
			vv := f.G.Vertex(out.To)
			minAlt := navdb.MinAltitudeForTerrain(f.Terrain.MaxElevationCorridor(uv.Coord, vv.Coord))
			for pi := 0; pi < len(out.Edge.Metric); pi++ {
				if !out.Edge.ValidAtLevel(pi) {
					continue
				}
				if f.Perf.LevelAt(pi).AltitudeFt < minAlt {
					out.Edge.Metric[pi] = lgraph.InvalidMetric
					if pi == out.Edge.SolutionLevel {
						out.Edge.SolutionLevel = -1
					}
					work = true
				}
			}
			if rev := f.G.FindEdge(out.To, u, out.Edge.Airway); rev != nil {
				for pi := 0; pi < len(rev.Metric); pi++ {
					if rev.ValidAtLevel(pi) && f.Perf.LevelAt(pi).AltitudeFt < minAlt {
						rev.Metric[pi] = lgraph.InvalidMetric
						work = true
					}
				}
			}
		}
	}
	f.G.RemoveInvalidEdges()
	return work
}
