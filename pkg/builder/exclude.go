// pkg/builder/exclude.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
)

// excludeRegions is spec §4.D.3: for every configured exclude region,
// penalize or invalidate every edge whose segment intersects the
// region within the region's level band.
func (b *Builder) excludeRegions(cfg Config) {
	b.Log.Push("exclude")
	defer b.Log.Pop()

	for _, region := range cfg.ExcludeRegions {
		b.applyExcludeRegion(region)
	}
	b.Graph.RemoveInvalidEdges()
}

func (b *Builder) applyExcludeRegion(region ExcludeRegion) {
	levels := b.levelsInBand(region.LevelBandLoFt, region.LevelBandHiFt)
	if len(levels) == 0 {
		return
	}

	for _, uu := range b.Graph.Vertices() {
		uv := b.Graph.Vertex(uu)
		for _, out := range b.Graph.OutEdges(uu) {
			v := b.Graph.Vertex(out.To)
			if !b.regionIntersectsSegment(region, uv.Coord, v.Coord) {
				continue
			}
			penalizeEdge(out.Edge, region, levels)
		}
	}
}

// regionIntersectsSegment reports whether the segment p0-p1 crosses
// region's bounding box and, if the region names an airspace rather
// than a bare box, the airspace's own polygon.
func (b *Builder) regionIntersectsSegment(region ExcludeRegion, p0, p1 geo.Point) bool {
	if region.AirspaceIdent == "" {
		return region.BBox.IntersectsSegment(p0, p1)
	}
	if !region.BBox.IntersectsSegment(p0, p1) {
		return false
	}
	a := b.Airspaces.Find(region.AirspaceIdent, region.AirspaceClass, region.AirspaceTypecode)
	if a == nil {
		return false
	}
	return b.Airspaces.IsIntersect(a, p0, p1, []int{region.LevelBandLoFt}, []int{region.LevelBandHiFt})
}

func (b *Builder) levelsInBand(loFt, hiFt int) []int {
	var out []int
	for pi := 0; pi < b.Perf.NumLevels(); pi++ {
		alt := b.Perf.LevelAt(pi).AltitudeFt
		if alt >= loFt && alt <= hiFt {
			out = append(out, pi)
		}
	}
	return out
}

// penalizeEdge applies the scale/limit rules of spec §4.D.3 to e at
// the given levels: a DCT edge under the DCT-limit is scaled (a
// penalty) and otherwise invalidated; an airway edge under the
// AWY-limit is left untouched and otherwise invalidated.
func penalizeEdge(e *lgraph.Edge, region ExcludeRegion, levels []int) {
	for _, pi := range levels {
		if !e.ValidAtLevel(pi) {
			continue
		}
		if e.Airway == airway.DCT {
			if e.Metric[pi] <= region.DCTLimit {
				e.Metric[pi] = e.Metric[pi]*region.DCTScale + region.DCTOffset
			} else {
				e.Metric[pi] = lgraph.InvalidMetric
			}
			continue
		}
		if e.Metric[pi] > region.AwyLimit {
			e.Metric[pi] = lgraph.InvalidMetric
		}
	}
}
