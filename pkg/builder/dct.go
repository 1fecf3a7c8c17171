// pkg/builder/dct.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/navdb"
	"github.com/tsailer/vfrnav-public-sub016/pkg/tfr"
)

// addDCTEdges is spec §4.D.4: add a DCT edge between every pair of
// vertices within the DCT-limit distance (or explicitly whitelisted
// beyond it), valid at every level the TFR engine permits and above
// the terrain minimum; then run the all-pairs airway-preference
// post-pass.
func (b *Builder) addDCTEdges(cfg Config) {
	b.Log.Push("dct")
	defer b.Log.Pop()

	expanded := cfg.SearchBBox.Expand(int32(cfg.DCTLimitNM / 60 * geo.FixedUnit))
	verts := b.Graph.Vertices()

	for _, u := range verts {
		uv := b.Graph.Vertex(u)
		if !expanded.Inside(uv.Coord) {
			continue
		}
		for _, v := range verts {
			if u == v {
				continue
			}
			vv := b.Graph.Vertex(v)
			if !expanded.Inside(vv.Coord) {
				continue
			}
			b.addDCTPair(cfg, u, v, uv.Coord, vv.Coord, uv.Ident, vv.Ident)
		}
	}

	b.pruneNonPreferredDCT()
}

func (b *Builder) addDCTPair(cfg Config, u, v lgraph.VertexIndex, pu, pv geo.Point, idu, idv string) {
	dist := pu.DistanceNM(pv)
	whitelisted := dist > cfg.DCTLimitNM && b.TFR.DCTWhitelisted(idu, idv)
	if dist > cfg.DCTLimitNM && !whitelisted {
		return
	}

	terrainMax := b.Terrain.MaxElevationCorridor(pu, pv)
	minAlt := navdb.MinAltitudeForTerrain(terrainMax)

	fwd, _ := b.TFR.CheckDCT(tfr.DctParameters{
		Id0: idu, Id1: idv, Coord0: pu, Coord1: pv, AltMin: minAlt,
	})

	L := b.Perf.NumLevels()
	metric := make([]float32, L)
	course := pu.InitialBearing(pv)
	any := false
	for pi := 0; pi < L; pi++ {
		lvl := b.Perf.LevelAt(pi)
		if lvl.AltitudeFt < minAlt || !fwd.Contains(lvl.AltitudeFt) {
			metric[pi] = lgraph.InvalidMetric
			continue
		}
		if b.hasValidNamedAirway(u, v, pi) {
			metric[pi] = lgraph.InvalidMetric // I5: airway preferred
			continue
		}
		metric[pi] = dist
		any = true
	}
	if any {
		b.Graph.SetMetric(u, v, airway.DCT, metric, dist, course)
	}
}

func (b *Builder) hasValidNamedAirway(u, v lgraph.VertexIndex, pi int) bool {
	for _, out := range b.Graph.OutEdges(u) {
		if out.To == v && out.Edge.Airway.IsNamed() && out.Edge.ValidAtLevel(pi) {
			return true
		}
	}
	return false
}

// pruneNonPreferredDCT runs all-pairs shortest paths over airway-only
// edges and removes any DCT edge whose direct distance exceeds 1.01x
// the best airway distance between the same endpoints.
func (b *Builder) pruneNonPreferredDCT() {
	n := b.Graph.VertexCount()
	const inf = float32(1e18)
	dist := make([][]float32, n)
	for i := range dist {
		dist[i] = make([]float32, n)
		for j := range dist[i] {
			dist[i][j] = inf
		}
		dist[i][i] = 0
	}
	for _, u := range b.Graph.Vertices() {
		for _, out := range b.Graph.OutEdges(u) {
			if !out.Edge.Airway.IsNamed() || !out.Edge.Valid() {
				continue
			}
			if out.Edge.DistNM < dist[u][out.To] {
				dist[u][out.To] = out.Edge.DistNM
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if dist[i][k] == inf {
				continue
			}
			for j := 0; j < n; j++ {
				if d := dist[i][k] + dist[k][j]; d < dist[i][j] {
					dist[i][j] = d
				}
			}
		}
	}

	for _, u := range b.Graph.Vertices() {
		for _, out := range b.Graph.OutEdges(u) {
			if out.Edge.Airway != airway.DCT {
				continue
			}
			best := dist[u][out.To]
			if best != inf && out.Edge.DistNM > 1.01*best {
				b.Graph.RemoveEdge(u, out.To, airway.DCT)
			}
		}
	}
}
