// pkg/builder/metric.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package builder

import (
	"github.com/tsailer/vfrnav-public-sub016/pkg/airway"
	"github.com/tsailer/vfrnav-public-sub016/pkg/geo"
	"github.com/tsailer/vfrnav-public-sub016/pkg/lgraph"
	"github.com/tsailer/vfrnav-public-sub016/pkg/perf"
)

// metricPass is spec §4.D.7: the final metric computation for every
// edge that survived I3/I4 — base distance, DCT penalty, wind
// correction, and the level's metric-per-nmi scale.
func (b *Builder) metricPass(cfg Config) {
	b.Log.Push("metric")
	defer b.Log.Pop()

	for _, u := range b.Graph.Vertices() {
		uv := b.Graph.Vertex(u)
		for _, out := range b.Graph.OutEdges(u) {
			vv := b.Graph.Vertex(out.To)
			b.applyFinalMetric(uv, vv, out.Edge, cfg)
		}
	}
	b.Graph.RemoveInvalidEdges()
}

func (b *Builder) applyFinalMetric(uv, vv *lgraph.Vertex, e *lgraph.Edge, cfg Config) {
	mid := uv.Coord.Midpoint(vv.Coord)
	for pi := 0; pi < len(e.Metric); pi++ {
		if !e.ValidAtLevel(pi) {
			continue
		}
		lvl := b.Perf.LevelAt(pi)
		v := e.DistNM

		if e.Airway == airway.DCT {
			v = v*cfg.DCTPenaltyScale + cfg.DCTPenaltyOffset
		}

		if cfg.WindsEnabled {
			v = v / groundSpeedRatio(b.Perf, mid, pi, e.CourseTrue, lvl)
		}

		e.Metric[pi] = v * lvl.MetricPerNM
	}
}

// groundSpeedRatio returns gs/tas at pi along courseTrue through the
// midpoint wind, used to lengthen (or shorten) the effective distance
// for a headwind (or tailwind).
func groundSpeedRatio(pm perf.Model, mid geo.Point, pi int, courseTrue float32, lvl perf.Level) float32 {
	dirTrue, speedKts := pm.WindAt(mid, pi)
	gs := perf.GroundSpeed(lvl.TAS, courseTrue, dirTrue, speedKts)
	if lvl.TAS <= 0 {
		return 1
	}
	return gs / lvl.TAS
}
